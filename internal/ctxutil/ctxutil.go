package ctxutil

import (
	"context"
	"time"
)

var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout — стандартный таймаут для запросов к БД.
// Если у родителя дедлайн ближе — берём остаток.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		if remain := time.Until(dl); remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
