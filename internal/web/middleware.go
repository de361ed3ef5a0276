package web

import (
	"errors"
	"net/http"

	"github.com/mkosheleva/qr-attendance/internal/ctxutil"
	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/models"
)

const sessionName = "attendance-session"

type authedHandler func(w http.ResponseWriter, r *http.Request, user *models.User)

// requireAuth — достаёт пользователя из cookie-сессии.
// Дальше по запросу гуляет уже проверенная identity, а не request-глобалы.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r, sessionName)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "требуется вход")
			return
		}
		id, ok := sess.Values["user_id"].(int64)
		if !ok {
			s.writeError(w, http.StatusUnauthorized, "требуется вход")
			return
		}

		ctx, cancel := ctxutil.WithDBTimeout(r.Context())
		defer cancel()
		user, err := db.GetUserByID(ctx, s.db, id)
		if errors.Is(err, db.ErrNotFound) {
			s.writeError(w, http.StatusUnauthorized, "требуется вход")
			return
		}
		if err != nil {
			s.internalError(w, err)
			return
		}
		next(w, r, user)
	}
}

func (s *Server) requireRole(role models.Role, next authedHandler) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request, user *models.User) {
		if user.Role != role {
			s.writeError(w, http.StatusForbidden, "операция недоступна для этой роли")
			return
		}
		next(w, r, user)
	})
}
