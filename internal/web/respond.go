package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/observability"
)

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]string{"error": msg})
}

// storeErr — перевод сентинелей хранилища в HTTP-статусы.
// Дубликаты отдаём как 409, чтобы клиент отличал их от ошибок прав.
func (s *Server) storeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "не найдено")
	case errors.Is(err, db.ErrRoleForbidden):
		s.writeError(w, http.StatusForbidden, "операция недоступна для этой роли")
	case errors.Is(err, db.ErrNotEnrolled):
		s.writeError(w, http.StatusForbidden, "вы не записаны на этот курс")
	case errors.Is(err, db.ErrAlreadyRecorded):
		s.writeError(w, http.StatusConflict, "посещение уже отмечено")
	case errors.Is(err, db.ErrAlreadyEnrolled):
		s.writeError(w, http.StatusConflict, "вы уже записаны на этот курс")
	case errors.Is(err, db.ErrUsernameTaken):
		s.writeError(w, http.StatusConflict, "имя пользователя занято")
	case errors.Is(err, db.ErrTokenCollision):
		s.writeError(w, http.StatusServiceUnavailable, "повторите запрос")
	default:
		s.internalError(w, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("internal", zap.Error(err))
	observability.CaptureErr(err)
	s.writeError(w, http.StatusInternalServerError, "внутренняя ошибка")
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
