package web

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkosheleva/qr-attendance/internal/ctxutil"
	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/models"
)

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IsTeacher bool   `json:"is_teacher"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 6 {
		s.writeError(w, http.StatusBadRequest, "нужны имя пользователя и пароль не короче 6 символов")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.internalError(w, err)
		return
	}

	role := models.Student
	if req.IsTeacher {
		role = models.Teacher
	}

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	user, err := db.CreateUser(ctx, s.db, req.Username, string(hash), role)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "некорректный запрос")
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	user, err := db.GetUserByUsername(ctx, s.db, req.Username)
	if errors.Is(err, db.ErrNotFound) {
		s.writeError(w, http.StatusUnauthorized, "неверные учётные данные")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.writeError(w, http.StatusUnauthorized, "неверные учётные данные")
		return
	}

	sess, _ := s.store.Get(r, sessionName)
	sess.Values["user_id"] = user.ID
	if err := sess.Save(r, w); err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
	w.WriteHeader(http.StatusNoContent)
}
