package web

import (
	"net/http"
	"strings"

	"github.com/mkosheleva/qr-attendance/internal/ctxutil"
	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/models"
)

type createCourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type enrollRequest struct {
	CourseID int64 `json:"course_id"`
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req createCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "некорректный запрос")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "название курса обязательно")
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	course, err := db.CreateCourse(ctx, s.db, req.Name, req.Description, user.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, course)
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	courses, err := db.CoursesByTeacher(ctx, s.db, user.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleAvailableCourses(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	courses, err := db.AvailableCourses(ctx, s.db, user.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleMyCourses(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	courses, err := db.EnrolledCourses(ctx, s.db, user.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req enrollRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "некорректный запрос")
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	// курс должен существовать, иначе 404 вместо ошибки внешнего ключа
	if _, err := db.GetCourse(ctx, s.db, req.CourseID); err != nil {
		s.storeErr(w, err)
		return
	}
	enrollment, err := db.Enroll(ctx, s.db, user.ID, req.CourseID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, enrollment)
}
