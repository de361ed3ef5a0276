package web

import (
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/mkosheleva/qr-attendance/internal/ctxutil"
	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/metrics"
	"github.com/mkosheleva/qr-attendance/internal/models"
)

type sessionResponse struct {
	models.Session
	Link  string `json:"link"`
	QRPNG string `json:"qr_png"`
}

func (s *Server) sessionResponse(session *models.Session) sessionResponse {
	return sessionResponse{
		Session: *session,
		Link:    s.attendanceLink(session.Token),
		QRPNG:   "/sessions/" + strconv.FormatInt(session.ID, 10) + "/qr.png",
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	courseID, ok := pathID(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "некорректный id курса")
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	course, err := db.GetCourse(ctx, s.db, courseID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	if course.TeacherID != user.ID {
		s.writeError(w, http.StatusForbidden, "нет прав на этот курс")
		return
	}

	session, err := db.CreateSession(ctx, s.db, course.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	metrics.SessionsIssued.Inc()
	s.writeJSON(w, http.StatusCreated, s.sessionResponse(session))
}

// ownedSession — занятие по id с проверкой, что запрашивает владелец курса.
// При любом отказе ответ уже записан.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request, user *models.User) *models.Session {
	sessionID, ok := pathID(r)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "некорректный id занятия")
		return nil
	}

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	session, err := db.GetSession(ctx, s.db, sessionID)
	if err != nil {
		s.storeErr(w, err)
		return nil
	}
	course, err := db.GetCourse(ctx, s.db, session.CourseID)
	if err != nil {
		s.storeErr(w, err)
		return nil
	}
	if course.TeacherID != user.ID {
		s.writeError(w, http.StatusForbidden, "нет прав на это занятие")
		return nil
	}
	return session
}

func (s *Server) handleSessionQR(w http.ResponseWriter, r *http.Request, user *models.User) {
	session := s.ownedSession(w, r, user)
	if session == nil {
		return
	}

	png, err := qrcode.Encode(s.attendanceLink(session.Token), qrcode.Medium, 256)
	if err != nil {
		s.internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (s *Server) handleAttendees(w http.ResponseWriter, r *http.Request, user *models.User) {
	session := s.ownedSession(w, r, user)
	if session == nil {
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	attendees, err := db.ListAttendees(ctx, s.db, session.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, attendees)
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	record, err := db.RegisterAttendance(ctx, s.db, r.PathValue("token"), user)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	metrics.Recorded.Inc()
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "посещение отмечено",
		"attendance": record,
	})
}
