package web

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/mkosheleva/qr-attendance/internal/config"
	"github.com/mkosheleva/qr-attendance/internal/metrics"
	"github.com/mkosheleva/qr-attendance/internal/models"
)

type Server struct {
	cfg   *config.Config
	db    *sql.DB
	log   *zap.Logger
	store *sessions.CookieStore
	srv   *http.Server
}

func New(cfg *config.Config, database *sql.DB, log *zap.Logger) *Server {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Server{cfg: cfg, db: database, log: log, store: store}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("GET /courses", s.requireRole(models.Teacher, s.handleListCourses))
	mux.HandleFunc("POST /courses", s.requireRole(models.Teacher, s.handleCreateCourse))
	mux.HandleFunc("GET /courses/available", s.requireRole(models.Student, s.handleAvailableCourses))
	mux.HandleFunc("POST /courses/available", s.requireRole(models.Student, s.handleEnroll))
	mux.HandleFunc("GET /courses/mine", s.requireRole(models.Student, s.handleMyCourses))
	mux.HandleFunc("POST /courses/{id}/sessions", s.requireRole(models.Teacher, s.handleCreateSession))

	mux.HandleFunc("GET /sessions/{id}/qr.png", s.requireRole(models.Teacher, s.handleSessionQR))
	mux.HandleFunc("GET /sessions/{id}/attendees", s.requireRole(models.Teacher, s.handleAttendees))

	// порядок проверок внутри: сначала токен, потом роль
	mux.HandleFunc("GET /attendance/{token}", s.requireAuth(s.handleAttendance))
	mux.HandleFunc("POST /attendance/{token}", s.requireAuth(s.handleAttendance))

	mux.HandleFunc("GET /history/student", s.requireRole(models.Student, s.handleStudentHistory))
	mux.HandleFunc("GET /history/teacher", s.requireRole(models.Teacher, s.handleTeacherHistory))
	mux.HandleFunc("GET /history/teacher/export", s.requireRole(models.Teacher, s.handleTeacherHistoryExport))

	return s.instrument(mux)
}

// Start — сервер живёт до отмены ctx, дальше мягкое выключение.
func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{Addr: s.cfg.HTTPAddr, Handler: s.Handler()}

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("http server", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shCtx)
	}()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	metrics.ObserveDBPing(time.Since(t0))
	_, _ = w.Write([]byte("ok"))
}

// attendanceLink — ссылка, которую кодирует QR.
func (s *Server) attendanceLink(token string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/attendance/" + token
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.ObserveRequest(r.Method, sw.status)
		s.log.Debug("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("dur", time.Since(start)),
		)
	})
}
