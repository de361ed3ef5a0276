package web

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mkosheleva/qr-attendance/internal/ctxutil"
	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/export"
	"github.com/mkosheleva/qr-attendance/internal/models"
)

func (s *Server) handleStudentHistory(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	history, err := db.StudentHistory(ctx, s.db, user.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleTeacherHistory(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	history, err := db.TeacherHistory(ctx, s.db, user.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleTeacherHistoryExport(w http.ResponseWriter, r *http.Request, user *models.User) {
	ctx, cancel := ctxutil.WithDBTimeout(r.Context())
	defer cancel()
	history, err := db.TeacherHistory(ctx, s.db, user.ID)
	if err != nil {
		s.storeErr(w, err)
		return
	}

	wb, err := export.TeacherHistoryWorkbook(history, s.cfg.Location)
	if err != nil {
		s.internalError(w, err)
		return
	}

	name := "attendance_" + time.Now().In(s.cfg.Location).Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := wb.Write(w); err != nil {
		s.log.Error("write xlsx", zap.Error(err))
	}
}
