package db

import (
	"context"
	"database/sql"

	"github.com/mkosheleva/qr-attendance/internal/models"
)

// RegisterAttendance — полная последовательность отметки по токену.
// Порядок проверок фиксирован, каждая обрывает выполнение:
//  1. токен -> занятие, иначе ErrNotFound;
//  2. преподавателям отмечаться нельзя (ErrRoleForbidden);
//  3. без записи на курс — ErrNotEnrolled;
//  4. повторная отметка — ErrAlreadyRecorded;
//  5. вставка; гонку двух одинаковых запросов закрывает уникальный
//     индекс (session, student), 23505 переводится в ErrAlreadyRecorded.
func RegisterAttendance(ctx context.Context, database *sql.DB, token string, student *models.User) (*models.Attendance, error) {
	session, err := GetSessionByToken(ctx, database, token)
	if err != nil {
		return nil, err
	}
	if student.IsTeacher() {
		return nil, ErrRoleForbidden
	}
	enrolled, err := IsEnrolled(ctx, database, student.ID, session.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}
	recorded, err := HasAttendance(ctx, database, session.ID, student.ID)
	if err != nil {
		return nil, err
	}
	if recorded {
		return nil, ErrAlreadyRecorded
	}
	return recordAttendance(ctx, database, session.ID, student.ID)
}

func recordAttendance(ctx context.Context, database *sql.DB, sessionID, studentID int64) (*models.Attendance, error) {
	a := models.Attendance{SessionID: sessionID, StudentID: studentID}
	err := database.QueryRowContext(ctx, `
		INSERT INTO attendance (session_id, student_id)
		VALUES ($1, $2)
		RETURNING id, recorded_at
	`, sessionID, studentID).Scan(&a.ID, &a.RecordedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyRecorded
		}
		return nil, err
	}
	return &a, nil
}

func HasAttendance(ctx context.Context, database *sql.DB, sessionID, studentID int64) (bool, error) {
	var exists bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance WHERE session_id = $1 AND student_id = $2
		)
	`, sessionID, studentID).Scan(&exists)
	return exists, err
}

func ListAttendees(ctx context.Context, database *sql.DB, sessionID int64) ([]models.Attendee, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT a.student_id, u.username, a.recorded_at
		FROM attendance a
		JOIN users u ON u.id = a.student_id
		WHERE a.session_id = $1
		ORDER BY a.recorded_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttendees(rows)
}

// StudentHistory — отметки студента с занятием и курсом, новые занятия сверху.
func StudentHistory(ctx context.Context, database *sql.DB, studentID int64) ([]models.StudentHistoryEntry, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT c.id, c.name, s.id, s.session_date, a.recorded_at
		FROM attendance a
		JOIN sessions s ON s.id = a.session_id
		JOIN courses c ON c.id = s.course_id
		WHERE a.student_id = $1
		ORDER BY s.session_date DESC, a.recorded_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.StudentHistoryEntry, 0)
	for rows.Next() {
		var e models.StudentHistoryEntry
		if err := rows.Scan(&e.CourseID, &e.CourseName, &e.SessionID, &e.SessionDate, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// TeacherHistory — курсы преподавателя, по каждому занятия (новые сверху)
// со списками присутствующих.
func TeacherHistory(ctx context.Context, database *sql.DB, teacherID int64) ([]models.CourseHistory, error) {
	courses, err := CoursesByTeacher(ctx, database, teacherID)
	if err != nil {
		return nil, err
	}

	out := make([]models.CourseHistory, 0, len(courses))
	for _, course := range courses {
		sessions, err := SessionsByCourse(ctx, database, course.ID)
		if err != nil {
			return nil, err
		}
		ch := models.CourseHistory{Course: course, Sessions: make([]models.SessionHistory, 0, len(sessions))}
		for _, session := range sessions {
			attendees, err := ListAttendees(ctx, database, session.ID)
			if err != nil {
				return nil, err
			}
			ch.Sessions = append(ch.Sessions, models.SessionHistory{Session: session, Attendees: attendees})
		}
		out = append(out, ch)
	}
	return out, nil
}

func scanAttendees(rows *sql.Rows) ([]models.Attendee, error) {
	out := make([]models.Attendee, 0)
	for rows.Next() {
		var a models.Attendee
		if err := rows.Scan(&a.StudentID, &a.Username, &a.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
