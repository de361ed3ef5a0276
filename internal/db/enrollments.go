package db

import (
	"context"
	"database/sql"

	"github.com/mkosheleva/qr-attendance/internal/models"
)

// Enroll — повторная запись обрезается уникальным индексом (student, course).
func Enroll(ctx context.Context, database *sql.DB, studentID, courseID int64) (*models.Enrollment, error) {
	e := models.Enrollment{StudentID: studentID, CourseID: courseID}
	err := database.QueryRowContext(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, studentID, courseID).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return &e, nil
}

func IsEnrolled(ctx context.Context, database *sql.DB, studentID, courseID int64) (bool, error) {
	var exists bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2
		)
	`, studentID, courseID).Scan(&exists)
	return exists, err
}
