package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mkosheleva/qr-attendance/internal/models"
)

func CreateCourse(ctx context.Context, database *sql.DB, name, description string, teacherID int64) (*models.Course, error) {
	c := models.Course{Name: name, Description: description, TeacherID: teacherID}
	err := database.QueryRowContext(ctx, `
		INSERT INTO courses (name, description, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, name, description, teacherID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCourse(ctx context.Context, database *sql.DB, id int64) (*models.Course, error) {
	var c models.Course
	err := database.QueryRowContext(ctx, `
		SELECT id, name, description, teacher_id, created_at
		FROM courses WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.TeacherID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func CoursesByTeacher(ctx context.Context, database *sql.DB, teacherID int64) ([]models.Course, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, description, teacher_id, created_at
		FROM courses
		WHERE teacher_id = $1
		ORDER BY id
	`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// AvailableCourses — курсы, на которые студент ещё не записан.
func AvailableCourses(ctx context.Context, database *sql.DB, studentID int64) ([]models.Course, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT c.id, c.name, c.description, c.teacher_id, c.created_at
		FROM courses c
		WHERE NOT EXISTS (
			SELECT 1 FROM enrollments e
			WHERE e.course_id = c.id AND e.student_id = $1
		)
		ORDER BY c.id
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

func EnrolledCourses(ctx context.Context, database *sql.DB, studentID int64) ([]models.EnrolledCourse, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT c.id, c.name, c.description, c.teacher_id, c.created_at, e.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.created_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.EnrolledCourse, 0)
	for rows.Next() {
		var ec models.EnrolledCourse
		if err := rows.Scan(&ec.ID, &ec.Name, &ec.Description, &ec.TeacherID, &ec.CreatedAt, &ec.EnrolledAt); err != nil {
			return nil, err
		}
		out = append(out, ec)
	}
	return out, rows.Err()
}

func scanCourses(rows *sql.Rows) ([]models.Course, error) {
	out := make([]models.Course, 0)
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.TeacherID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
