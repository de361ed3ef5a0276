package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mkosheleva/qr-attendance/internal/models"
)

// CreateSession — занятие с сегодняшней датой и свежим UUID-токеном.
// Токен — фактически предъявительский пропуск, поэтому только uuid4.
func CreateSession(ctx context.Context, database *sql.DB, courseID int64) (*models.Session, error) {
	token := uuid.NewString()
	s := models.Session{CourseID: courseID, Token: token}
	err := database.QueryRowContext(ctx, `
		INSERT INTO sessions (course_id, token)
		VALUES ($1, $2)
		RETURNING id, session_date, created_at
	`, courseID, token).Scan(&s.ID, &s.Date, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTokenCollision
		}
		return nil, err
	}
	return &s, nil
}

func GetSession(ctx context.Context, database *sql.DB, id int64) (*models.Session, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, course_id, session_date, token, created_at
		FROM sessions WHERE id = $1
	`, id)
	return scanSession(row)
}

func GetSessionByToken(ctx context.Context, database *sql.DB, token string) (*models.Session, error) {
	// мусор вместо uuid — это просто несуществующий токен
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrNotFound
	}
	row := database.QueryRowContext(ctx, `
		SELECT id, course_id, session_date, token, created_at
		FROM sessions WHERE token = $1
	`, parsed)
	return scanSession(row)
}

func SessionsByCourse(ctx context.Context, database *sql.DB, courseID int64) ([]models.Session, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, course_id, session_date, token, created_at
		FROM sessions
		WHERE course_id = $1
		ORDER BY session_date DESC, id DESC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Session, 0)
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Date, &s.Token, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var s models.Session
	err := row.Scan(&s.ID, &s.CourseID, &s.Date, &s.Token, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
