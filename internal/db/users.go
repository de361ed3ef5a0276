package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mkosheleva/qr-attendance/internal/models"
)

func CreateUser(ctx context.Context, database *sql.DB, username, passwordHash string, role models.Role) (*models.User, error) {
	u := models.User{Username: username, PasswordHash: passwordHash, Role: role}
	err := database.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, is_teacher)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, username, passwordHash, role == models.Teacher).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}

func GetUserByUsername(ctx context.Context, database *sql.DB, username string) (*models.User, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, username, password_hash, is_teacher, created_at
		FROM users WHERE username = $1
	`, username)
	return scanUser(row)
}

func GetUserByID(ctx context.Context, database *sql.DB, id int64) (*models.User, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, username, password_hash, is_teacher, created_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		isTeacher bool
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &isTeacher, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = models.Student
	if isTeacher {
		u.Role = models.Teacher
	}
	return &u, nil
}
