//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/models"
)

func mustSeedUser(t *testing.T, database *sql.DB, username string, role models.Role) *models.User {
	t.Helper()
	u, err := db.CreateUser(context.Background(), database, username, "$2a$10$stub", role)
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func mustSeedCourse(t *testing.T, database *sql.DB, name string, teacherID int64) *models.Course {
	t.Helper()
	c, err := db.CreateCourse(context.Background(), database, name, "", teacherID)
	if err != nil {
		t.Fatalf("seed course %s: %v", name, err)
	}
	return c
}

func mustSeedSession(t *testing.T, database *sql.DB, courseID int64) *models.Session {
	t.Helper()
	s, err := db.CreateSession(context.Background(), database, courseID)
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func mustEnroll(t *testing.T, database *sql.DB, studentID, courseID int64) {
	t.Helper()
	if _, err := db.Enroll(context.Background(), database, studentID, courseID); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}

func countRows(t *testing.T, database *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := database.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
