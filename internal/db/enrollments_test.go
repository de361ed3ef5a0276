//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/models"
	"github.com/mkosheleva/qr-attendance/internal/testutil/testdb"
)

func TestEnroll_Duplicate(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	teacher := mustSeedUser(t, h.DB, "ivanova", models.Teacher)
	student := mustSeedUser(t, h.DB, "petrov", models.Student)
	course := mustSeedCourse(t, h.DB, "Химия", teacher.ID)

	if _, err := db.Enroll(ctx, h.DB, student.ID, course.ID); err != nil {
		t.Fatalf("первая запись: %v", err)
	}
	if _, err := db.Enroll(ctx, h.DB, student.ID, course.ID); !errors.Is(err, db.ErrAlreadyEnrolled) {
		t.Fatalf("ожидали ErrAlreadyEnrolled, получили %v", err)
	}
	if n := countRows(t, h.DB, `SELECT count(*) FROM enrollments WHERE student_id = $1`, student.ID); n != 1 {
		t.Fatalf("ожидали 1 запись, получили %d", n)
	}
}

func TestAvailableCourses_ExcludesEnrolled(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	teacher := mustSeedUser(t, h.DB, "ivanova", models.Teacher)
	student := mustSeedUser(t, h.DB, "petrov", models.Student)
	c1 := mustSeedCourse(t, h.DB, "Алгебра", teacher.ID)
	c2 := mustSeedCourse(t, h.DB, "Геометрия", teacher.ID)

	mustEnroll(t, h.DB, student.ID, c1.ID)

	available, err := db.AvailableCourses(ctx, h.DB, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(available) != 1 || available[0].ID != c2.ID {
		t.Fatalf("ожидали только курс %d, получили %+v", c2.ID, available)
	}

	mine, err := db.EnrolledCourses(ctx, h.DB, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != c1.ID {
		t.Fatalf("ожидали только курс %d, получили %+v", c1.ID, mine)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if _, err := db.CreateUser(ctx, h.DB, "petrov", "$2a$10$stub", models.Student); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateUser(ctx, h.DB, "petrov", "$2a$10$stub", models.Teacher); !errors.Is(err, db.ErrUsernameTaken) {
		t.Fatalf("ожидали ErrUsernameTaken, получили %v", err)
	}
}
