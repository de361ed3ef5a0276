//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/mkosheleva/qr-attendance/internal/db"
	"github.com/mkosheleva/qr-attendance/internal/models"
	"github.com/mkosheleva/qr-attendance/internal/testutil/testdb"
)

func TestRegisterAttendance_GuardOrder(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	teacher := mustSeedUser(t, h.DB, "ivanova", models.Teacher)
	student := mustSeedUser(t, h.DB, "petrov", models.Student)
	course := mustSeedCourse(t, h.DB, "Алгебра", teacher.ID)
	session := mustSeedSession(t, h.DB, course.ID)

	// несуществующий токен
	if _, err := db.RegisterAttendance(ctx, h.DB, uuid.NewString(), student); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("ожидали ErrNotFound, получили %v", err)
	}
	// мусор вместо токена — тоже NotFound, а не 500
	if _, err := db.RegisterAttendance(ctx, h.DB, "not-a-token", student); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("ожидали ErrNotFound, получили %v", err)
	}
	// преподаватель отмечаться не может, даже владелец курса
	if _, err := db.RegisterAttendance(ctx, h.DB, session.Token, teacher); !errors.Is(err, db.ErrRoleForbidden) {
		t.Fatalf("ожидали ErrRoleForbidden, получили %v", err)
	}
	// без записи на курс
	if _, err := db.RegisterAttendance(ctx, h.DB, session.Token, student); !errors.Is(err, db.ErrNotEnrolled) {
		t.Fatalf("ожидали ErrNotEnrolled, получили %v", err)
	}

	mustEnroll(t, h.DB, student.ID, course.ID)

	rec, err := db.RegisterAttendance(ctx, h.DB, session.Token, student)
	if err != nil {
		t.Fatalf("первая отметка: %v", err)
	}
	if rec.SessionID != session.ID || rec.StudentID != student.ID {
		t.Fatalf("неожиданная запись: %+v", rec)
	}

	// повторная отметка
	if _, err := db.RegisterAttendance(ctx, h.DB, session.Token, student); !errors.Is(err, db.ErrAlreadyRecorded) {
		t.Fatalf("ожидали ErrAlreadyRecorded, получили %v", err)
	}

	if n := countRows(t, h.DB, `SELECT count(*) FROM attendance WHERE session_id = $1`, session.ID); n != 1 {
		t.Fatalf("ожидали 1 запись посещения, получили %d", n)
	}
}

func TestRegisterAttendance_Parallel(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	teacher := mustSeedUser(t, h.DB, "ivanova", models.Teacher)
	student := mustSeedUser(t, h.DB, "petrov", models.Student)
	course := mustSeedCourse(t, h.DB, "Геометрия", teacher.ID)
	mustEnroll(t, h.DB, student.ID, course.ID)
	session := mustSeedSession(t, h.DB, course.ID)

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := db.RegisterAttendance(ctx, h.DB, session.Token, student)
			switch {
			case err == nil:
				mu.Lock()
				successes++
				mu.Unlock()
			case errors.Is(err, db.ErrAlreadyRecorded):
				// вторая из гонящихся вставок
			default:
				t.Errorf("неожиданная ошибка: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("ожидали ровно 1 успешную отметку, получили %d", successes)
	}
	if got := countRows(t, h.DB, `SELECT count(*) FROM attendance WHERE session_id = $1 AND student_id = $2`, session.ID, student.ID); got != 1 {
		t.Fatalf("ожидали 1 строку, получили %d", got)
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	teacher := mustSeedUser(t, h.DB, "ivanova", models.Teacher)
	student := mustSeedUser(t, h.DB, "petrov", models.Student)
	course := mustSeedCourse(t, h.DB, "Физика", teacher.ID)
	mustEnroll(t, h.DB, student.ID, course.ID)

	s1 := mustSeedSession(t, h.DB, course.ID)
	s2 := mustSeedSession(t, h.DB, course.ID)
	if _, err := db.RegisterAttendance(ctx, h.DB, s1.Token, student); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RegisterAttendance(ctx, h.DB, s2.Token, student); err != nil {
		t.Fatal(err)
	}

	hist, err := db.StudentHistory(ctx, h.DB, student.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("ожидали 2 отметки, получили %d", len(hist))
	}
	// при равной дате занятия свежая отметка идёт первой
	if hist[0].RecordedAt.Before(hist[1].RecordedAt) {
		t.Fatalf("история не отсортирована: %+v", hist)
	}

	th, err := db.TeacherHistory(ctx, h.DB, teacher.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(th) != 1 || len(th[0].Sessions) != 2 {
		t.Fatalf("неожиданная история преподавателя: %+v", th)
	}
	for _, sh := range th[0].Sessions {
		if len(sh.Attendees) != 1 || sh.Attendees[0].Username != "petrov" {
			t.Fatalf("неожиданный список присутствующих: %+v", sh.Attendees)
		}
	}

	// у чужого преподавателя история пустая
	other := mustSeedUser(t, h.DB, "sidorova", models.Teacher)
	empty, err := db.TeacherHistory(ctx, h.DB, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("ожидали пустую историю, получили %+v", empty)
	}
}
