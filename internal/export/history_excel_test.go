package export

import (
	"strings"
	"testing"
	"time"

	"github.com/mkosheleva/qr-attendance/internal/models"
)

func TestSheetTitle(t *testing.T) {
	got := sheetTitle("Алгебра: группа [9/А]*?", 7)
	if strings.ContainsAny(got, `:\/?*[]`) {
		t.Fatalf("остались запрещённые символы: %q", got)
	}
	if !strings.HasSuffix(got, " (7)") {
		t.Fatalf("нет суффикса с id: %q", got)
	}

	long := sheetTitle(strings.Repeat("а", 100), 12345)
	if n := len([]rune(long)); n > 31 {
		t.Fatalf("имя листа длиннее 31 символа: %d (%q)", n, long)
	}
}

func TestTeacherHistoryWorkbook(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC)
	history := []models.CourseHistory{
		{
			Course: models.Course{ID: 1, Name: "Алгебра"},
			Sessions: []models.SessionHistory{
				{
					Session: models.Session{ID: 10, CourseID: 1, Date: now},
					Attendees: []models.Attendee{
						{StudentID: 2, Username: "petrov", RecordedAt: now},
					},
				},
				{
					// занятие без отметок тоже попадает в отчёт
					Session: models.Session{ID: 11, CourseID: 1, Date: now},
				},
			},
		},
	}

	f, err := TeacherHistoryWorkbook(history, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	sheet := sheetTitle("Алгебра", 1)
	if got, _ := f.GetCellValue(sheet, "A1"); got != "Дата занятия" {
		t.Fatalf("шапка: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "B2"); got != "petrov" {
		t.Fatalf("студент: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "B3"); got != "—" {
		t.Fatalf("пустое занятие: %q", got)
	}
}

func TestTeacherHistoryWorkbook_Empty(t *testing.T) {
	f, err := TeacherHistoryWorkbook(nil, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if idx, _ := f.GetSheetIndex("Курсы"); idx < 0 {
		t.Fatal("нет листа-заглушки для пустой истории")
	}
}
