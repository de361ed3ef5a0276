package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkosheleva/qr-attendance/internal/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// TeacherHistoryWorkbook — книга с листом на каждый курс преподавателя:
// занятие, студент, время отметки.
func TeacherHistoryWorkbook(history []models.CourseHistory, loc *time.Location) (*excelize.File, error) {
	sheets := make([]SheetSpec, 0, len(history))
	for _, ch := range history {
		spec := SheetSpec{
			Title:  sheetTitle(ch.Course.Name, ch.Course.ID),
			Header: []string{"Дата занятия", "Студент", "Время отметки"},
		}
		for _, sh := range ch.Sessions {
			date := sh.Session.Date.Format("02.01.2006")
			if len(sh.Attendees) == 0 {
				spec.Rows = append(spec.Rows, []string{date, "—", ""})
				continue
			}
			for _, a := range sh.Attendees {
				spec.Rows = append(spec.Rows, []string{
					date,
					a.Username,
					a.RecordedAt.In(loc).Format("02.01.2006 15:04"),
				})
			}
		}
		sheets = append(sheets, spec)
	}
	if len(sheets) == 0 {
		sheets = append(sheets, SheetSpec{
			Title:  "Курсы",
			Header: []string{"Дата занятия", "Студент", "Время отметки"},
		})
	}
	return newWorkbook(sheets)
}

func newWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			// переименовываем стандартный Sheet1 вместо удаления
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		// жирная шапка + автофильтр только в первой строке
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		// эвристическая ширина: по заголовку и первым строкам
		for c := 1; c <= len(s.Header); c++ {
			maxim := len(s.Header[c-1])
			for r := 0; r < minim(50, len(s.Rows)); r++ {
				if l := len(s.Rows[r][c-1]); l > maxim {
					maxim = l
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return f, nil
}

// sheetTitle — имя листа: не длиннее 31 символа, без запрещённых знаков,
// с id курса для уникальности.
func sheetTitle(courseName string, courseID int64) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return ' '
		}
		return r
	}, courseName)
	suffix := fmt.Sprintf(" (%d)", courseID)
	limit := 31 - len(suffix)
	runes := []rune(clean)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return strings.TrimSpace(string(runes)) + suffix
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
