package models

import "time"

// Session — одно занятие курса. Токен генерируется один раз и служит
// пропуском для отметки посещаемости, поэтому он должен быть неугадываемым.
type Session struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	Date      time.Time `json:"date"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

type Attendance struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	StudentID  int64     `json:"student_id"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Attendee — строка списка присутствующих на занятии.
type Attendee struct {
	StudentID  int64     `json:"student_id"`
	Username   string    `json:"username"`
	RecordedAt time.Time `json:"recorded_at"`
}

// StudentHistoryEntry — отметка студента вместе с занятием и курсом.
type StudentHistoryEntry struct {
	CourseID    int64     `json:"course_id"`
	CourseName  string    `json:"course_name"`
	SessionID   int64     `json:"session_id"`
	SessionDate time.Time `json:"session_date"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// SessionHistory / CourseHistory — история преподавателя:
// курсы -> занятия (новые сверху) -> присутствующие.
type SessionHistory struct {
	Session   Session    `json:"session"`
	Attendees []Attendee `json:"attendees"`
}

type CourseHistory struct {
	Course   Course           `json:"course"`
	Sessions []SessionHistory `json:"sessions"`
}
