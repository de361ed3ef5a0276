package models

import "time"

type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeacherID   int64     `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Enrollment — запись студента на курс, пара (student, course) уникальна.
type Enrollment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	CourseID  int64     `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrolledCourse — курс вместе с датой записи, для списка "мои курсы".
type EnrolledCourse struct {
	Course
	EnrolledAt time.Time `json:"enrolled_at"`
}
