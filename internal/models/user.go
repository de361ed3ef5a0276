package models

import "time"

type Role string

const (
	Student Role = "student"
	Teacher Role = "teacher"
)

// User — роль фиксируется при регистрации и больше не меняется.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsTeacher() bool { return u.Role == Teacher }
