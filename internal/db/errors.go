package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Сентинели хранилища. Веб-слой переводит их в HTTP-статусы.
var (
	ErrNotFound        = errors.New("запись не найдена")
	ErrUsernameTaken   = errors.New("имя пользователя уже занято")
	ErrAlreadyEnrolled = errors.New("студент уже записан на курс")
	ErrAlreadyRecorded = errors.New("посещение уже отмечено")
	ErrNotEnrolled     = errors.New("студент не записан на курс")
	ErrRoleForbidden   = errors.New("операция недоступна для этой роли")

	// ErrTokenCollision — коллизия токена занятия. Вероятность ничтожна,
	// но по уникальному индексу она обязана превращаться в повторяемую
	// ошибку, а не в панику.
	ErrTokenCollision = errors.New("коллизия токена занятия, повторите запрос")
)

// isUniqueViolation — postgres 23505. Рантайм ходит через драйвер pgx,
// тестовый стенд — через lib/pq, поэтому проверяем оба типа ошибок.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
