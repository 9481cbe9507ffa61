package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("repository: not found")
	ErrDuplicateSlot     = errors.New("repository: slot time already exists for that day")
	ErrDuplicateUsername = errors.New("repository: username already exists")
	ErrDuplicate         = errors.New("repository: unique constraint violated")
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognises a unique-index conflict from postgres
// (translated or raw pgconn error) and from sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
