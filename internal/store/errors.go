package store

import (
	"errors"
	"fmt"

	"collegeconnect/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store errors wrap the domain kinds so callers can match either.
var (
	ErrRecordNotFound = fmt.Errorf("record %w", domain.ErrNotFound)
	ErrDuplicate      = fmt.Errorf("duplicate record: %w", domain.ErrConflict)
)

const pgUniqueViolation = "23505"

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
