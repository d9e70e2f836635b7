package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrTableMissing means the schema has not been migrated yet.
	ErrTableMissing         = errors.New("table does not exist")
	ErrDuplicateEntry       = errors.New("duplicate entry")
	ErrDuplicateTransaction = errors.New("gateway transaction already recorded")
	ErrNoOwner              = errors.New("no cart owner")
)

const (
	pqUndefinedTable  = "42P01"
	pqUniqueViolation = "23505"
)

// mapPQError turns driver errors the services care about into sentinels.
// Everything else is wrapped with op for context.
func mapPQError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUndefinedTable:
			return fmt.Errorf("%s: %w", op, ErrTableMissing)
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicateEntry)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
