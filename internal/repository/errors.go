package repository

import (
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert or update hits a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// translateErr maps driver errors onto the repository sentinels.
func translateErr(op string, err error) error {
	if db.IsNoRows(err) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if constraint, ok := db.UniqueViolation(err); ok {
		return fmt.Errorf("%s: %w (%s)", op, ErrDuplicateKey, constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// likePattern turns a free text query into a literal ILIKE substring pattern.
func likePattern(q string) string {
	r := []rune{'%'}
	for _, c := range q {
		switch c {
		case '%', '_', '\\':
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return string(append(r, '%'))
}
