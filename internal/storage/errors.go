package storage

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrInvalidField  = errors.New("storage: invalid field")
	ErrInvalidLocale = errors.New("storage: invalid locale")
	ErrDuplicateKey  = errors.New("storage: duplicate key")
	// ErrEngine covers faults of the embedded engine and of the slot holding
	// its image (I/O, quota, a corrupt blob).
	ErrEngine = errors.New("storage: engine failure")
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
