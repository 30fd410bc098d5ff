package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrUnknownLanguage is returned when a language name is not in the reference set.
	// Languages are never created on demand.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrConstraintViolation wraps duplicate-key and foreign-key failures.
	// Callers should treat it as a request error and not retry.
	ErrConstraintViolation = errors.New("constraint violation")
)

// constraintError keeps the engine error reachable through errors.Unwrap
// while matching ErrConstraintViolation.
type constraintError struct {
	err error
}

func (e *constraintError) Error() string {
	return ErrConstraintViolation.Error() + ": " + e.err.Error()
}

func (e *constraintError) Unwrap() []error {
	return []error{ErrConstraintViolation, e.err}
}

// TranslateError maps engine constraint failures onto ErrConstraintViolation.
// Other errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConstraintViolation) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || isConstraintErr(err) {
		return &constraintError{err: err}
	}
	return err
}

// isConstraintErr catches drivers whose errors are not translated by gorm.
func isConstraintErr(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "constraint failed") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "duplicate entry")
}
