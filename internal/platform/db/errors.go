package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// NotFoundError names the entity that was looked up. It matches ErrNotFound
// with errors.Is.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns a NotFoundError for entity.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

const (
	pgForeignKeyViolation = "23503"
	pgStringTooLong       = "22001"
)

// IntegrityError reports a reference to a record that does not exist.
type IntegrityError struct {
	Field   string
	Message string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error on %s: %s", e.Field, e.Message)
}

// MissingReference builds the IntegrityError used when a foreign key target
// is absent.
func MissingReference(field, entity string) *IntegrityError {
	return &IntegrityError{Field: field, Message: fmt.Sprintf("%s does not exist", entity)}
}

// Translate maps driver errors onto the package error kinds. fkFields maps a
// foreign key constraint name to the JSON field it guards.
func Translate(err error, fkFields map[string]string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			field := fkFields[pgErr.ConstraintName]
			if field == "" {
				field = "non_field_errors"
			}
			return &IntegrityError{Field: field, Message: "referenced record does not exist"}
		case pgStringTooLong:
			return &IntegrityError{Field: "non_field_errors", Message: pgErr.Message}
		}
	}
	return err
}
