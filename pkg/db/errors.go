package db

import (
	stdErrors "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/dukamart/dukamart-backend/pkg/errors"
)

// Postgres SQLSTATE codes for the constraint classes this model enforces.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

type violationKind int

const (
	violationNone violationKind = iota
	violationUnique
	violationForeignKey
	violationCheck
)

// detect inspects the driver error chain. Postgres reports SQLSTATE through
// pgconn; the sqlite driver used in tests only exposes message text, so the
// fallback matches on the constraint wording of both engines.
func detect(err error) (violationKind, string) {
	var pgErr *pgconn.PgError
	if stdErrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return violationUnique, pgErr.ConstraintName
		case pgForeignKeyViolation:
			return violationForeignKey, pgErr.ConstraintName
		case pgNotNullViolation, pgCheckViolation:
			return violationCheck, pgErr.ConstraintName
		}
		return violationNone, ""
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key value"),
		strings.Contains(msg, "UNIQUE constraint failed"):
		return violationUnique, msg
	case strings.Contains(msg, "violates foreign key constraint"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return violationForeignKey, msg
	case strings.Contains(msg, "violates check constraint"),
		strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "violates not-null constraint"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return violationCheck, msg
	}
	return violationNone, ""
}

// ClassifyWriteError converts a storage error raised by an insert or update
// into a coded error. Foreign key failures on writes mean the referenced
// parent does not exist.
func ClassifyWriteError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if stdErrors.As(err, new(*pkgerrors.Error)) {
		return err
	}
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, entity+" not found")
	}

	kind, constraint := detect(err)
	switch kind {
	case violationUnique:
		return pkgerrors.Wrap(pkgerrors.CodeDuplicateKey, err, entity+" violates a unique constraint").
			WithDetails(pkgerrors.FieldViolation{Entity: entity, Rule: constraint})
	case violationForeignKey:
		return pkgerrors.Wrap(pkgerrors.CodeInvalidReference, err, entity+" references a missing row").
			WithDetails(pkgerrors.FieldViolation{Entity: entity, Rule: constraint})
	case violationCheck:
		return pkgerrors.Wrap(pkgerrors.CodeValueOutOfRange, err, entity+" violates a value constraint").
			WithDetails(pkgerrors.FieldViolation{Entity: entity, Rule: constraint})
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing "+entity)
}

// ClassifyDeleteError converts a storage error raised by a delete into a
// coded error. Foreign key failures on deletes mean a RESTRICT dependent
// still references the row.
func ClassifyDeleteError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if stdErrors.As(err, new(*pkgerrors.Error)) {
		return err
	}
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, entity+" not found")
	}

	kind, constraint := detect(err)
	if kind == violationForeignKey {
		return pkgerrors.Wrap(pkgerrors.CodeDeleteBlocked, err, entity+" still has dependent rows").
			WithDetails(pkgerrors.FieldViolation{Entity: entity, Rule: constraint})
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting "+entity)
}

// ClassifyReadError maps gorm's not-found onto the coded taxonomy.
func ClassifyReadError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading "+entity)
}
