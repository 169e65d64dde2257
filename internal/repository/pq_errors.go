package repository

import (
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/eventpulse/eventpulse-api/pkg/errors"
)

// Postgres error codes the repositories translate into domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateConstraintError maps constraint violations onto the typed domain
// errors so services never inspect driver errors themselves. Other errors
// pass through unchanged.
func translateConstraintError(err error, duplicateMsg, referenceMsg string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return appErrors.Wrap(err, appErrors.ErrDuplicateKey.Code, appErrors.ErrDuplicateKey.Status, duplicateMsg)
	case pqForeignKeyViolation:
		return appErrors.Wrap(err, appErrors.ErrReferenceNotFound.Code, appErrors.ErrReferenceNotFound.Status, referenceMsg)
	}
	return err
}
