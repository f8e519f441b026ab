package services

import (
	"errors"

	"github.com/issuetrack-api/apperror"
	"gorm.io/gorm"
)

// lookupError turns a failed lookup into NotFound, or Internal for anything
// other than a missing row.
func lookupError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(message)
	}
	return apperror.Internal(err)
}

// policyError passes denials through and wraps storage failures
func policyError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.Internal(err)
}
