package utils

import (
	"errors"

	"aurum/karat_gold_loan/internal/pkg/models"
)

// GetErrorCode resolves the machine-readable code for an error, unwrapping as
// needed. Errors from outside the catalog collapse to the generic internal
// code so clients always see a code field.
func GetErrorCode(err error) string {
	var customErr *models.CustomError
	if errors.As(err, &customErr) {
		return customErr.ErrorCode()
	}
	return "KARAT1_INTERNAL_ERROR"
}
