package models

import (
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/common"
)

// ValidationError reports a form field that blocks submission.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match any validation failure with
// errors.Is(err, common.ErrorValidation).
func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

func required(field, value string) error {
	if isBlank(value) {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
