// Package common defines shared constants and sentinel errors used across
// client and server layers of myjar. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorValidation      = errors.New("validation error")
	ErrorInvalidCriteria = errors.New("invalid search criteria")

	// Encryption errors.
	ErrConfiguration = errors.New("encryption configuration error")
	ErrDecryption    = errors.New("decryption failed")

	// Phone lookup service could not be reached. Never leaves the validator.
	ErrServiceUnavailable = errors.New("external service unavailable")
)

// ValidationError lists the offending field names of a rejected request.
// Missing holds required fields that were absent, Invalid holds fields
// that were present but malformed.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return ErrorValidation.Error()
	}
	return ErrorValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrorValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// Empty reports whether no field was rejected.
func (e *ValidationError) Empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}
