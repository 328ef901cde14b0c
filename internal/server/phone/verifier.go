// Package phone provides lookups of phone numbers against an external
// verification service.
//
// A Verifier either answers definitively (Result.Reachable is true) or
// reports that no answer could be obtained, in which case callers fall back
// to local pattern matching.
package phone

import "context"

// Result of a number lookup. RegionCode and NormalizedNumber are empty when
// the service does not know the number.
type Result struct {
	Reachable        bool   `json:"reachable"`
	RegionCode       string `json:"region_code"`
	NormalizedNumber string `json:"normalized_number"`
}

type Verifier interface {
	// Lookup asks the service about number. A transport failure yields
	// Reachable=false and an error wrapping common.ErrServiceUnavailable.
	Lookup(ctx context.Context, number string) (Result, error)
}

// PatternVerifier never reaches a service, so callers always use their
// local pattern.
type PatternVerifier struct{}

func (PatternVerifier) Lookup(context.Context, string) (Result, error) {
	return Result{}, nil
}
