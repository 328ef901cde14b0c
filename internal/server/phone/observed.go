package phone

import "context"

// ObservedVerifier reports the outcome of every lookup to observe.
type ObservedVerifier struct {
	next    Verifier
	observe func(reachable bool)
}

func NewObservedVerifier(next Verifier, observe func(reachable bool)) *ObservedVerifier {
	return &ObservedVerifier{next: next, observe: observe}
}

func (v *ObservedVerifier) Lookup(ctx context.Context, number string) (Result, error) {
	res, err := v.next.Lookup(ctx, number)
	v.observe(err == nil && res.Reachable)
	return res, err
}
