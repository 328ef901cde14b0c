package format

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/myjar/internal/logging"
	"github.com/dmitrijs2005/myjar/internal/server/phone"
)

// DefaultRegion is the region mobile numbers must belong to.
const DefaultRegion = "GB"

var (
	emailPattern = regexp.MustCompile(`^([a-zA-Z0-9_+-]+)((\.[a-zA-Z0-9_+-]+)+)?@([a-zA-Z0-9_+-]+)((\.[a-zA-Z0-9_+-]+)+)$`)

	// Accepts +44 XX XXXX XXXX, +44 XX-XXXX-XXXX and +44XXXXXXXXXX.
	mobilePattern = regexp.MustCompile(`^(\+44)((\s\d{2}\s\d{4}\s\d{4})|(\s\d{2}-\d{4}-\d{4})|(\d{10}))$`)
)

// Validator checks contact fields. Mobile numbers are checked with the
// phone verifier and, when it cannot be reached, with a fixed pattern.
type Validator struct {
	verifier phone.Verifier
	region   string
	logger   logging.Logger
}

func NewValidator(verifier phone.Verifier, region string, logger logging.Logger) *Validator {
	if region == "" {
		region = DefaultRegion
	}
	return &Validator{
		verifier: verifier,
		region:   region,
		logger:   logger.With("module", "validator"),
	}
}

func (v *Validator) ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func (v *Validator) ValidateMobile(ctx context.Context, number string) bool {
	_, ok := v.NormalizeMobile(ctx, number)
	return ok
}

// NormalizeMobile returns the canonical form of number and whether it is
// valid. A reachable verifier decides both; otherwise number must match
// the fallback pattern and is returned without whitespace.
func (v *Validator) NormalizeMobile(ctx context.Context, number string) (string, bool) {
	res, ok := v.lookup(ctx, number)
	if !ok {
		if !mobilePattern.MatchString(number) {
			return "", false
		}
		return stripSpace(number), true
	}

	if !strings.EqualFold(res.RegionCode, v.region) {
		return "", false
	}
	if res.NormalizedNumber == "" {
		return stripSpace(number), true
	}
	return res.NormalizedNumber, true
}

func (v *Validator) lookup(ctx context.Context, number string) (phone.Result, bool) {
	res, err := v.verifier.Lookup(ctx, number)
	if err != nil {
		v.logger.Debug(ctx, "phone lookup unavailable, using pattern", "error", err)
		return phone.Result{}, false
	}
	return res, res.Reachable
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
