package phone

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/dmitrijs2005/myjar/internal/netx"
)

const (
	DefaultTwilioBaseURL = "https://lookups.twilio.com"
	DefaultTwilioTimeout = 5 * time.Second
)

// TwilioVerifier looks numbers up with the Twilio Lookup API.
type TwilioVerifier struct {
	baseURL string
	sid     string
	token   string
	client  *http.Client
}

type twilioLookup struct {
	CountryCode string `json:"country_code"`
	PhoneNumber string `json:"phone_number"`
}

// NewTwilioVerifier builds a verifier. Empty baseURL and zero timeout pick
// the defaults.
func NewTwilioVerifier(sid, token, baseURL string, timeout time.Duration) *TwilioVerifier {
	if baseURL == "" {
		baseURL = DefaultTwilioBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTwilioTimeout
	}
	return &TwilioVerifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		sid:     sid,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *TwilioVerifier) Lookup(ctx context.Context, number string) (Result, error) {
	endpoint := v.baseURL + "/v1/PhoneNumbers/" + url.PathEscape(number)

	var out twilioLookup
	err := netx.GetJSON(ctx, v.client, endpoint, v.sid, v.token, &out)

	var se *netx.StatusError
	switch {
	case err == nil:
		return Result{Reachable: true, RegionCode: out.CountryCode, NormalizedNumber: out.PhoneNumber}, nil
	case errors.As(err, &se) && se.Code < 500 && se.Code != http.StatusTooManyRequests:
		// the service answered but does not know or accept the number
		return Result{Reachable: true}, nil
	default:
		return Result{}, fmt.Errorf("%w: twilio lookup: %w", common.ErrServiceUnavailable, err)
	}
}
