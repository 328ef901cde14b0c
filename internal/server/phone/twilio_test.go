package phone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwilioVerifier_Lookup(t *testing.T) {
	var gotPath, gotUser, gotPass string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		switch r.URL.Path {
		case "/v1/PhoneNumbers/+44 20 7946 0939":
			_, _ = w.Write([]byte(`{"country_code":"GB","phone_number":"+442079460939","national_format":"020 7946 0939"}`))
		case "/v1/PhoneNumbers/000":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":20404,"message":"The requested resource was not found"}`))
		case "/v1/PhoneNumbers/busy":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer ts.Close()

	v := NewTwilioVerifier("AC123", "secret", ts.URL+"/", time.Second)
	ctx := context.Background()

	res, err := v.Lookup(ctx, "+44 20 7946 0939")
	require.NoError(t, err)
	assert.Equal(t, Result{Reachable: true, RegionCode: "GB", NormalizedNumber: "+442079460939"}, res)
	assert.Equal(t, "/v1/PhoneNumbers/+44 20 7946 0939", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "secret", gotPass)

	res, err = v.Lookup(ctx, "000")
	require.NoError(t, err)
	assert.Equal(t, Result{Reachable: true}, res)

	res, err = v.Lookup(ctx, "busy")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
	assert.False(t, res.Reachable)

	res, err = v.Lookup(ctx, "down")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
	assert.False(t, res.Reachable)
}

func TestTwilioVerifier_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := ts.URL
	ts.Close()

	res, err := NewTwilioVerifier("AC123", "secret", base, time.Second).Lookup(context.Background(), "+447700900123")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
	assert.False(t, res.Reachable)
}

func TestTwilioVerifier_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	res, err := NewTwilioVerifier("AC123", "secret", ts.URL, 50*time.Millisecond).Lookup(context.Background(), "+447700900123")
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
	assert.False(t, res.Reachable)
}

func TestNewTwilioVerifier_Defaults(t *testing.T) {
	v := NewTwilioVerifier("a", "b", "", 0)
	assert.Equal(t, DefaultTwilioBaseURL, v.baseURL)
	assert.Equal(t, DefaultTwilioTimeout, v.client.Timeout)
}

func TestPatternVerifier(t *testing.T) {
	res, err := PatternVerifier{}.Lookup(context.Background(), "+447700900123")
	require.NoError(t, err)
	assert.False(t, res.Reachable)
}
