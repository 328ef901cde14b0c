package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	t.Run("success with basic auth", func(t *testing.T) {
		var gotUser, gotPass, gotMethod, gotAccept string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotAccept = r.Header.Get("Accept")
			gotUser, gotPass, _ = r.BasicAuth()
			_, _ = w.Write([]byte(`{"country_code":"GB"}`))
		}))
		defer ts.Close()

		var out struct {
			CountryCode string `json:"country_code"`
		}
		err := GetJSON(context.Background(), ts.Client(), ts.URL, "sid", "token", &out)
		require.NoError(t, err)
		assert.Equal(t, "GB", out.CountryCode)
		assert.Equal(t, http.MethodGet, gotMethod)
		assert.Equal(t, "application/json", gotAccept)
		assert.Equal(t, "sid", gotUser)
		assert.Equal(t, "token", gotPass)
	})

	t.Run("no auth header without user", func(t *testing.T) {
		var hasAuth bool
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _, hasAuth = r.BasicAuth()
			_, _ = w.Write([]byte(`{}`))
		}))
		defer ts.Close()

		var out map[string]any
		require.NoError(t, GetJSON(context.Background(), ts.Client(), ts.URL, "", "", &out))
		assert.False(t, hasAuth)
	})

	t.Run("non-2xx is a StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(strings.Repeat("x", 2*maxErrorBody)))
		}))
		defer ts.Close()

		var out map[string]any
		err := GetJSON(context.Background(), ts.Client(), ts.URL, "", "", &out)
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusNotFound, se.Code)
		assert.Len(t, se.Body, maxErrorBody)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("bad json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer ts.Close()

		var out map[string]any
		err := GetJSON(context.Background(), ts.Client(), ts.URL, "", "", &out)
		assert.ErrorContains(t, err, "decode response")
	})

	t.Run("transport error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := ts.URL
		ts.Close()

		var out map[string]any
		err := GetJSON(context.Background(), &http.Client{Timeout: time.Second}, url, "", "", &out)
		require.Error(t, err)
		var se *StatusError
		assert.False(t, errors.As(err, &se))
	})

	t.Run("bad url", func(t *testing.T) {
		var out map[string]any
		err := GetJSON(context.Background(), http.DefaultClient, "://bad", "", "", &out)
		assert.Error(t, err)
	})
}
