package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/dmitrijs2005/myjar/internal/cryptox"
	"github.com/dmitrijs2005/myjar/internal/dbx"
	"github.com/dmitrijs2005/myjar/internal/logging"
	"github.com/dmitrijs2005/myjar/internal/server/directory"
	"github.com/dmitrijs2005/myjar/internal/server/format"
	"github.com/dmitrijs2005/myjar/internal/server/models"
	"github.com/dmitrijs2005/myjar/internal/server/phone"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/myjar/internal/server/services"
	"github.com/dmitrijs2005/myjar/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (g *seqIDs) Generate(string, string) string {
	g.n++
	return fmt.Sprintf("c%d", g.n)
}

func newDirectoryServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	m := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite)
	c, err := cryptox.Initialize(context.Background(), cryptox.Options{Passphrase: "test passphrase"})
	require.NoError(t, err)

	d := directory.New(
		services.NewClientService(db, m, &seqIDs{}),
		services.NewSearchService(db, m),
		format.NewValidator(phone.PatternVerifier{}, format.DefaultRegion, logging.Nop{}),
		c, nil, logging.Nop{},
	)

	s := NewServer(":0", logging.Nop{}, d, Options{Health: db})
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, strings.TrimSpace(string(b))
}

func TestAPI_EndToEnd(t *testing.T) {
	ts := newDirectoryServer(t)

	code, body := do(t, http.MethodPut, ts.URL+"/client",
		`{"email":"a@b.com","mobile":"+44 20 7946 0939","town":"York"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":"c1","email":"a@b.com","mobile":"+********0939","town":"York"}`, body)

	code, body = do(t, http.MethodGet, ts.URL+"/client/c1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"c1","email":"a@b.com","mobile":"+********0939","town":"York"}`, body)

	code, body = do(t, http.MethodGet, ts.URL+"/clients?f:town=yor", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":"c1","email":"a@b.com","mobile":"+********0939","town":"York"}]`, body)

	code, body = do(t, http.MethodPut, ts.URL+"/client/c1", `{"town":""}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"c1","email":"a@b.com","mobile":"+********0939"}`, body)

	code, body = do(t, http.MethodDelete, ts.URL+"/client/c1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `{}`, body)

	code, body = do(t, http.MethodGet, ts.URL+"/client/c1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, `{}`, body)

	code, _ = do(t, http.MethodDelete, ts.URL+"/client/c1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_CreateStatusCodes(t *testing.T) {
	ts := newDirectoryServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{"missing both", `{}`, http.StatusBadRequest, `["email","mobile"]`},
		{"empty body", ``, http.StatusBadRequest, `["email","mobile"]`},
		{"not an object", `[1,2]`, http.StatusBadRequest, `["email","mobile"]`},
		{"missing mobile", `{"email":"bad"}`, http.StatusBadRequest, `["mobile"]`},
		{"invalid contact", `{"email":"bad","mobile":"0123"}`, http.StatusNotAcceptable, `["email","mobile"]`},
		{"invalid attribute", `{"email":"a@b.com","mobile":"+442079460939","tags":["x"]}`, http.StatusNotAcceptable, `["tags"]`},
		{"malformed json", `{"email":`, http.StatusBadRequest, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, http.MethodPut, ts.URL+"/client", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}

	code, body := do(t, http.MethodGet, ts.URL+"/clients", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[]`, body)
}

func TestAPI_CreateKeepsNumberText(t *testing.T) {
	ts := newDirectoryServer(t)

	code, body := do(t, http.MethodPut, ts.URL+"/client",
		`{"email":"a@b.com","mobile":"+442079460939","age":42,"vip":true}`)
	require.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":"c1","email":"a@b.com","mobile":"+********0939","age":"42","vip":"true"}`, body)
}

func TestAPI_ModifyStatusCodes(t *testing.T) {
	ts := newDirectoryServer(t)

	code, _ := do(t, http.MethodPut, ts.URL+"/client", `{"email":"a@b.com","mobile":"+442079460939"}`)
	require.Equal(t, http.StatusCreated, code)

	code, body := do(t, http.MethodPut, ts.URL+"/client/c1", `{"mobile":"123"}`)
	assert.Equal(t, http.StatusNotAcceptable, code)
	assert.JSONEq(t, `["mobile"]`, body)

	code, body = do(t, http.MethodPut, ts.URL+"/client/nope", `{"town":"Hull"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, `{}`, body)

	code, body = do(t, http.MethodPut, ts.URL+"/client/c1", `{"email":"new@b.com"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"c1","email":"new@b.com","mobile":"+********0939"}`, body)
}

func TestAPI_Paging(t *testing.T) {
	ts := newDirectoryServer(t)

	for i := 1; i <= 3; i++ {
		code, _ := do(t, http.MethodPut, ts.URL+"/client",
			fmt.Sprintf(`{"email":"u%d@acme.com","mobile":"+442079460939"}`, i))
		require.Equal(t, http.StatusCreated, code)
	}

	ids := func(body string) []string {
		var views []map[string]string
		require.NoError(t, json.Unmarshal([]byte(body), &views))
		out := []string{}
		for _, v := range views {
			out = append(out, v["id"])
		}
		return out
	}

	code, body := do(t, http.MethodGet, ts.URL+"/clients?page=2&pageSize=2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"c3"}, ids(body))

	code, body = do(t, http.MethodGet, ts.URL+"/clients?page=1&pageSize=1000", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(body))

	code, body = do(t, http.MethodGet, ts.URL+"/clients?f:email=acme&pageSize=2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"c1", "c2"}, ids(body))

	code, body = do(t, http.MethodGet, ts.URL+"/clients?page=3&pageSize=2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `[]`, body)

	for _, q := range []string{
		"page=0", "page=-1", "page=abc", "pageSize=0", "pageSize=x",
		"page=9223372036854775807",
		"page=92233720368547760&pageSize=100",
		"page=99999999999999999999",
	} {
		code, body = do(t, http.MethodGet, ts.URL+"/clients?"+q, "")
		assert.Equal(t, http.StatusBadRequest, code, q)
		assert.Equal(t, `[]`, body, q)
	}
}

func TestAPI_UnknownRoutes(t *testing.T) {
	ts := newDirectoryServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nowhere"},
		{http.MethodPost, "/client"},
		{http.MethodPatch, "/client/c1"},
		{http.MethodDelete, "/clients"},
	} {
		code, body := do(t, tc.method, ts.URL+tc.path, "")
		assert.Equal(t, http.StatusBadRequest, code, tc.path)
		assert.Equal(t, `{}`, body, tc.path)
	}
}

func TestAPI_Health(t *testing.T) {
	ts := newDirectoryServer(t)

	code, body := do(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

// ---- fakes for error mapping ----

type failingDirectory struct {
	Directory
	err error
}

func (f failingDirectory) Get(context.Context, string) (format.PublicView, error) {
	return format.PublicView{}, f.err
}

func (f failingDirectory) Search(context.Context, []models.Criterion, models.Page) ([]format.PublicView, error) {
	return nil, f.err
}

type badPinger struct{}

func (badPinger) PingContext(context.Context) error { return errors.New("down") }

type recordingObserver struct {
	methods, codes []string
}

func (o *recordingObserver) ObserveRequest(transport, method, code string, _ time.Time) {
	o.methods = append(o.methods, transport+" "+method)
	o.codes = append(o.codes, code)
}

func TestAPI_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", common.ErrorNotFound, http.StatusNotFound, `{}`},
		{"internal", errors.New("db error: boom"), http.StatusInternalServerError, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(":0", logging.Nop{}, failingDirectory{err: tt.err}, Options{})
			rec := httptest.NewRecorder()
			s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client/c1", nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAPI_ObservesRoutePattern(t *testing.T) {
	o := &recordingObserver{}
	s := NewServer(":0", logging.Nop{}, failingDirectory{err: common.ErrorNotFound}, Options{Observer: o})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/client/c42", nil))

	assert.Equal(t, []string{"http GET /client/{id}"}, o.methods)
	assert.Equal(t, []string{"404"}, o.codes)
}

func TestAPI_HealthUnavailable(t *testing.T) {
	s := NewServer(":0", logging.Nop{}, failingDirectory{}, Options{Health: badPinger{}})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPI_MetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "myjar_clients_created_total 0\n")
	})
	s := NewServer(":0", logging.Nop{}, failingDirectory{}, Options{Metrics: metrics})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "myjar_clients_created_total")
}

func TestSearchCriteria(t *testing.T) {
	got := searchCriteria(map[string][]string{
		"f:town":    {"york"},
		"f:email:x": {"acme"},
		"page":      {"1"},
		"f:":        {"any"},
		"notf:nope": {"x"},
	})
	assert.Equal(t, []models.Criterion{
		{Field: "", Query: "any"},
		{Field: "email", Query: "acme"},
		{Field: "town", Query: "york"},
	}, got)
}

func TestPositiveParam(t *testing.T) {
	n, ok := positiveParam("", 7)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = positiveParam("3", 7)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = positiveParam("1.5", 7)
	assert.False(t, ok)
}
