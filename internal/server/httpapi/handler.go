package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/dmitrijs2005/myjar/internal/server/format"
	"github.com/dmitrijs2005/myjar/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// searchPrefix marks query parameters that are search criteria, as in
// f:town=york.
const searchPrefix = "f:"

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

var (
	emptyObject = struct{}{}
	emptyList   = []string{}
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, okPage := positiveParam(q.Get("page"), 1)
	size, okSize := positiveParam(q.Get("pageSize"), models.DefaultPageSize)
	size = min(size, s.maxPageSize)
	// the offset (page-1)*size must fit in an int
	if !okPage || !okSize || page-1 > math.MaxInt/size {
		writeJSON(w, http.StatusBadRequest, emptyList)
		return
	}
	window := models.PageOf(page, size)

	criteria := searchCriteria(q)

	var (
		views []format.PublicView
		err   error
	)
	if len(criteria) > 0 {
		views, err = s.directory.Search(r.Context(), criteria, window)
	} else {
		views, err = s.directory.List(r.Context(), window)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, emptyObject)
		return
	}

	v, err := s.directory.Create(r.Context(), fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	v, err := s.directory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleModifyClient(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, emptyObject)
		return
	}

	v, err := s.directory.Modify(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyObject)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.PingContext(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusBadRequest, emptyObject)
}

// writeError maps a directory error to its status code and body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr) && len(verr.Missing) > 0:
		writeJSON(w, http.StatusBadRequest, verr.Missing)
	case errors.As(err, &verr):
		writeJSON(w, http.StatusNotAcceptable, verr.Invalid)
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, emptyObject)
	case errors.Is(err, common.ErrorInvalidCriteria):
		writeJSON(w, http.StatusBadRequest, emptyList)
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, emptyObject)
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// readFields decodes a JSON request body. An empty body or a JSON value
// that is not an object yields no fields. Numbers keep their text form.
func readFields(r *http.Request) (map[string]any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}

	fields, ok := body.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return fields, nil
}

// positiveParam parses an optional positive integer query parameter.
func positiveParam(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// searchCriteria collects f:<field> parameters ordered by field name. The
// field is the text between the first and the second colon.
func searchCriteria(q map[string][]string) []models.Criterion {
	keys := make([]string, 0, len(q))
	for key := range q {
		if strings.HasPrefix(key, searchPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	criteria := make([]models.Criterion, 0, len(keys))
	for _, key := range keys {
		field := strings.SplitN(key, ":", 3)[1]
		criteria = append(criteria, models.Criterion{Field: field, Query: q[key][0]})
	}
	return criteria
}
