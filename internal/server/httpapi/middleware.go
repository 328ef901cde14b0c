package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// observe logs each request and reports it to the request observer,
// labelled by its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		method := r.Method + " " + route

		if s.observer != nil {
			s.observer.ObserveRequest("http", method, strconv.Itoa(code), start)
		}

		args := []any{
			"method", method,
			"code", code,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if code >= http.StatusInternalServerError {
			s.logger.Error(r.Context(), "request failed", args...)
			return
		}
		s.logger.Debug(r.Context(), "request", args...)
	})
}
