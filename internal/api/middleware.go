package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lodviz/pkg/errors"
	"github.com/matzehuels/lodviz/pkg/httputil"
	"github.com/matzehuels/lodviz/pkg/observability"
)

// routePattern returns the matched chi pattern, so IDs do not explode
// hook cardinality. Before routing it falls back to the raw path.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Microsecond),
			"request_id", httputil.GetRequestID(r.Context()))
	})
}

// recoverer turns handler panics into INTERNAL_ERROR responses.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := errors.New(errors.ErrCodeInternal, "internal error")
			s.logger.Error("handler panic", "panic", rec, "request_id", httputil.GetRequestID(r.Context()))
			observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
			httputil.WriteError(w, r, err)
		}()
		next.ServeHTTP(w, r)
	})
}

// fail writes err and reports it to the HTTP hooks. Server-side failures
// are logged at error level, client errors at debug.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOrInternal(err)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	if code.HTTPStatus() >= http.StatusInternalServerError {
		s.logger.Error("request failed", "route", routePattern(r), "err", err, "request_id", httputil.GetRequestID(r.Context()))
	} else {
		s.logger.Debug("request rejected", "route", routePattern(r), "code", code, "err", err)
	}
	httputil.WriteError(w, r, err)
}

// respond writes v as the JSON response, logging bodies that fail to encode.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := httputil.WriteJSON(w, status, v); err != nil {
		observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
		s.logger.Error("response failed", "route", routePattern(r), "err", err, "request_id", httputil.GetRequestID(r.Context()))
	}
}
