package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"guest_reviews/internal/adapters/observability"
)

const unmatchedRoute = "unmatched"

// Timeout bounds a request; a refresh waiting on slow sources answers 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// AccessLog records one metrics sample and one log line per request.
// It runs inside RealIP, so RemoteAddr already holds the client address.
func AccessLog(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			took := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routeLabel(r)
			observability.ObserveHTTP(route, r.Method, status, took)

			if route == unmatchedRoute {
				route = r.URL.Path
			}
			ev := l.Info()
			if status >= http.StatusInternalServerError {
				ev = l.Warn()
			}
			ev.Str("request_id", chimw.GetReqID(r.Context())).
				Str("route", route).
				Str("method", r.Method).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", took).
				Str("remote", clientHost(r.RemoteAddr)).
				Msg("http_request")
		})
	}
}

// routeLabel is the matched chi pattern, so /v1/properties/{name} stays one
// metrics series whatever the name.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

func clientHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
