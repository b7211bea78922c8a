package http

import (
	"context"
	"net/http"
	"time"
)

// NewTimeoutMiddleware creates middleware bounding analysis request handling by timeout.
// Non-positive timeout leaves the request context untouched, so analysis ends only with the client.
func NewTimeoutMiddleware(timeout time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(h http.HandlerFunc) http.HandlerFunc {
		if timeout <= 0 {
			return h
		}

		return func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			h(w, r.WithContext(ctx))
		}
	}
}
