package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/DanielPopoola/payment-records/internal/adapters/handler"
)

const timeoutBody = `{"error":"Service Unavailable","message":"Request timeout"}`

// Timeout answers with a JSON 503 once timeout elapses. The CORS headers are
// set up front so the timeout reply carries them like every other error.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		timeoutHandler := http.TimeoutHandler(next, timeout, timeoutBody)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			handler.SetCORSHeaders(w.Header())
			timeoutHandler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
