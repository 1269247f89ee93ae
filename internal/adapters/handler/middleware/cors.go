package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS answers browser preflight requests. Actual responses carry their own
// fixed CORS headers from the handler package.
func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler
}
