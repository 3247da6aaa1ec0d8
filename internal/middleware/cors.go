package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// AllowCors lets browser pages served from other origins call the api.
func AllowCors(handler http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization",
		},
	}).Handler(handler)
}
