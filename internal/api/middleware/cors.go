package middleware

import (
	"github.com/go-chi/cors"
)

// CORSOptions allows the configured origins to call the upload routes
// and read the informational response headers.
func CORSOptions(allowedOrigins []string) cors.Options {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	// When wildcard is used, disable AllowCredentials to prevent CSRF
	allowCreds := true
	for _, o := range allowedOrigins {
		if o == "*" {
			allowCreds = false
			break
		}
	}

	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{"Content-Length", RequestIDHeader, "X-Content-Digest", "X-Summary-Below-Min"},
		AllowCredentials: allowCreds,
		MaxAge:           300,
	}
}
