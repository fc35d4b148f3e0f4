package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/davidbz/pdfnotes/internal/config"
)

// CORS handles Cross-Origin Resource Sharing for browser and desktop-automation
// clients calling the API from another origin.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{traceIDHeader, requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return c.Handler
}
