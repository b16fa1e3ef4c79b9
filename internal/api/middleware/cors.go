package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"loan-scheduler/internal/config"
)

// CORS lets the browser front end call the API from its own origin.
func CORS(cfg config.CORSConfig) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		MaxAge:         cfg.MaxAge,
	})
}
