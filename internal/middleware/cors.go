package middleware

import (
	"net/http"

	"github.com/feedback-api/internal/config"
	"github.com/rs/cors"
)

// CORS разрешает браузерному фронтенду обращаться к API с заданных источников
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           43200,
	})
	return c.Handler
}
