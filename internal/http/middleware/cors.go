package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"

	"github.com/tuanvumaihuynh/inventory-service/pkg/correlationid"
)

// Cors allows the given origins. Credentials are only allowed for an explicit origin list.
func Cors(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", correlationid.Header},
		ExposedHeaders:   []string{correlationid.Header},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	})
}
