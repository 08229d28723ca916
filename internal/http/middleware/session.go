package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/session"
)

type SessionResolver interface {
	Resolve(ctx context.Context, r *http.Request) (uuid.UUID, bool, error)
}

// RequireSession rejects anonymous requests and stores the session's user id in
// the request context. onError writes the error response.
func RequireSession(
	resolver SessionResolver,
	onError func(w http.ResponseWriter, r *http.Request, err error),
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok, err := resolver.Resolve(r.Context(), r)
			if err != nil {
				onError(w, r, err)
				return
			}
			if !ok {
				onError(w, r, apperr.UnauthorizedErr)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), userID)))
		})
	}
}
