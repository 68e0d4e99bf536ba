package middleware

import (
	"context"
	"net/http"

	"github.com/frental-api/internal/domain"
)

// LandlordReader is the lookup needed by the verified-email gate.
type LandlordReader interface {
	Get(ctx context.Context, landlordID string) (*domain.Landlord, error)
}

// RequireVerified blocks landlords who have not confirmed their email address.
// The record is re-read on every request so a verification that happened after
// the JWT was issued takes effect immediately.
func RequireVerified(repo LandlordReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			l, err := repo.Get(r.Context(), claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unknown account")
				return
			}
			if !l.IsVerified {
				writeJSONError(w, http.StatusForbidden, "email not verified")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
