package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frental-api/internal/domain"
	jwtinfra "github.com/frental-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

type stubLandlordReader struct {
	landlord *domain.Landlord
	err      error
}

func (s *stubLandlordReader) Get(ctx context.Context, landlordID string) (*domain.Landlord, error) {
	return s.landlord, s.err
}

func requestWithClaims(userID string) *http.Request {
	claims := &jwtinfra.Claims{UserID: userID, Role: "landlord"}
	ctx := context.WithValue(context.Background(), claimsKey, claims)
	return httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx)
}

func TestRequireVerified_NoClaims(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireVerified(&stubLandlordReader{})(http.HandlerFunc(okHandler)).
		ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireVerified_UnknownAccount(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireVerified(&stubLandlordReader{err: domain.ErrNotFound})(http.HandlerFunc(okHandler)).
		ServeHTTP(rr, requestWithClaims("l1"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireVerified_Unverified(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireVerified(&stubLandlordReader{landlord: &domain.Landlord{LandlordID: "l1"}})(http.HandlerFunc(okHandler)).
		ServeHTTP(rr, requestWithClaims("l1"))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireVerified_Verified(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireVerified(&stubLandlordReader{landlord: &domain.Landlord{LandlordID: "l1", IsVerified: true}})(http.HandlerFunc(okHandler)).
		ServeHTTP(rr, requestWithClaims("l1"))
	assert.Equal(t, http.StatusOK, rr.Code)
}
