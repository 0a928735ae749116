package middleware

import (
	"adaptivequiz/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAdminExposesAdminID(t *testing.T) {
	authSvc := service.NewAuthService("admin", "secret", "test-secret")
	login, err := authSvc.Login("admin", "secret")
	require.NoError(t, err)

	var seen string
	h := NewAuthMiddleware(authSvc).RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetAdminID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("POST", "/v1/questions/import-samples", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, login.AdminID, seen)

	req = httptest.NewRequest("POST", "/v1/questions/import-samples", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAdminIDWithoutClaims(t *testing.T) {
	assert.Equal(t, "", GetAdminID(context.Background()))
}
