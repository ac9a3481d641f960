package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shifo-uz/clinicbackend/models"
)

var testSecret = []byte("test-secret")

func protectedHandler(t *testing.T, captured *Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		*captured = principal
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	var principal Principal
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &principal))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	var principal Principal
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &principal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsWrongKey(t *testing.T) {
	token, _, err := issueToken([]byte("other-secret"), 1, models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	var principal Principal
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &principal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	token, _, err := issueToken(testSecret, 1, models.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	var principal Principal
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &principal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareAcceptsEachTokenSource(t *testing.T) {
	token, _, err := issueToken(testSecret, 42, models.RoleReception, time.Hour)
	require.NoError(t, err)

	sources := map[string]func(r *http.Request){
		"bearer header":       func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
		"token header":        func(r *http.Request) { r.Header.Set("token", token) },
		"access_token header": func(r *http.Request) { r.Header.Set("access_token", token) },
		"cookie":              func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: token}) },
	}

	for name, attach := range sources {
		t.Run(name, func(t *testing.T) {
			var principal Principal
			handler := AuthMiddleware(testSecret)(protectedHandler(t, &principal))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			attach(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, uint(42), principal.ID)
			assert.Equal(t, models.RoleReception, principal.Role)
		})
	}
}

func TestAuthMiddlewareBearerWinsOverCookie(t *testing.T) {
	bearerToken, _, err := issueToken(testSecret, 1, models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	cookieToken, _, err := issueToken(testSecret, 2, models.RoleReception, time.Hour)
	require.NoError(t, err)

	var principal Principal
	handler := AuthMiddleware(testSecret)(protectedHandler(t, &principal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: cookieToken})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(1), principal.ID)
}

func TestRequireRoles(t *testing.T) {
	adminToken, _, err := issueToken(testSecret, 1, models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	receptionToken, _, err := issueToken(testSecret, 2, models.RoleReception, time.Hour)
	require.NoError(t, err)

	var principal Principal
	handler := AuthMiddleware(testSecret)(
		RequireRoles(models.RoleAdmin)(protectedHandler(t, &principal)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+receptionToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
