package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject string, anonymous bool) string {
	t.Helper()

	claims := SessionClaims{
		IsAnonymous: anonymous,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(handler gin.HandlerFunc, useAuth gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", useAuth, handler)
	return router
}

func probe(c *gin.Context) {
	userID, _ := c.Get("user_id")
	anonymous := c.GetBool("is_anonymous")
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "is_anonymous": anonymous})
}

func TestRequireAuthValidToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(probe, m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "8b7f6c5a-0000-0000-0000-000000000001", false))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "8b7f6c5a")
}

func TestRequireAuthMissingToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(probe, m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	m := NewAuthMiddleware("another-secret")
	router := newTestRouter(probe, m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user", false))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthTokenQueryFallback(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(probe, m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe?token="+signToken(t, "user", false), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(probe, m.OptionalAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Request passes through without a session.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":null`)
}

func TestOptionalAuthCarriesAnonymousFlag(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(probe, m.OptionalAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "guest", true))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_anonymous":true`)
}
