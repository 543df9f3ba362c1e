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

	"github.com/pressroom/pressroom/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testRouter(auth *Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c)})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/public", auth.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c)})
	})

	return r
}

func perform(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	auth := NewAuth(&config.AuthConfig{JWTSecret: testSecret})
	r := testRouter(auth)

	w := perform(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, "/me", signToken(t, "wrong-secret", "userA", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, "/me", signToken(t, testSecret, "userA", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "userA")
}

func TestRequireAuthRejectsMissingSubject(t *testing.T) {
	auth := NewAuth(&config.AuthConfig{JWTSecret: testSecret})
	r := testRouter(auth)

	w := perform(r, "/me", signToken(t, testSecret, "", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	auth := NewAuth(&config.AuthConfig{JWTSecret: testSecret})
	r := testRouter(auth)

	w := perform(r, "/admin", signToken(t, testSecret, "userA", "editor"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, "/admin", signToken(t, testSecret, "userA", "admin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	auth := NewAuth(&config.AuthConfig{JWTSecret: testSecret})
	r := testRouter(auth)

	// Anonymous requests pass with no identity
	w := perform(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":""`)

	// Invalid tokens degrade to anonymous instead of failing
	w = perform(r, "/public", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, "/public", signToken(t, testSecret, "userA", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "userA")
}
