package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pressroom/pressroom/config"
)

const (
	ctxUserID = "userID"
	ctxRole   = "userRole"

	roleAdmin = "admin"
)

// Auth verifies bearer tokens and attaches the user identity to the
// request context. Token issuance lives outside this service; only the
// shared secret is configured here.
type Auth struct {
	secret []byte
}

// NewAuth creates the auth middleware from config
func NewAuth(cfg *config.AuthConfig) *Auth {
	return &Auth{secret: []byte(cfg.JWTSecret)}
}

// RequireAuth aborts with 401 unless a valid bearer token is presented
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := a.identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, role)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is presented and
// lets the request through anonymously otherwise
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, role, ok := a.identity(c); ok {
			c.Set(ctxUserID, userID)
			c.Set(ctxRole, role)
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user is an admin.
// Must run after RequireAuth.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != roleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func (a *Auth) identity(c *gin.Context) (userID, role string, ok bool) {
	tokenString := extractBearer(c.GetHeader("Authorization"))
	if tokenString == "" {
		return "", "", false
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", "", false
	}
	r, _ := claims["role"].(string)

	return sub, r, true
}

// UserID returns the authenticated user id from the request context,
// empty for anonymous requests
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
