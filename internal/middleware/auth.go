package middleware

import (
	"fmt"
	"strings"

	"anoa.com/jelajahpath/pkg/apperror"
	"anoa.com/jelajahpath/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what the auth collaborator puts in its tokens: a verified
// user id plus the anonymous/guest flag.
type SessionClaims struct {
	IsAnonymous bool `json:"is_anonymous"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.parseToken(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("is_anonymous", claims.IsAnonymous)
		c.Next()
	}
}

// OptionalAuth attaches the session when a valid token is present but lets
// unauthenticated requests through. Used by the leaderboard, which anonymous
// callers may read.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.parseToken(c)
		if err == nil {
			c.Set("user_id", claims.Subject)
			c.Set("is_anonymous", claims.IsAnonymous)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (*SessionClaims, error) {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	// Fallback to query parameter "token"
	if tokenString == "" {
		tokenString = c.Query("token")
	}

	if tokenString == "" {
		return nil, apperror.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return nil, apperror.ErrUnauthorized
	}

	return claims, nil
}
