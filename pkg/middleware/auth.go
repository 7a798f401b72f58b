package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prohmpiriya/cinema-booking/pkg/response"
)

const (
	// ContextKeyUserID is the context key for the caller's user id
	ContextKeyUserID = "user_id"
	// ContextKeyAuthorization is the context key for the raw Authorization header
	ContextKeyAuthorization = "authorization"
	// ContextKeySuperuser is set once RequireSuperuser has passed
	ContextKeySuperuser = "is_superuser"

	bearerPrefix = "Bearer "
	// UnauthorizedMessage is the status text of every 401 response
	UnauthorizedMessage = "unauthorized access"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// IdentityVerifier checks credentials against the identity service
type IdentityVerifier interface {
	VerifyToken(ctx context.Context, authorization string) error
	IsSuperuser(ctx context.Context, authorization, userID string) (bool, error)
}

// AuthConfig holds configuration for the auth middlewares
type AuthConfig struct {
	// Secret is the HMAC key the identity service signs access tokens with
	Secret   string
	Verifier IdentityVerifier
}

// Authenticate requires a bearer token accepted by the identity service and
// stores the caller's user id (the token subject) in the context
func Authenticate(cfg *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		userID, err := SubjectFromHeader(authHeader, cfg.Secret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		if err := cfg.Verifier.VerifyToken(c.Request.Context(), authHeader); err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyAuthorization, authHeader)
		c.Next()
	}
}

// RequireSuperuser must run after Authenticate
func RequireSuperuser(cfg *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		isSuperuser, err := cfg.Verifier.IsSuperuser(c.Request.Context(), GetAuthorization(c), userID)
		if err != nil || !isSuperuser {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextKeySuperuser, true)
		c.Next()
	}
}

// SubjectFromHeader parses "Bearer <jwt>" and returns the sub claim
func SubjectFromHeader(authHeader, secret string) (string, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrMissingToken
	}
	tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if tokenString == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// GetUserID extracts the caller's user id from gin context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// GetAuthorization returns the Authorization header accepted by Authenticate
func GetAuthorization(c *gin.Context) string {
	return c.GetString(ContextKeyAuthorization)
}

// IsSuperuser reports whether RequireSuperuser passed for this request
func IsSuperuser(c *gin.Context) bool {
	return c.GetBool(ContextKeySuperuser)
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized(UnauthorizedMessage))
}
