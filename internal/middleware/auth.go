package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/irondev/iron-dev-agent/internal/constants"
	apierrors "github.com/irondev/iron-dev-agent/internal/errors"
	"github.com/irondev/iron-dev-agent/internal/models"
	"github.com/irondev/iron-dev-agent/internal/services"
)

// TokenParser verifies a bearer token and returns its user ID.
type TokenParser interface {
	Parse(token string) (uint64, error)
}

// UserLoader resolves the user a token belongs to.
type UserLoader interface {
	GetUser(id uint64) (*models.User, error)
}

// Protect requires a valid bearer token for an existing user.
func Protect(tokens TokenParser, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Not authorized, no token")
			c.Abort()
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			apierrors.Unauthorized(c, "Not authorized, token failed")
			c.Abort()
			return
		}

		user, err := users.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				apierrors.Unauthorized(c, "Not authorized, user not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the user loaded by Protect
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// BasicAuth checks the single legacy credential pair. It never calls c.Next,
// so WhenBasicAuth can run it inline.
func BasicAuth(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="Iron Dev Agent"`)
			apierrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		if !userMatch || !passMatch {
			c.Header("WWW-Authenticate", `Basic realm="Iron Dev Agent"`)
			apierrors.Unauthorized(c, "Invalid credentials")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyLegacyUser, user)
	}
}

// WhenBasicAuth serves a request with the legacy chain when it carries a
// Basic credential, and passes anything else on to the rest of the route.
// Handlers in chain must not call c.Next.
func WhenBasicAuth(chain ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Basic ") {
			c.Next()
			return
		}

		for _, handler := range chain {
			handler(c)
			if c.IsAborted() {
				return
			}
		}
		c.Abort()
	}
}
