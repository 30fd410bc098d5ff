package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordgroups/internal/config"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyToken    = "auth_token"
)

// Middleware handles authentication for HTTP requests.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	config         config.Auth
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager, cfg config.Auth) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		config:         cfg,
	}
}

// Handler returns a Gin middleware handler that identifies the caller.
// Requests without a token continue anonymously; a token that does not
// resolve to a user is rejected with 401.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.config.Mode != config.AuthModeLocal {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			c.Next()
			return
		}

		userID, err := m.sessionManager.UserIDFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := m.service.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// RequireUser rejects anonymous callers in local mode. In "none" mode every
// caller is anonymous and the route stays open.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.config.Mode == config.AuthModeLocal && GetUserID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrAuthRequired.Error()})
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// present is true whenever an Authorization header was sent, even a malformed one.
func bearerToken(c *gin.Context) (token string, present bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// Helper functions to extract auth data from Gin context

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 for anonymous callers.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// CallerID is GetUserID as an owner reference: nil for anonymous callers.
func CallerID(c *gin.Context) *uint {
	id := GetUserID(c)
	if id == 0 {
		return nil
	}
	return &id
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}
