package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordgroups/internal/config"
)

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles the register/login/logout JSON endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	limiter        *LoginLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, cfg config.Auth) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		limiter:        NewLoginLimiter(cfg.MaxLoginAttempts, cfg.RateLimitWindow, cfg.LockoutDuration),
	}
}

// RegisterRoutes registers authentication routes under group.
func (ac *AuthController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/register", ac.Register)
	group.POST("/login", ac.Login)
	group.POST("/logout", ac.Logout)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	ac.limiter.Stop()
}

func (ac *AuthController) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUsernameInvalid),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to register user %q: %v", req.Username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// Login exchanges credentials for a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clientIP := c.ClientIP()

	if allowed, retryAfter := ac.limiter.Allow(clientIP, req.Username); !allowed {
		c.Header("Retry-After", retryAfter.Round(time.Second).String())
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		return
	}

	user, err := ac.service.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			ac.limiter.RecordFailure(clientIP, req.Username)
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to authenticate %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	ac.limiter.RecordSuccess(clientIP, req.Username)

	token, expiresAt, err := ac.sessionManager.IssueToken(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("Failed to issue token for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
	})
}

// Logout revokes the token the request was authenticated with.
func (ac *AuthController) Logout(c *gin.Context) {
	token, exists := c.Get(ContextKeyToken)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrAuthRequired.Error()})
		return
	}

	if err := ac.sessionManager.RevokeToken(c.Request.Context(), token.(string)); err != nil {
		log.Printf("Failed to revoke token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
