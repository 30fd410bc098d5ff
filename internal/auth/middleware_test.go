package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordgroups/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter builds a router with the auth endpoints and a write route that
// echoes the caller.
func setupRouter(t *testing.T, mode config.AuthMode) *gin.Engine {
	t.Helper()
	svc, sm := setupAuth(t)

	cfg := testAuthConfig()
	cfg.Mode = mode

	mw := NewMiddleware(svc, sm, cfg)
	controller := NewAuthController(svc, sm, cfg)
	t.Cleanup(controller.Stop)

	router := gin.New()
	router.Use(mw.Handler())

	controller.RegisterRoutes(router.Group("/api/auth"))

	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "username": GetUsername(c), "anonymous": CallerID(c) == nil})
	})
	router.POST("/write", mw.RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return router
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_NoAuthMode(t *testing.T) {
	router := setupRouter(t, config.AuthModeNone)

	w := doJSON(router, http.MethodPost, "/write", "", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}

	// Tokens are ignored entirely when auth is disabled
	w = doJSON(router, http.MethodGet, "/whoami", "garbage", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestMiddleware_AnonymousCaller(t *testing.T) {
	router := setupRouter(t, config.AuthModeLocal)

	w := doJSON(router, http.MethodGet, "/whoami", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["anonymous"] != true {
		t.Errorf("expected anonymous caller, got %v", body)
	}

	w = doJSON(router, http.MethodPost, "/write", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for anonymous write, got %d", w.Code)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter(t, config.AuthModeLocal)

	w := doJSON(router, http.MethodGet, "/whoami", "invalid-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	router := setupRouter(t, config.AuthModeLocal)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestAuthFlow_RegisterLoginLogout(t *testing.T) {
	router := setupRouter(t, config.AuthModeLocal)
	creds := map[string]string{"username": "alice", "password": "password123"}

	w := doJSON(router, http.MethodPost, "/api/auth/register", "", creds)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(router, http.MethodPost, "/api/auth/register", "", creds)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: expected status 409, got %d", w.Code)
	}

	w = doJSON(router, http.MethodPost, "/api/auth/login", "", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("login: missing token in %s", w.Body.String())
	}

	w = doJSON(router, http.MethodGet, "/whoami", login.Token, nil)
	var who map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &who)
	if who["username"] != "alice" {
		t.Errorf("whoami: expected alice, got %v", who)
	}

	w = doJSON(router, http.MethodPost, "/write", login.Token, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("authenticated write: expected status 204, got %d", w.Code)
	}

	w = doJSON(router, http.MethodPost, "/api/auth/logout", login.Token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout: expected status 204, got %d", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/whoami", login.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token: expected status 401, got %d", w.Code)
	}
}

func TestAuthFlow_LoginRateLimited(t *testing.T) {
	router := setupRouter(t, config.AuthModeLocal)

	w := doJSON(router, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "alice", "password": "password123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected status 201, got %d", w.Code)
	}

	bad := map[string]string{"username": "alice", "password": "wrongpassword"}
	for i := 0; i < 3; i++ {
		w = doJSON(router, http.MethodPost, "/api/auth/login", "", bad)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", i+1, w.Code)
		}
	}

	w = doJSON(router, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "password123"})
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 after lockout, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestAuthFlow_LogoutRequiresToken(t *testing.T) {
	router := setupRouter(t, config.AuthModeLocal)

	w := doJSON(router, http.MethodPost, "/api/auth/logout", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "no-referrer",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}
