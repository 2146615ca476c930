package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/pkg/token"
)

func signTestToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := &token.Claims{
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "65a1b2c3d4e5f60718293a4b",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signTestToken(t, "secret", time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(token.NewManager("secret", time.Minute))
	handler := mw(func(c echo.Context) error {
		called = true
		claims := ClaimsFrom(c)
		if claims == nil {
			t.Fatalf("claims not set")
		}
		if claims.Email != "alice@example.com" {
			t.Fatalf("email claim = %q", claims.Email)
		}
		if claims.Role != domain.RoleAdmin {
			t.Fatalf("role claim = %q", claims.Role)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func rejectRequest(t *testing.T, authorize func(*http.Request)) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	authorize(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(token.NewManager("secret", time.Minute))
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	if code := rejectRequest(t, func(*http.Request) {}); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	code := rejectRequest(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Token abc")
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	code := rejectRequest(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	signed := signTestToken(t, "secret", -time.Minute)
	code := rejectRequest(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	signed := signTestToken(t, "other-secret", time.Minute)
	code := rejectRequest(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
