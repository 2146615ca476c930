package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed bool
	err     error
}

func (s *stubLimiter) Allow(context.Context, string) (bool, error) {
	return s.allowed, s.err
}

func throttleRequest(t *testing.T, limiter LoginRateLimiter) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := LoginThrottle(limiter, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestLoginThrottle_Allows(t *testing.T) {
	if code := throttleRequest(t, &stubLimiter{allowed: true}); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestLoginThrottle_Rejects(t *testing.T) {
	if code := throttleRequest(t, &stubLimiter{allowed: false}); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

func TestLoginThrottle_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{allowed: false, err: errors.New("redis down")}
	if code := throttleRequest(t, limiter); code != http.StatusOK {
		t.Fatalf("limiter failure should not block logins, got %d", code)
	}
}
