package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec, rec.Body.String()
}

func TestHTTPErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrEmailInUse, http.StatusConflict},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrInvalidUserID, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrCreateUserFailed, http.StatusBadRequest},
		{domain.ErrUpdateUserFailed, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec, body := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if !strings.Contains(body, `"error"`) {
			t.Fatalf("%v: missing error envelope: %s", tc.err, body)
		}
	}
}

func TestHTTPErrorHandler_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("update user: %w", domain.ErrEmailInUse)
	rec, _ := renderError(t, wrapped)
	if rec.Code != http.StatusConflict {
		t.Fatalf("wrapped conflict: expected 409, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo: socket was unexpectedly closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(body, "mongo") || strings.Contains(body, "socket") {
		t.Fatalf("internal cause leaked to client: %s", body)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if !strings.Contains(body, "too many login attempts") {
		t.Fatalf("unexpected body: %s", body)
	}
}
