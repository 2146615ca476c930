package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/pkg/token"
)

func gateRequest(t *testing.T, policy domain.AccessPolicy, operation string, role domain.Role, withClaims bool) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if withClaims {
		c.Set(ContextKeyClaims, &token.Claims{Email: "x@example.com", Role: role})
	}

	mw := RequireOperation(policy, operation)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestRequireOperation_RoleMatrix(t *testing.T) {
	policy := domain.AccessPolicy{
		"only.admin": {domain.RoleAdmin},
		"shared":     {domain.RoleAdmin, domain.RoleManager, domain.RoleEditor},
		"only.mgr":   {domain.RoleManager},
	}

	cases := []struct {
		name      string
		operation string
		role      domain.Role
		want      int
	}{
		{"admin on admin-only", "only.admin", domain.RoleAdmin, http.StatusOK},
		{"admin on shared", "shared", domain.RoleAdmin, http.StatusOK},
		{"admin on manager-only", "only.mgr", domain.RoleAdmin, http.StatusForbidden},
		{"editor on admin-only", "only.admin", domain.RoleEditor, http.StatusForbidden},
		{"editor on shared", "shared", domain.RoleEditor, http.StatusOK},
		{"unknown operation denies", "missing.op", domain.RoleAdmin, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gateRequest(t, policy, tc.operation, tc.role, true); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRequireOperation_MissingClaims(t *testing.T) {
	policy := domain.DefaultAccessPolicy()
	// Without Auth having run, the gate must answer 401, not 403: policy is
	// never evaluated for an unauthenticated request.
	if code := gateRequest(t, policy, domain.OpUserList, "", false); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
