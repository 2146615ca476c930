package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/user-management-api/internal/api/metrics"
	"github.com/sirpyerre/user-management-api/internal/core/domain"
)

// RequireOperation gates the request's verified role against the access
// policy entry for operation. It must be chained after Auth: a request
// without claims is treated as unauthenticated, never evaluated against the
// policy. Operations missing from the policy deny every role.
func RequireOperation(policy domain.AccessPolicy, operation string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			if !policy.Allows(operation, claims.Role) {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
