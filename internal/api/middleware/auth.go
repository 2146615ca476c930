package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/user-management-api/internal/api/metrics"
	"github.com/sirpyerre/user-management-api/internal/pkg/token"
)

// ContextKeyClaims is the echo context key under which Auth stores the
// verified token claims.
const ContextKeyClaims = "auth_claims"

// TokenVerifier validates a raw bearer token and recovers its claims.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth extracts the bearer token from the Authorization header, verifies it,
// and injects the claims into the request context. Verification is purely
// local; no store lookup happens here. Any failure — missing header, bad
// scheme, bad signature, expiry — ends the request with 401.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth, or nil when the middleware
// has not run for this request.
func ClaimsFrom(c echo.Context) *token.Claims {
	claims, _ := c.Get(ContextKeyClaims).(*token.Claims)
	return claims
}
