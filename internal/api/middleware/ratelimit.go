package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/user-management-api/internal/api/metrics"
)

// LoginRateLimiter reports whether another login attempt from ip is allowed.
type LoginRateLimiter interface {
	Allow(ctx context.Context, ip string) (bool, error)
}

// LoginThrottle rejects bursts of login attempts per client IP with 429.
// The auth core itself has no lockout; this sits in front of it. Limiter
// failures fail open so an unavailable Redis never blocks logins.
func LoginThrottle(limiter LoginRateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("login limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.LoginThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			return next(c)
		}
	}
}
