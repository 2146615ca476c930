package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/user-management-api/internal/api/middleware"
	"github.com/sirpyerre/user-management-api/internal/pkg/token"
)

// ctxClaims returns the claims injected by the Auth middleware. Handlers on
// protected routes call this before any service call; an empty claim set
// means the middleware chain was misconfigured, and the request fails with
// 401 rather than proceeding with an anonymous actor.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.Email == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
