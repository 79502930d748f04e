package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secureapp/identity-service/internal/api/middleware"
	"github.com/secureapp/identity-service/internal/core/token"
)

// ctxClaims extracts the claims injected by the Auth middleware. A missing
// claim set means the route was wired without Auth — reject rather than
// serve an unauthenticated request.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims, ok := c.Get(middleware.ContextClaims).(*token.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
