package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces role-based access control on routes already behind Auth.
// An empty allowedRoles list admits any authenticated subject; otherwise the
// claims' roles must intersect the allowed set.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(ContextRoles).([]string)
			if !ok {
				// Auth did not run; treat as unauthenticated, not forbidden.
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if len(allowed) == 0 {
				return next(c)
			}
			for _, r := range roles {
				if _, granted := allowed[r]; granted {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
