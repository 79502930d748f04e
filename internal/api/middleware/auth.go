package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/secureapp/identity-service/internal/api/metrics"
	"github.com/secureapp/identity-service/internal/core/access"
)

// Context keys populated by Auth for downstream handlers.
const (
	ContextClaims   = "claims"
	ContextUsername = "username"
	ContextUserID   = "user_id"
	ContextRoles    = "roles"
)

// Auth extracts the bearer token, runs it through the authorization gate,
// and injects the verified claims into the request context. Every failure —
// missing header, malformed token, bad signature, expiry — yields the same
// 401 so the response never reveals which check rejected the token.
func Auth(gate *access.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := gate.Authorize(bearerToken(c.Request()), nil)
			if !decision.Allowed {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(ContextClaims, decision.Claims)
			c.Set(ContextUsername, decision.Claims.Username)
			c.Set(ContextUserID, decision.Claims.Subject)
			c.Set(ContextRoles, decision.Claims.Roles)

			return next(c)
		}
	}
}

// bearerToken returns the token from an "Authorization: Bearer <token>"
// header, or "" when absent or differently shaped.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
