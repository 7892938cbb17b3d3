package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// RBAC is the static role gate: a route declares the roles permitted to
// invoke it and requests outside that set are rejected before any service
// call. Ownership checks that depend on runtime data live in the services,
// not here.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(domain.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, member := allowed[role]; !member {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}
