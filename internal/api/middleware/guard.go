package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elbuensabor/ordering-system/internal/api/metrics"
	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

// Guard gates a route subtree to the given role set. Membership is logical
// OR: the current role must equal any entry. Auth must run first; a missing
// identity here means the middleware chain is misordered and the request is
// treated as unauthenticated.
func Guard(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get("identity").(domain.Identity)
			if !ok {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			if _, ok := allowed[identity.Role]; !ok {
				metrics.GuardDenialsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
