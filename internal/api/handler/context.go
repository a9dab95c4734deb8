package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call when the chain is misordered.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get("identity").(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// ctxSessionID returns the session id behind the current request, or "" on an
// unauthenticated route.
func ctxSessionID(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}
