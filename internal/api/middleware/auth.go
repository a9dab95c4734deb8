package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/elbuensabor/ordering-system/internal/api/metrics"
	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

// Auth validates the bearer token, resolves the session it references, and
// injects the identity into context. Resolving also re-arms the session's
// inactivity deadline.
//
// The check order matters: a session store outage yields 503, never 401, so a
// logged-in caller is not bounced to login just because the store cannot be
// read yet.
func Auth(jwtSecret string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sess, err := sessions.Resolve(c.Request().Context(), sid)
			switch {
			case errors.Is(err, domain.ErrSessionUnavailable):
				metrics.GuardDenialsTotal.WithLabelValues("unavailable").Inc()
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session state unavailable")
			case errors.Is(err, domain.ErrSessionExpired):
				metrics.GuardDenialsTotal.WithLabelValues("expired").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			case err != nil:
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set("identity", sess.Identity)
			c.Set("session_id", sess.ID)

			return next(c)
		}
	}
}
