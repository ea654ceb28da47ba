package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/identware/account-api/internal/api/metrics"
	"github.com/identware/account-api/internal/core/ports"
)

// RevocationChecker reports whether an account's tokens have been revoked
// (deleted accounts land on a Redis denylist until their tokens expire).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, accountID string) (bool, error)
}

// Auth verifies the bearer token with the codec and injects the session
// claims into the request context. When a checker is provided, tokens of
// revoked accounts are rejected even though their signature still verifies.
func Auth(codec ports.TokenCodec, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("absent").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Payload(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revoked != nil {
				// Denylist errors fail open: revocation only narrows the
				// stale-token window, it is not the primary access control.
				if hit, err := revoked.IsRevoked(c.Request().Context(), claims.ID); err == nil && hit {
					metrics.TokenRejectionsTotal.WithLabelValues("revoked").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set("account_id", claims.ID)
			c.Set("name", claims.Name)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
