package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxAccountID = "account_id"
	CtxRole      = "role"
	CtxEmail     = "email"
)

// Auth validates the bearer JWT and injects the caller's identity into the
// request context. All token failure modes surface as a plain 401.
func Auth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxAccountID, claims.AccountID)
			c.Set(CtxRole, claims.Role.String())
			c.Set(CtxEmail, claims.Email)

			return next(c)
		}
	}
}
