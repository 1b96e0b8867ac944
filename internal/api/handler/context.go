package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-api/internal/api/middleware"
	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/ports"
)

// ctxCaller extracts the authenticated caller injected by the Auth
// middleware. A missing or unparseable role claim fails with 401 before any
// service call.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	roleStr, _ := c.Get(middleware.CtxRole).(string)
	role, ok := domain.ParseRole(roleStr)
	if roleStr == "" || !ok {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get(middleware.CtxAccountID).(int64)
	if id == 0 {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing account identity")
	}

	return ports.Caller{ID: id, Role: role}, nil
}
