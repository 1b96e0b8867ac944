package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-api/internal/api/metrics"
	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/ports"
)

// AdminUsersHandler handles HTTP requests for the account-management surface.
type AdminUsersHandler struct {
	accounts ports.AccountService
}

func NewAdminUsersHandler(accounts ports.AccountService) *AdminUsersHandler {
	return &AdminUsersHandler{accounts: accounts}
}

// List handles GET /admin/users.
//
// @Summary      List accounts visible to the caller
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Role filter (SuperAdmin callers only): user or admin"
// @Success      200   {array}   ports.AccountSummary
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminUsersHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	summaries, err := h.accounts.List(c.Request().Context(), caller, c.QueryParam("role"))
	if err != nil {
		return h.counted("list", err)
	}

	metrics.AdminOpsTotal.WithLabelValues("list", "ok").Inc()
	return c.JSON(http.StatusOK, nonNil(summaries))
}

// ListAll handles GET /admin/users/all, the SuperAdmin-only listing sorted
// by role then name.
//
// @Summary      List all Users and Admins (SuperAdmin only)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Role filter: user, admin, or all"
// @Success      200   {array}   ports.AccountSummary
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/users/all [get]
func (h *AdminUsersHandler) ListAll(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	summaries, err := h.accounts.ListAll(c.Request().Context(), caller, c.QueryParam("role"))
	if err != nil {
		return h.counted("list_all", err)
	}

	metrics.AdminOpsTotal.WithLabelValues("list_all", "ok").Inc()
	return c.JSON(http.StatusOK, nonNil(summaries))
}

// Get handles GET /admin/users/:id.
//
// @Summary      Get a single account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  ports.AccountSummary
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *AdminUsersHandler) Get(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	summary, err := h.accounts.Get(c.Request().Context(), caller, id)
	if err != nil {
		return h.counted("get", err)
	}

	metrics.AdminOpsTotal.WithLabelValues("get", "ok").Inc()
	return c.JSON(http.StatusOK, summary)
}

// Create handles POST /admin/users.
//
// @Summary      Create an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  ports.AccountSummary
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users [post]
func (h *AdminUsersHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.accounts.Create(c.Request().Context(), caller, ports.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return h.counted("create", err)
	}

	metrics.AdminOpsTotal.WithLabelValues("create", "ok").Inc()
	metrics.AccountsCreatedTotal.WithLabelValues(summary.Role).Inc()
	return c.JSON(http.StatusCreated, summary)
}

// Update handles PUT /admin/users/:id.
//
// @Summary      Update an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Account id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  ports.AccountSummary
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/users/{id} [put]
func (h *AdminUsersHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.accounts.Update(c.Request().Context(), caller, id, ports.UpdateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return h.counted("update", err)
	}

	metrics.AdminOpsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, summary)
}

// Delete handles DELETE /admin/users/:id.
//
// @Summary      Delete an account
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  int  true  "Account id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminUsersHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.Delete(c.Request().Context(), caller, id); err != nil {
		return h.counted("delete", err)
	}

	metrics.AdminOpsTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// counted increments the operation counter with the outcome derived from the
// error, then passes the error on to the central handler.
func (h *AdminUsersHandler) counted(op string, err error) error {
	outcome := "error"
	switch {
	case errors.Is(err, domain.ErrForbidden):
		outcome = "forbidden"
	case errors.Is(err, domain.ErrAccountNotFound):
		outcome = "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		outcome = "invalid"
	case errors.Is(err, domain.ErrEmailTaken):
		outcome = "conflict"
	}
	metrics.AdminOpsTotal.WithLabelValues(op, outcome).Inc()
	return err
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid account id")
	}
	return id, nil
}

// nonNil keeps empty listings as [] rather than null in JSON.
func nonNil(s []ports.AccountSummary) []ports.AccountSummary {
	if s == nil {
		return []ports.AccountSummary{}
	}
	return s
}
