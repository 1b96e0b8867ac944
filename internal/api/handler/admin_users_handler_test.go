package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/veridian/identity-api/internal/api/middleware"
	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/ports"
)

type stubAccountService struct {
	listFn    func(ctx context.Context, caller ports.Caller, roleFilter string) ([]ports.AccountSummary, error)
	listAllFn func(ctx context.Context, caller ports.Caller, roleFilter string) ([]ports.AccountSummary, error)
	getFn     func(ctx context.Context, caller ports.Caller, id int64) (*ports.AccountSummary, error)
	createFn  func(ctx context.Context, caller ports.Caller, input ports.CreateAccountInput) (*ports.AccountSummary, error)
	updateFn  func(ctx context.Context, caller ports.Caller, id int64, input ports.UpdateAccountInput) (*ports.AccountSummary, error)
	deleteFn  func(ctx context.Context, caller ports.Caller, id int64) error
}

func (s *stubAccountService) List(ctx context.Context, caller ports.Caller, roleFilter string) ([]ports.AccountSummary, error) {
	return s.listFn(ctx, caller, roleFilter)
}

func (s *stubAccountService) ListAll(ctx context.Context, caller ports.Caller, roleFilter string) ([]ports.AccountSummary, error) {
	return s.listAllFn(ctx, caller, roleFilter)
}

func (s *stubAccountService) Get(ctx context.Context, caller ports.Caller, id int64) (*ports.AccountSummary, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubAccountService) Create(ctx context.Context, caller ports.Caller, input ports.CreateAccountInput) (*ports.AccountSummary, error) {
	return s.createFn(ctx, caller, input)
}

func (s *stubAccountService) Update(ctx context.Context, caller ports.Caller, id int64, input ports.UpdateAccountInput) (*ports.AccountSummary, error) {
	return s.updateFn(ctx, caller, id, input)
}

func (s *stubAccountService) Delete(ctx context.Context, caller ports.Caller, id int64) error {
	return s.deleteFn(ctx, caller, id)
}

// adminContext builds a request context carrying the claims that the Auth
// middleware would have injected.
func adminContext(t *testing.T, method, path, body string, callerID int64, role string, pathParamID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxAccountID, callerID)
	c.Set(middleware.CtxRole, role)
	if pathParamID != "" {
		c.SetParamNames("id")
		c.SetParamValues(pathParamID)
	}
	return c, rec
}

func TestAdminUsersHandler_List(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(_ context.Context, caller ports.Caller, roleFilter string) ([]ports.AccountSummary, error) {
			if caller.ID != 9 || caller.Role != domain.RoleAdmin {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			if roleFilter != "user" {
				t.Fatalf("unexpected filter: %q", roleFilter)
			}
			return []ports.AccountSummary{{ID: 3, Email: "uma@example.com", Role: "User"}}, nil
		},
	}
	handler := NewAdminUsersHandler(stub)

	c, rec := adminContext(t, http.MethodGet, "/admin/users?role=user", "", 9, "Admin", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "uma@example.com") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminUsersHandler_List_EmptyRendersArray(t *testing.T) {
	stub := &stubAccountService{
		listFn: func(_ context.Context, _ ports.Caller, _ string) ([]ports.AccountSummary, error) {
			return nil, nil
		},
	}
	handler := NewAdminUsersHandler(stub)

	c, rec := adminContext(t, http.MethodGet, "/admin/users", "", 9, "Admin", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAdminUsersHandler_MissingClaims(t *testing.T) {
	handler := NewAdminUsersHandler(&stubAccountService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAdminUsersHandler_Get_BadID(t *testing.T) {
	handler := NewAdminUsersHandler(&stubAccountService{})

	c, _ := adminContext(t, http.MethodGet, "/admin/users/abc", "", 9, "Admin", "abc")
	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAdminUsersHandler_Get_ForbiddenPropagates(t *testing.T) {
	stub := &stubAccountService{
		getFn: func(_ context.Context, _ ports.Caller, id int64) (*ports.AccountSummary, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewAdminUsersHandler(stub)

	c, _ := adminContext(t, http.MethodGet, "/admin/users/2", "", 9, "Admin", "2")
	if err := handler.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestAdminUsersHandler_Create(t *testing.T) {
	stub := &stubAccountService{
		createFn: func(_ context.Context, caller ports.Caller, input ports.CreateAccountInput) (*ports.AccountSummary, error) {
			if caller.Role != domain.RoleSuperAdmin {
				t.Fatalf("unexpected caller role: %v", caller.Role)
			}
			if input.Role != "Admin" {
				t.Fatalf("unexpected requested role: %q", input.Role)
			}
			return &ports.AccountSummary{ID: 5, Email: input.Email, Role: "Admin"}, nil
		},
	}
	handler := NewAdminUsersHandler(stub)

	c, rec := adminContext(t, http.MethodPost, "/admin/users",
		`{"email":"a@b.com","password":"secret1","role":"Admin"}`, 1, "SuperAdmin", "")
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"role":"Admin"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminUsersHandler_Create_InvalidEmail(t *testing.T) {
	handler := NewAdminUsersHandler(&stubAccountService{})

	c, _ := adminContext(t, http.MethodPost, "/admin/users",
		`{"email":"not-an-email","password":"secret1"}`, 1, "SuperAdmin", "")
	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAdminUsersHandler_Update_ConflictPropagates(t *testing.T) {
	stub := &stubAccountService{
		updateFn: func(_ context.Context, _ ports.Caller, id int64, input ports.UpdateAccountInput) (*ports.AccountSummary, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	handler := NewAdminUsersHandler(stub)

	c, _ := adminContext(t, http.MethodPut, "/admin/users/3",
		`{"email":"taken@example.com"}`, 1, "SuperAdmin", "3")
	if err := handler.Update(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken to propagate, got %v", err)
	}
}

func TestAdminUsersHandler_Delete(t *testing.T) {
	deleted := int64(0)
	stub := &stubAccountService{
		deleteFn: func(_ context.Context, _ ports.Caller, id int64) error {
			deleted = id
			return nil
		},
	}
	handler := NewAdminUsersHandler(stub)

	c, rec := adminContext(t, http.MethodDelete, "/admin/users/3", "", 1, "SuperAdmin", "3")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != 3 {
		t.Fatalf("expected id 3, got %d", deleted)
	}
}
