package ports

import (
	"context"
	"time"

	"github.com/veridian/identity-api/internal/core/domain"
)

// Caller identifies the authenticated actor behind a request, extracted from
// a validated claim set. Policy functions only ever see these plain values.
type Caller struct {
	ID   int64
	Role domain.Role
}

// AccountSummary is the outward-facing projection of an account. It never
// carries the password hash.
type AccountSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountInput carries the fields for admin-initiated creation.
// Role is the requested role as sent by the caller; policy decides what the
// account actually receives.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateAccountInput carries the optional fields of an update. Empty means
// "leave unchanged".
type UpdateAccountInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// AccountService defines the account-management use cases, each gated by the
// role-hierarchy policy.
type AccountService interface {
	// List returns the accounts the caller may see, optionally narrowed by
	// roleFilter. No ordering is guaranteed.
	List(ctx context.Context, caller Caller, roleFilter string) ([]AccountSummary, error)
	// ListAll is the SuperAdmin-only listing of Users and Admins, sorted by
	// role then name.
	ListAll(ctx context.Context, caller Caller, roleFilter string) ([]AccountSummary, error)
	Get(ctx context.Context, caller Caller, id int64) (*AccountSummary, error)
	Create(ctx context.Context, caller Caller, input CreateAccountInput) (*AccountSummary, error)
	Update(ctx context.Context, caller Caller, id int64, input UpdateAccountInput) (*AccountSummary, error)
	Delete(ctx context.Context, caller Caller, id int64) error
}
