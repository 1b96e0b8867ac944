package ports

import (
	"context"

	"github.com/veridian/identity-api/internal/core/domain"
)

// AccountRepository is the user directory: every read and write of account
// records goes through it. Implementations must enforce email uniqueness at
// the storage layer and surface a violation as domain.ErrEmailTaken, since
// the service-level pre-check is only a fast path.
type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	// Create inserts the account and returns it with its assigned id.
	Create(ctx context.Context, acc *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, acc *domain.Account) error
	Delete(ctx context.Context, id int64) error
	// EmailExists reports whether the email is taken by an account other
	// than excludeID. Pass excludeID=0 to check against all accounts.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}
