package ports

import (
	"context"
	"time"

	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/token"
)

// PasswordHasher abstracts the slow, salted one-way hash used for stored
// credentials.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// TokenIssuer signs identity tokens and validates presented ones.
type TokenIssuer interface {
	Issue(acc *domain.Account) (string, time.Time, error)
	Validate(raw string) (*token.ClaimSet, error)
}

// LoginThrottle limits failed login attempts per email.
type LoginThrottle interface {
	// Blocked reports whether the email has exhausted its attempt budget.
	Blocked(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
