package ports

import (
	"context"
	"time"
)

// AuthResult is returned after a successful registration or login.
type AuthResult struct {
	Token     string
	AccountID int64
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

// AuthService verifies credentials and issues signed identity tokens.
type AuthService interface {
	// Register creates a self-service account. The role is always User.
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
