// Package seed creates the root SuperAdmin account at process startup.
package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/ports"
)

// Params configures the seeded account.
type Params struct {
	Email    string
	Password string
	Name     string
}

// SuperAdmin creates a SuperAdmin account unless one already exists. It is a
// no-op when Email or Password is unconfigured. The seeded account is
// immutable through the admin surface: policy never exposes or mutates
// SuperAdmin records.
func SuperAdmin(ctx context.Context, repo ports.AccountRepository, hasher ports.PasswordHasher, p Params, log zerolog.Logger) error {
	if p.Email == "" || p.Password == "" {
		log.Debug().Msg("superadmin seed skipped: not configured")
		return nil
	}

	existing, err := repo.FindByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := hasher.Hash(p.Password)
	if err != nil {
		return err
	}

	name := p.Name
	if name == "" {
		name = "Super Admin"
	}

	created, err := repo.Create(ctx, &domain.Account{
		Name:         name,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", created.ID).Msg("superadmin seeded")
	return nil
}
