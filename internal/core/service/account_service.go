package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/policy"
	"github.com/veridian/identity-api/internal/core/ports"
)

// AccountService orchestrates account management: it evaluates the policy
// decision for the caller, executes the directory operation on allow, and
// projects results to password-free summaries.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, log: log}
}

// List returns the accounts the caller may enumerate. Ordering is whatever
// the directory returns.
func (s *AccountService) List(ctx context.Context, caller ports.Caller, roleFilter string) ([]ports.AccountSummary, error) {
	d := policy.List(caller.Role, roleFilter)
	if !d.Allowed {
		return nil, d.Err()
	}
	return s.collectByRoles(ctx, d.Roles)
}

// ListAll is the SuperAdmin-only surface over Users and Admins, sorted by
// role then name.
func (s *AccountService) ListAll(ctx context.Context, caller ports.Caller, roleFilter string) ([]ports.AccountSummary, error) {
	if caller.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}

	var roles []domain.Role
	switch strings.ToLower(strings.TrimSpace(roleFilter)) {
	case "user":
		roles = []domain.Role{domain.RoleUser}
	case "admin":
		roles = []domain.Role{domain.RoleAdmin}
	default:
		roles = []domain.Role{domain.RoleUser, domain.RoleAdmin}
	}

	summaries, err := s.collectByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}
	sort.Slice(summaries, func(i, j int) bool {
		ri, _ := domain.ParseRole(summaries[i].Role)
		rj, _ := domain.ParseRole(summaries[j].Role)
		if ri != rj {
			return ri < rj
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// Get returns a single account summary, subject to policy.
func (s *AccountService) Get(ctx context.Context, caller ports.Caller, id int64) (*ports.AccountSummary, error) {
	target, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	d := policy.Get(caller.Role, target)
	if !d.Allowed {
		return nil, d.Err()
	}
	return summary(target), nil
}

// Create adds an account on behalf of an Admin or SuperAdmin caller. The
// effective role comes from the policy decision, never from the raw request.
func (s *AccountService) Create(ctx context.Context, caller ports.Caller, input ports.CreateAccountInput) (*ports.AccountSummary, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	d := policy.Create(caller.Role, input.Role)
	if !d.Allowed {
		return nil, d.Err()
	}

	taken, err := s.repo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         d.Role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("account_id", created.ID).Str("role", created.Role.String()).
		Int64("created_by", caller.ID).Msg("account created")
	return summary(created), nil
}

// Update applies the present fields to the target, subject to policy. Each
// field is independently optional; absent fields are left untouched.
func (s *AccountService) Update(ctx context.Context, caller ports.Caller, id int64, input ports.UpdateAccountInput) (*ports.AccountSummary, error) {
	target, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	d := policy.Update(caller.Role, target, input.Role)
	if !d.Allowed {
		return nil, d.Err()
	}

	if email := strings.TrimSpace(input.Email); email != "" && email != target.Email {
		taken, err := s.repo.EmailExists(ctx, email, target.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
		target.Email = email
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		target.Name = name
	}

	target.Role = d.Role

	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.log.Info().Int64("account_id", target.ID).Int64("updated_by", caller.ID).Msg("account updated")
	return summary(target), nil
}

// Delete permanently removes the target account, subject to policy.
func (s *AccountService) Delete(ctx context.Context, caller ports.Caller, id int64) error {
	target, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	d := policy.Delete(caller.Role, caller.ID, target)
	if !d.Allowed {
		return d.Err()
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.log.Info().Int64("account_id", target.ID).Int64("deleted_by", caller.ID).Msg("account deleted")
	return nil
}

// find loads the target, passing a nil account through so the policy layer
// owns the not-found decision.
func (s *AccountService) find(ctx context.Context, id int64) (*domain.Account, error) {
	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return acc, nil
}

func (s *AccountService) collectByRoles(ctx context.Context, roles []domain.Role) ([]ports.AccountSummary, error) {
	var out []ports.AccountSummary
	for _, r := range roles {
		accounts, err := s.repo.FindByRole(ctx, r)
		if err != nil {
			return nil, err
		}
		for i := range accounts {
			out = append(out, *summary(&accounts[i]))
		}
	}
	return out, nil
}

func summary(acc *domain.Account) *ports.AccountSummary {
	return &ports.AccountSummary{
		ID:        acc.ID,
		Name:      acc.Name,
		Email:     acc.Email,
		Role:      acc.Role.String(),
		CreatedAt: acc.CreatedAt,
	}
}
