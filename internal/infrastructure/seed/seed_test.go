package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-api/internal/core/domain"
)

type memRepo struct {
	accounts []domain.Account
	nextID   int64
}

func (r *memRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			return &r.accounts[i], nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for i := range r.accounts {
		if r.accounts[i].Email == email {
			return &r.accounts[i], nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memRepo) FindByRole(_ context.Context, role domain.Role) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range r.accounts {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, acc *domain.Account) (*domain.Account, error) {
	r.nextID++
	created := *acc
	created.ID = r.nextID
	r.accounts = append(r.accounts, created)
	return &created, nil
}

func (r *memRepo) Update(_ context.Context, _ *domain.Account) error { return nil }

func (r *memRepo) Delete(_ context.Context, _ int64) error { return nil }

func (r *memRepo) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, a := range r.accounts {
		if a.Email == email && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }
func (plainHasher) Verify(secret, hash string) bool    { return hash == "hashed:"+secret }

func TestSuperAdmin_CreatesWhenAbsent(t *testing.T) {
	repo := &memRepo{}
	p := Params{Email: "root@example.com", Password: "rootpass", Name: "Root"}

	if err := SuperAdmin(context.Background(), repo, plainHasher{}, p, zerolog.Nop()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	admins, _ := repo.FindByRole(context.Background(), domain.RoleSuperAdmin)
	if len(admins) != 1 {
		t.Fatalf("expected 1 superadmin, got %d", len(admins))
	}
	if admins[0].PasswordHash != "hashed:rootpass" {
		t.Fatalf("password not hashed: %q", admins[0].PasswordHash)
	}
}

func TestSuperAdmin_IdempotentWhenPresent(t *testing.T) {
	repo := &memRepo{}
	p := Params{Email: "root@example.com", Password: "rootpass"}

	for i := 0; i < 2; i++ {
		if err := SuperAdmin(context.Background(), repo, plainHasher{}, p, zerolog.Nop()); err != nil {
			t.Fatalf("seed run %d failed: %v", i, err)
		}
	}

	admins, _ := repo.FindByRole(context.Background(), domain.RoleSuperAdmin)
	if len(admins) != 1 {
		t.Fatalf("expected 1 superadmin after two runs, got %d", len(admins))
	}
}

func TestSuperAdmin_SkippedWhenUnconfigured(t *testing.T) {
	repo := &memRepo{}

	if err := SuperAdmin(context.Background(), repo, plainHasher{}, Params{}, zerolog.Nop()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if len(repo.accounts) != 0 {
		t.Fatalf("expected no accounts, got %d", len(repo.accounts))
	}
}
