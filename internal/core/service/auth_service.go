package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.AccountRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, throttle: throttle, log: log}
}

// Register creates a self-service account with role User and returns a fresh
// token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	taken, err := s.repo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	acc := &domain.Account{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	// The unique index is the real uniqueness guarantee; a concurrent
	// registration racing past the pre-check surfaces here as ErrEmailTaken.
	created, err := s.repo.Create(ctx, acc)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("account_id", created.ID).Msg("account registered")
	return s.authResult(created)
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, acc.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle reset failed")
	}

	return s.authResult(acc)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) authResult(acc *domain.Account) (*ports.AuthResult, error) {
	signed, expiresAt, err := s.tokens.Issue(acc)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{
		Token:     signed,
		AccountID: acc.ID,
		Email:     acc.Email,
		Name:      acc.Name,
		Role:      acc.Role.String(),
		ExpiresAt: expiresAt,
	}, nil
}
