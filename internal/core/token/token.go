// Package token issues and validates the signed identity tokens carried on
// every authenticated request. Tokens are self-contained HS256 JWTs, so
// validation is purely computational and expiry is the only revocation
// mechanism: a compromised token stays valid until it expires.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veridian/identity-api/internal/core/domain"
)

// Config holds the signing parameters. Key is required; the rest have
// sensible defaults applied by New.
type Config struct {
	Key      string
	Issuer   string
	Audience string
	TTL      time.Duration
}

const defaultTTL = time.Hour

// Claims is the JWT payload: registered claims plus the identity facts the
// policy layer needs.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ClaimSet is the validated, decoded view of a token. It is derived and
// ephemeral: produced only by Validate, never persisted.
type ClaimSet struct {
	AccountID int64
	Name      string
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and validates identity tokens with a symmetric key.
type Issuer struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// New builds an Issuer, failing fast with ErrMissingSigningKey when no key
// is configured.
func New(cfg Config) (*Issuer, error) {
	if cfg.Key == "" {
		return nil, domain.ErrMissingSigningKey
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Issue signs a token for the account and returns it with its UTC expiry.
func (i *Issuer) Issue(acc *domain.Account) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(acc.ID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Name:  acc.Name,
		Email: acc.Email,
		Role:  acc.Role.String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies signature, issuer, audience, and expiry, returning the
// decoded claim set. Every failure mode collapses to ErrUnauthenticated so
// callers cannot distinguish an expired token from a forged one.
func (i *Issuer) Validate(raw string) (*ClaimSet, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return i.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	cs := &ClaimSet{
		AccountID: id,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      role,
	}
	if claims.IssuedAt != nil {
		cs.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		cs.ExpiresAt = claims.ExpiresAt.Time
	}
	return cs, nil
}
