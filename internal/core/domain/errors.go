package domain

import "errors"

var (
	// ErrUnauthenticated covers missing, malformed, expired, or otherwise
	// invalid tokens as well as tokens whose role claim cannot be parsed.
	// The individual failure modes are deliberately indistinguishable.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials is returned on login for both unknown email and
	// wrong password, so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrForbidden       = errors.New("access forbidden")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmailTaken      = errors.New("email is already registered")

	// ErrTooManyAttempts signals the login throttle tripped for an email.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrMissingSigningKey is a startup-time configuration fault, never a
	// per-request outcome.
	ErrMissingSigningKey = errors.New("token signing key is not configured")
)
