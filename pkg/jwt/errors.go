package jwt

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken      = errors.New("jwt: invalid token signature")
	ErrExpiredToken      = errors.New("jwt: token is expired")
	ErrMalformedToken    = errors.New("jwt: malformed token")
	ErrUnsupportedToken  = errors.New("jwt: unsupported signing method")
	ErrMalformedClaim    = errors.New("jwt: malformed claim")
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrInvalidSigningKey = errors.New("jwt: invalid signing key")
	ErrMissingToken      = errors.New("jwt: missing bearer token")
)

// ClaimError reports a claim that is present but cannot be decoded into its
// typed form, e.g. a tenantId that is not an integer.
type ClaimError struct {
	Claim string
	Value string
	Err   error
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("jwt: malformed claim %q (value %q): %v", e.Claim, e.Value, e.Err)
}

// Unwrap makes errors.Is(err, ErrMalformedClaim) hold for every ClaimError.
func (e *ClaimError) Unwrap() []error {
	return []error{ErrMalformedClaim, e.Err}
}
