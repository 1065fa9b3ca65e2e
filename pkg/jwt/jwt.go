package jwt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds token settings loaded from the environment.
type Config struct {
	Secret   string        `env:"JWT_SECRET,required"`           // Secret is the base64-encoded HMAC key.
	Lifetime time.Duration `env:"JWT_LIFETIME" envDefault:"24h"` // Lifetime is the validity window of issued tokens.
}

// signingMethod is the only algorithm the codec issues or accepts.
var signingMethod = gojwt.SigningMethodHS256

// Codec issues and verifies HS256 tokens.
// The signing key is read-only after construction and safe for concurrent use.
type Codec struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
	parser   *gojwt.Parser
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a codec from a raw signing key.
func New(key []byte, lifetime time.Duration, opts ...Option) (*Codec, error) {
	if len(key) == 0 {
		return nil, ErrMissingSigningKey
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("jwt: token lifetime must be positive, got %s", lifetime)
	}

	c := &Codec{
		key:      key,
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = gojwt.NewParser(gojwt.WithTimeFunc(c.now), gojwt.WithExpirationRequired())

	return c, nil
}

// NewFromConfig decodes the base64 secret and creates a codec.
func NewFromConfig(cfg Config, opts ...Option) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSigningKey
	}
	key, err := base64.StdEncoding.DecodeString(cfg.Secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSigningKey, err)
	}
	return New(key, cfg.Lifetime, opts...)
}

// Lifetime returns the configured token lifetime.
func (c *Codec) Lifetime() time.Duration { return c.lifetime }

// IssueParams describes the identity and scope a token is issued for.
type IssueParams struct {
	Username             string
	UserID               int64
	TenantID             int64
	Roles                []string
	Permissions          []string
	AccessibleCompanyIDs []int64
}

// Issue signs a token for p valid from now for the configured lifetime.
func (c *Codec) Issue(p IssueParams) (string, error) {
	now := c.now().Truncate(time.Second)

	claims := encodeClaims(Claims{
		ID:                   uuid.NewString(),
		Username:             p.Username,
		UserID:               p.UserID,
		TenantID:             p.TenantID,
		Roles:                p.Roles,
		Permissions:          p.Permissions,
		AccessibleCompanyIDs: p.AccessibleCompanyIDs,
		IssuedAt:             now,
		ExpiresAt:            now.Add(c.lifetime),
	})

	token, err := gojwt.NewWithClaims(signingMethod, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature, then expiry, then decodes typed claims.
func (c *Codec) Verify(token string) (*Claims, error) {
	var wire wireClaims
	_, err := c.parser.ParseWithClaims(token, &wire, c.keyFunc)
	if err != nil {
		return nil, classify(err)
	}
	return decodeClaims(&wire)
}

// IsTokenValid reports whether Verify succeeds.
func (c *Codec) IsTokenValid(token string) bool {
	_, err := c.Verify(token)
	return err == nil
}

// ExtractClaims decodes the payload without checking the signature or expiry.
// Only use it for tokens that were already verified in the same request.
func (c *Codec) ExtractClaims(token string) (*Claims, error) {
	var wire wireClaims
	if _, _, err := c.parser.ParseUnverified(token, &wire); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	return decodeClaims(&wire)
}

// ExtractClaim decodes the payload without verification and returns the
// value picked by selector.
func ExtractClaim[T any](c *Codec, token string, selector func(*Claims) T) (T, error) {
	claims, err := c.ExtractClaims(token)
	if err != nil {
		var zero T
		return zero, err
	}
	return selector(claims), nil
}

// Username returns the sub claim of an already-trusted token.
func (c *Codec) Username(token string) (string, error) {
	return ExtractClaim(c, token, func(cl *Claims) string { return cl.Username })
}

// TenantID returns the tenantId claim of an already-trusted token.
func (c *Codec) TenantID(token string) (int64, error) {
	return ExtractClaim(c, token, func(cl *Claims) int64 { return cl.TenantID })
}

// AccessibleCompanyIDs returns the accessibleCompanyIds claim of an already-trusted token.
func (c *Codec) AccessibleCompanyIDs(token string) ([]int64, error) {
	return ExtractClaim(c, token, func(cl *Claims) []int64 { return cl.AccessibleCompanyIDs })
}

// ExpiresAt decodes the exp claim ignoring the signature. Revocation uses it
// to know how long a logged-out token must be remembered.
func (c *Codec) ExpiresAt(token string) (time.Time, error) {
	var rc gojwt.RegisteredClaims
	if _, _, err := c.parser.ParseUnverified(token, &rc); err != nil {
		return time.Time{}, errors.Join(ErrMalformedToken, err)
	}
	if rc.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp", ErrMalformedToken)
	}
	return rc.ExpiresAt.Time, nil
}

func (c *Codec) keyFunc(t *gojwt.Token) (any, error) {
	if t.Method == nil || t.Method.Alg() != signingMethod.Alg() {
		return nil, ErrUnsupportedToken
	}
	return c.key, nil
}

// classify maps library errors onto this package's sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrUnsupportedToken), errors.Is(err, gojwt.ErrTokenUnverifiable):
		return ErrUnsupportedToken
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return errors.Join(ErrMalformedToken, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidToken
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, gojwt.ErrTokenRequiredClaimMissing):
		return errors.Join(ErrMalformedToken, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}

// TrimBearer strips a case-insensitive "Bearer " prefix. The second value is
// false when the header does not use the Bearer scheme.
func TrimBearer(header string) (string, bool) {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
