package auth

import "errors"

var (
	ErrPrincipalNotFound       = errors.New("auth: principal not found")
	ErrInvalidCredentials      = errors.New("auth: invalid credentials")
	ErrInactiveAccount         = errors.New("auth: account is inactive")
	ErrTenantContextMissing    = errors.New("auth: tenant context missing")
	ErrUnauthorizedCrossTenant = errors.New("auth: principal does not belong to this tenant")
	ErrMissingStore            = errors.New("auth: principal store is required")
	ErrMissingCodec            = errors.New("auth: token codec is required")
	ErrMissingRegistry         = errors.New("auth: revocation registry is required")
)
