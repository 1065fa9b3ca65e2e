package tenant

import "errors"

var (
	// ErrTenantNotFound is returned by a Store when no tenant has the slug.
	ErrTenantNotFound = errors.New("tenant: not found")

	// ErrInactiveTenant is returned by FindActiveBySlug for a disabled tenant.
	ErrInactiveTenant = errors.New("tenant: inactive")

	// ErrDefaultTenantMissing means the configured default slug does not
	// resolve. This is a configuration failure.
	ErrDefaultTenantMissing = errors.New("tenant: default tenant missing")

	// ErrMissingStore is returned when a resolver is built without a Store.
	ErrMissingStore = errors.New("tenant: store is required")

	// ErrMissingDefaultSlug is returned when Config.DefaultSlug is empty.
	ErrMissingDefaultSlug = errors.New("tenant: default slug is required")
)
