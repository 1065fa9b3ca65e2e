package rbac

import "errors"

var (
	// ErrInvalidRole is returned when a role does not exist.
	ErrInvalidRole = errors.New("rbac: invalid role")

	// ErrInvalidScopeKind is returned for an unknown role kind.
	ErrInvalidScopeKind = errors.New("rbac: invalid scope kind")

	// ErrDuplicateRole is returned when a catalog defines a role twice.
	ErrDuplicateRole = errors.New("rbac: duplicate role")

	// ErrCircularInheritance is returned when roles inherit from each other in a
	// loop or the chain is deeper than MaxInheritanceDepth.
	ErrCircularInheritance = errors.New("rbac: circular inheritance")

	// ErrInsufficientPermissions is returned when required authorities are missing.
	ErrInsufficientPermissions = errors.New("rbac: insufficient permissions")
)
