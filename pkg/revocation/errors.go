package revocation

import "errors"

var (
	// ErrUntrackable is returned by Revoke when the token expiry cannot be decoded.
	ErrUntrackable = errors.New("revocation: token expiry cannot be decoded")

	// ErrRegistryClosed is returned after Close.
	ErrRegistryClosed = errors.New("revocation: registry closed")

	// ErrMissingClient is returned when the redis backend is selected without a client.
	ErrMissingClient = errors.New("revocation: redis backend requires a client")

	// ErrUnknownBackend is returned for an unrecognised Config.Backend.
	ErrUnknownBackend = errors.New("revocation: unknown backend")
)
