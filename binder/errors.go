package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrInvalidJSON          = errors.New("binder: invalid JSON")
	ErrMissingContentType   = errors.New("binder: missing content type")
	ErrBodyTooLarge         = errors.New("binder: request body too large")

	// ErrBinderNotApplicable tells handler.Wrap to skip a binder for this request.
	ErrBinderNotApplicable = errors.New("binder: not applicable")
)
