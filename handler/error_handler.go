package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tenantkit/binder"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

// NewErrorHandler returns an ErrorHandler that logs the failure and writes a
// JSON error body. Client errors log at WARN, server errors at ERROR.
// Binding errors are translated into 400, 413 and 415 responses.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		err = translateBindError(err)
		status, body := ErrorResponse(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			logger.Path(r.URL.Path),
			logger.Component("error_handler"),
		)

		_ = WriteJSON(ctx.ResponseWriter(), status, body)
	}
}

func translateBindError(err error) error {
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrRequestTooLarge.WithMessage("request body too large")
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMedia.WithMessage("expected application/json")
	case errors.Is(err, binder.ErrInvalidJSON):
		return ErrBadRequest.WithMessage("malformed JSON body")
	default:
		return err
	}
}
