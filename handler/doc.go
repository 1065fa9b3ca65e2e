// Package handler provides typed HTTP handlers and JSON responses on top of
// net/http.
//
// Handlers are plain functions that receive a Context and a request value
// already decoded by binders, and return a Response. Wrap adapts them to
// http.HandlerFunc so they mount on any chi router.
//
// # Core Concepts
//
//   - HandlerFunc[R]: func(ctx Context, req R) Response
//   - Response: anything that can render itself to an http.ResponseWriter
//   - Bind: decodes part of the request into *R; binders run in order
//   - ErrorHandler: writes the response when binding, the handler or
//     rendering fails
//   - Decorator[R]: wraps a HandlerFunc, first decorator outermost
//
// # Usage
//
//	type LoginRequest struct {
//		Identifier string `json:"identifier"`
//		Password   string `json:"password"`
//	}
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		sess, err := svc.Login(ctx, req.Identifier, req.Password)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(sess)
//	}
//
//	errs := handler.NewErrorHandler(log)
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[LoginRequest](binder.JSON(0)),
//		handler.WithErrorHandler[LoginRequest](errs),
//	))
//
// Handlers without a body use struct{} as the request type:
//
//	r.Get("/me", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
//		p, ok := authn.PrincipalFromContext(ctx)
//		if !ok {
//			return handler.Error(handler.ErrUnauthorized)
//		}
//		return handler.JSON(p)
//	}))
//
// # Response Types
//
//   - JSON(v, WithJSONStatus(code)): encodes v, 200 by default
//   - JSONError(err): renders err directly, skipping the error handler
//   - Error(err): hands err to the error handler, so it is logged
//   - Empty(): 204 No Content
//
// # Error Handling
//
// Every error body has the same shape:
//
//	{"error": "forbidden", "message": "company 42 is not accessible"}
//
// HTTPError carries the status code and the machine-readable key. Predefined
// values such as ErrUnauthorized, ErrForbidden and ErrServiceUnavailable can be
// specialised with WithMessage and still match errors.Is:
//
//	err := handler.ErrForbidden.WithMessage("company %d is not accessible", id)
//	errors.Is(err, handler.ErrForbidden) // true
//
// ValidationError collects per-field messages and renders as 422 with a
// "details" object. Any other error becomes a 500 whose text is never sent to
// the client.
//
// NewErrorHandler logs client errors at WARN and server errors at ERROR with
// the chi request id and path. It also maps binder failures onto 400, 413 and
// 415 responses. Wrap uses it with logging disabled when no error handler is
// given.
//
// # Context
//
// Context embeds context.Context, so it can be passed straight to services
// and read with scope.TenantID or authn.PrincipalFromContext. Request and
// ResponseWriter expose the underlying HTTP values.
//
// # Middleware
//
// WriteJSON and WriteError serve middleware that rejects a request before any
// handler runs, such as company access checks and rate limiting:
//
//	handler.WriteError(w, handler.ErrServiceUnavailable)
package handler
