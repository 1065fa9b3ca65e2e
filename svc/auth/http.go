package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantkit/binder"
	"github.com/dmitrymomot/tenantkit/handler"
	"github.com/dmitrymomot/tenantkit/pkg/authn"
	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate checks that both fields are present.
func (r LoginRequest) Validate() error {
	v := handler.NewValidationError()
	if NormalizeIdentifier(r.Identifier) == "" {
		v.Add("identifier", "required")
	}
	if r.Password == "" {
		v.Add("password", "required")
	}
	return v.OrNil()
}

// ValidateResponse is the body of GET /token/validate.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// MeResponse is the body of GET /me.
type MeResponse struct {
	*authn.Principal
	ScopeTenantID *int64 `json:"scope_tenant_id,omitempty"`
	SuperAdmin    bool   `json:"super_admin"`
}

// Handlers exposes the Service over HTTP.
type Handlers struct {
	svc    *Service
	errors handler.ErrorHandler
}

// NewHandlers creates HTTP handlers for svc.
func NewHandlers(svc *Service, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handlers{svc: svc, errors: handler.NewErrorHandler(log)}
}

// Routes mounts the session endpoints on a new router. The request pipeline
// must already run in front of it. loginMiddlewares wrap POST /login only,
// typically a rate limiter.
func (h *Handlers) Routes(loginMiddlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(loginMiddlewares...).Post("/login", h.Login())
	r.Post("/logout", h.Logout())
	r.Get("/token/validate", h.ValidateToken())
	r.With(authn.RequireAuthenticated()).Get("/me", h.Me())
	return r
}

// Login handles POST /login.
func (h *Handlers) Login() http.HandlerFunc {
	return handler.Wrap(
		func(ctx handler.Context, req LoginRequest) handler.Response {
			if err := req.Validate(); err != nil {
				return handler.Error(err)
			}
			sess, err := h.svc.Login(ctx, req.Identifier, req.Password)
			if err != nil {
				return handler.Error(httpError(err))
			}
			return handler.JSON(sess)
		},
		handler.WithBinders[LoginRequest](binder.JSON(0)),
		handler.WithErrorHandler[LoginRequest](h.errors),
	)
}

// Logout handles POST /logout. The bearer token is read from the header even
// when the pipeline did not accept it, so revoked or expired tokens still
// succeed.
func (h *Handlers) Logout() http.HandlerFunc {
	return handler.Wrap(
		func(ctx handler.Context, _ struct{}) handler.Response {
			token, err := jwt.BearerTokenExtractor(ctx.Request())
			if err != nil {
				return handler.Error(handler.ErrUnauthorized.WithMessage("bearer token required"))
			}
			if err := h.svc.Logout(ctx, token); err != nil {
				return handler.Error(err)
			}
			return handler.Empty()
		},
		handler.WithErrorHandler[struct{}](h.errors),
	)
}

// ValidateToken handles GET /token/validate.
func (h *Handlers) ValidateToken() http.HandlerFunc {
	return handler.Wrap(
		func(ctx handler.Context, _ struct{}) handler.Response {
			token, _ := jwt.BearerTokenExtractor(ctx.Request())
			return handler.JSON(ValidateResponse{Valid: h.svc.ValidateToken(ctx, token)})
		},
		handler.WithErrorHandler[struct{}](h.errors),
	)
}

// Me handles GET /me.
func (h *Handlers) Me() http.HandlerFunc {
	return handler.Wrap(
		func(ctx handler.Context, _ struct{}) handler.Response {
			p, ok := authn.PrincipalFromContext(ctx)
			if !ok {
				return handler.Error(handler.ErrUnauthorized)
			}
			resp := MeResponse{Principal: p, SuperAdmin: scope.IsSuperAdmin(ctx)}
			if id, ok := scope.TenantID(ctx); ok {
				resp.ScopeTenantID = &id
			}
			return handler.JSON(resp)
		},
		handler.WithErrorHandler[struct{}](h.errors),
	)
}

var (
	errInvalidCredentials = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials", "")
	errInactiveAccount    = handler.NewHTTPError(http.StatusForbidden, "inactive_account", "")
	errTenantMissing      = handler.NewHTTPError(http.StatusBadRequest, "tenant_context_missing", "")
	errCrossTenant        = handler.NewHTTPError(http.StatusForbidden, "unauthorized_cross_tenant", "")
)

// httpError maps service errors onto HTTP errors.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return errInvalidCredentials.WithMessage("%s", "invalid username or password")
	case errors.Is(err, ErrInactiveAccount):
		return errInactiveAccount.WithMessage("%s", "account is inactive")
	case errors.Is(err, ErrTenantContextMissing):
		return errTenantMissing.WithMessage("%s", "no tenant could be resolved for this request")
	case errors.Is(err, ErrUnauthorizedCrossTenant):
		return errCrossTenant.WithMessage("%s", err.Error())
	default:
		return err
	}
}
