package api

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tenantkit/handler"
	"github.com/dmitrymomot/tenantkit/pkg/authn"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

// ScopeResponse echoes the request scope established by the pipeline.
type ScopeResponse struct {
	TenantID   *int64 `json:"tenant_id"`
	CompanyID  *int64 `json:"company_id"`
	SuperAdmin bool   `json:"super_admin"`
	Username   string `json:"username"`
}

type companyHandlers struct {
	errors handler.ErrorHandler
}

func newCompanyHandlers(log *slog.Logger) *companyHandlers {
	return &companyHandlers{errors: handler.NewErrorHandler(log)}
}

// Scope handles GET /companies/{companyID}/scope. Company access has already
// been checked by the pipeline.
func (h *companyHandlers) Scope() http.HandlerFunc {
	return handler.Wrap(
		func(ctx handler.Context, _ struct{}) handler.Response {
			var resp ScopeResponse
			if id, ok := scope.TenantID(ctx); ok {
				resp.TenantID = &id
			}
			if id, ok := scope.CompanyID(ctx); ok {
				resp.CompanyID = &id
			}
			resp.SuperAdmin = scope.IsSuperAdmin(ctx)
			if p, ok := authn.PrincipalFromContext(ctx); ok {
				resp.Username = p.Username
			}
			return handler.JSON(resp)
		},
		handler.WithErrorHandler[struct{}](h.errors),
	)
}
