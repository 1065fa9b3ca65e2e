package authn

import (
	"net/http"
	"regexp"
	"slices"
	"strconv"

	"github.com/dmitrymomot/tenantkit/handler"
	"github.com/dmitrymomot/tenantkit/pkg/jwt"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/scope"
)

var companyPath = regexp.MustCompile(`(?:^|/)companies/(\d+)(?:/|$)`)

// CompanyIDFromPath returns the company id of a company-scoped path such as
// "/api/companies/42/orders".
func CompanyIDFromPath(path string) (int64, bool) {
	m := companyPath.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// CompanyAccess is the third pipeline stage. It only acts on company-scoped
// paths. When the request carries an authenticated token whose accessible
// companies include the path's company, the company cell of the request scope
// is set; otherwise the request is rejected with 403. Requests without a
// token pass through and are left to downstream guards.
//
// The company cell is cleared when the request unwinds.
func CompanyAccess(codec *jwt.Codec, opts ...Option) func(http.Handler) http.Handler {
	o := newOptions(opts)
	log := o.logger.With(logger.Component("authn"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := companyPath.FindStringSubmatch(r.URL.Path)
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			s, hasScope := scope.FromContext(ctx)
			if hasScope {
				defer s.Company().Clear()
			}

			token, ok := jwt.GetToken(ctx)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			companyID, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				deny(w, "invalid company id", m[1])
				return
			}

			ids, err := jwt.ExtractClaim(codec, token, func(c *jwt.Claims) []int64 {
				return c.AccessibleCompanyIDs
			})
			if err != nil {
				log.ErrorContext(ctx, "accessible companies unreadable",
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
				deny(w, "company not accessible", m[1])
				return
			}

			if !slices.Contains(ids, companyID) {
				log.WarnContext(ctx, "company access denied",
					logger.CompanyID(companyID),
					logger.Path(r.URL.Path),
				)
				deny(w, "company not accessible", m[1])
				return
			}

			if hasScope {
				s.Company().Set(companyID)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, reason, company string) {
	handler.WriteError(w, handler.ErrForbidden.WithMessage("%s: %s", reason, company))
}
