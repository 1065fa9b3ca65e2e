// Package authn implements the authentication stages of the request pipeline
// and the guards that protect individual routes.
//
// The pipeline runs three stages in a fixed order:
//
//  1. tenant.Middleware acquires the request scope and resolves the tenant
//     from the Host header or the override header.
//  2. Authenticate verifies a bearer token. A valid, unrevoked token attaches
//     a Principal to the context and its tenant overrides the host-derived one.
//     Missing, revoked and invalid tokens continue unauthenticated.
//  3. CompanyAccess checks company-scoped paths ("/companies/{id}/...")
//     against the token's accessible companies and answers 403 on mismatch.
//
// Usage:
//
//	stages, err := authn.Pipeline(authn.PipelineConfig{
//		Resolver: resolver,
//		Codec:    codec,
//		Registry: registry,
//		Logger:   log,
//	})
//	if err != nil {
//		return err
//	}
//	r := chi.NewRouter()
//	r.Use(stages...)
//	r.With(authn.RequirePermission("orders.read")).Get("/companies/{companyID}/orders", list)
//
// Guards answer 401 when no principal is present and 403 when the principal
// lacks the required authority. Error bodies use handler.ErrorBody.
package authn
