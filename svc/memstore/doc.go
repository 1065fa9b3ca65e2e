// Package memstore keeps tenants and principals in memory. It backs the
// server when no database is configured and is seeded from YAML:
//
//	store, err := memstore.LoadFile("seed.yaml")
//	if err != nil {
//		return err
//	}
//	resolver, err := tenant.NewResolver(store, cfg.Tenant)
//	svc, err := auth.NewService(store, codec, registry)
package memstore
