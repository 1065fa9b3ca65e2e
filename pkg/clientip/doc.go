// Package clientip resolves the originating client address of a request.
//
// Forwarding headers are only honoured when the caller names them, so a
// service exposed directly to clients cannot be fooled by a spoofed
// X-Forwarded-For:
//
//	r.Use(clientip.Middleware(clientip.DefaultHeaders...))
//
// Addresses are normalised through net/netip: IPv4-mapped IPv6 becomes plain
// IPv4 and zones are dropped.
package clientip
