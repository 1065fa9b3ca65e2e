// Package api assembles the HTTP surface: request id and panic recovery, the
// tenant/authentication/company pipeline, session endpoints and health probes.
package api
