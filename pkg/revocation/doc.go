// Package revocation remembers logged-out tokens until they expire on their
// own.
//
// A token is never modified on logout. Instead it is added to a Registry keyed
// by the token string together with its exp claim. Membership checks are O(1);
// entries whose expiry has passed are swept, so the registry only ever holds
// tokens that could still be presented.
//
// Two implementations are provided:
//
//   - MemoryRegistry: a mutex-guarded map for single-instance deployments. It
//     sweeps opportunistically on Revoke (at most once per SweepInterval) and
//     on a background ticker (CleanupInterval).
//   - RedisRegistry: keys with EXPIREAT set to the token expiry, shared by all
//     instances behind a load balancer. Redis drops expired keys itself.
//
// Both decode the expiry through an ExpiryDecoder, normally *jwt.Codec.
package revocation
