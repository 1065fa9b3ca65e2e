// Package jwt issues and verifies the HS256 bearer tokens that carry a
// principal's identity and tenancy scope.
//
// A token payload carries the subject (username), iat/exp, a token id and the
// custom claims tenantId, userId, roles, permissions and accessibleCompanyIds.
// Numeric identifiers are encoded as strings on the wire and decoded back to
// int64; a claim that does not parse yields a *ClaimError rather than a zero
// value.
//
// # Usage
//
//	codec, err := jwt.NewFromConfig(jwt.Config{Secret: b64Secret, Lifetime: 24 * time.Hour})
//	if err != nil {
//		// handle error
//	}
//
//	token, err := codec.Issue(jwt.IssueParams{
//		Username: "jane",
//		UserID:   12,
//		TenantID: 7,
//		Roles:    []string{"ROLE_MANAGER"},
//	})
//
//	claims, err := codec.Verify(token)
//	switch {
//	case errors.Is(err, jwt.ErrExpiredToken):
//	case errors.Is(err, jwt.ErrInvalidToken):
//	case errors.Is(err, jwt.ErrMalformedToken), errors.Is(err, jwt.ErrMalformedClaim):
//	}
//
// Verify checks the signature before anything else, then expiry, then claim
// decoding. ExtractClaims and ExtractClaim skip verification and exist for
// callers that already verified the token earlier in the same request.
//
// # Error Handling
//
//   - ErrInvalidToken: signature mismatch
//   - ErrExpiredToken: exp is in the past
//   - ErrMalformedToken: not a decodable JWT, or exp missing
//   - ErrUnsupportedToken: any algorithm other than HS256
//   - ErrMalformedClaim: a numeric claim is not an integer (via *ClaimError)
package jwt
