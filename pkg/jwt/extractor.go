package jwt

import "net/http"

// TokenExtractorFunc extracts a raw token from a request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// BearerTokenExtractor reads "Authorization: Bearer <token>".
// It returns ErrMissingToken when the header is absent or uses another scheme.
func BearerTokenExtractor(r *http.Request) (string, error) {
	token, ok := TrimBearer(r.Header.Get("Authorization"))
	if !ok {
		return "", ErrMissingToken
	}
	return token, nil
}
