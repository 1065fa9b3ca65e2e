package jwt

import (
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the typed view of a token payload.
type Claims struct {
	ID                   string
	Username             string
	UserID               int64
	TenantID             int64
	Roles                []string
	Permissions          []string
	AccessibleCompanyIDs []int64
	IssuedAt             time.Time
	ExpiresAt            time.Time
}

// HasCompany reports whether companyID is among the accessible companies.
func (c *Claims) HasCompany(companyID int64) bool {
	for _, id := range c.AccessibleCompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// wireClaims is the JSON payload. Numeric identifiers travel as strings.
type wireClaims struct {
	gojwt.RegisteredClaims
	TenantID             string   `json:"tenantId"`
	UserID               string   `json:"userId"`
	Roles                []string `json:"roles"`
	Permissions          []string `json:"permissions"`
	AccessibleCompanyIDs []string `json:"accessibleCompanyIds"`
}

func encodeClaims(c Claims) wireClaims {
	companies := make([]string, len(c.AccessibleCompanyIDs))
	for i, id := range c.AccessibleCompanyIDs {
		companies[i] = strconv.FormatInt(id, 10)
	}
	roles := c.Roles
	if roles == nil {
		roles = []string{}
	}
	perms := c.Permissions
	if perms == nil {
		perms = []string{}
	}

	return wireClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        c.ID,
			Subject:   c.Username,
			IssuedAt:  gojwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: gojwt.NewNumericDate(c.ExpiresAt),
		},
		TenantID:             strconv.FormatInt(c.TenantID, 10),
		UserID:               strconv.FormatInt(c.UserID, 10),
		Roles:                roles,
		Permissions:          perms,
		AccessibleCompanyIDs: companies,
	}
}

func decodeClaims(w *wireClaims) (*Claims, error) {
	tenantID, err := parseIntClaim("tenantId", w.TenantID)
	if err != nil {
		return nil, err
	}
	userID, err := parseIntClaim("userId", w.UserID)
	if err != nil {
		return nil, err
	}

	companies := make([]int64, 0, len(w.AccessibleCompanyIDs))
	for _, raw := range w.AccessibleCompanyIDs {
		id, err := parseIntClaim("accessibleCompanyIds", raw)
		if err != nil {
			return nil, err
		}
		companies = append(companies, id)
	}

	c := &Claims{
		ID:                   w.ID,
		Username:             w.Subject,
		UserID:               userID,
		TenantID:             tenantID,
		Roles:                w.Roles,
		Permissions:          w.Permissions,
		AccessibleCompanyIDs: companies,
	}
	if w.IssuedAt != nil {
		c.IssuedAt = w.IssuedAt.Time
	}
	if w.ExpiresAt != nil {
		c.ExpiresAt = w.ExpiresAt.Time
	}
	return c, nil
}

func parseIntClaim(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ClaimError{Claim: name, Value: raw, Err: err}
	}
	return v, nil
}
