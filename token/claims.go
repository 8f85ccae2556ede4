package token

import (
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	hrmserrors "github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/internal/utils"
)

// Claim names read from, and written to, HRMS bearer tokens.
const (
	ClaimID        = "jti"
	ClaimSubject   = "sub"
	ClaimUsername  = "username"
	ClaimRole      = "role"
	ClaimRoles     = "roles"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims are the identity fields a client can read out of a bearer token.
type Claims struct {
	ID        string
	Subject   string
	Username  string
	Roles     []string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

// Role returns the first role claim, or empty when none was issued.
func (c *Claims) Role() string {
	if len(c.Roles) == 0 {
		return ""
	}
	return c.Roles[0]
}

// Expired reports whether exp has passed. A token without exp never expires
// client-side.
func (c *Claims) Expired() bool {
	return !c.ExpiresAt.IsZero() && NowTimeFunc().After(c.ExpiresAt)
}

// ParseClaims decodes rawToken without verifying its signature. Verification
// belongs to the issuing server; the client only reads display fields.
func ParseClaims(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, fmt.Errorf("%w: empty token", hrmserrors.ErrInvalidToken)
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hrmserrors.ErrInvalidToken, err)
	}

	mc, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: error extracting claims", hrmserrors.ErrInvalidToken)
	}

	claims := &Claims{}
	claims.ID, _ = mc[ClaimID].(string)
	claims.Subject, _ = mc.GetSubject()
	claims.Username, _ = mc[ClaimUsername].(string)
	if claims.Username == "" {
		claims.Username = claims.Subject
	}

	if role, ok := mc[ClaimRole].(string); ok && role != "" {
		claims.Roles = append(claims.Roles, role)
	}
	if roles, ok := mc[ClaimRoles].([]any); ok {
		claims.Roles = append(claims.Roles, utils.ToStringSlice(roles)...)
	}

	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}
