package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token TTL constants for the password and refresh grants.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Kept short to bound the window of a leaked token.
	DefaultAccessTokenTTL = 30 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// Token use markers carried in the "token_use" claim. A refresh token must
// never be accepted where an access token is expected, and vice versa.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

// Claims are the claims carried by both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user
	Username string `json:"user_name,omitempty"`

	// User level permissions, e.g. "ROLE_CADASTRAR_CATEGORIA"
	Authorities []string `json:"authorities,omitempty"`

	// Client level permissions, e.g. "read", "write"
	Scopes []string `json:"scope,omitempty"`

	// ClientID the token was issued to
	ClientID string `json:"client_id,omitempty"`

	// Use is either UseAccess or UseRefresh
	Use string `json:"token_use,omitempty"`

	// ATI links a refresh token to the access token minted alongside it.
	ATI string `json:"ati,omitempty"`
}

// NewClaims builds minimally-correct claims for the given token use.
func NewClaims(
	use, subject, username, clientID, issuer string,
	authorities, scopes []string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username:    username,
		Authorities: authorities,
		Scopes:      scopes,
		ClientID:    clientID,
		Use:         use,
	}
}

// NewJTI returns a random identifier for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// IsAccess reports whether the claims belong to an access token.
func (c *Claims) IsAccess() bool { return c.Use == UseAccess }

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool { return c.Use == UseRefresh }

// HasAuthority reports whether the authority is present in the token.
func (c *Claims) HasAuthority(authority string) bool {
	return slices.Contains(c.Authorities, authority)
}

// HasScope reports whether the scope is present in the token.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateLifetime enforces exp > iat. Every signed token must pass it.
func (c *Claims) ValidateLifetime() error {
	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return ErrInvalidClaim
	}
	if !c.ExpiresAt.After(c.IssuedAt.Time) {
		return ErrInvalidClaim
	}
	return nil
}

// ExpiresIn returns the remaining lifetime relative to now, never negative.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}
