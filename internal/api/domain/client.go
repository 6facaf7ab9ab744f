package domain

import (
	"slices"
	"time"
)

// Grant types understood by the token endpoint.
const (
	GrantPassword     = "password"
	GrantRefreshToken = "refresh_token"
)

// Client is a calling application. Clients are configured at startup and
// never change while the process runs.
type Client struct {
	ID              string
	Secret          string // plain, bcrypt or argon2id
	GrantTypes      []string
	Scopes          []string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AllowsGrant reports whether the client may use the grant type.
func (c Client) AllowsGrant(grant string) bool {
	return slices.Contains(c.GrantTypes, grant)
}
