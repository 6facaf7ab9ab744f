package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/pkg/cryptox"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
)

var ErrDuplicateClient = errors.New("duplicate client id")

// ClientRegistry is the fixed set of applications allowed to request tokens.
// It is built once at startup and only read afterwards.
type ClientRegistry struct {
	clients map[string]domain.Client
}

// DefaultClient is the single browser client the ledger ships with.
func DefaultClient(id, secret string, accessTTL, refreshTTL time.Duration) domain.Client {
	return domain.Client{
		ID:              id,
		Secret:          secret,
		GrantTypes:      []string{domain.GrantPassword, domain.GrantRefreshToken},
		Scopes:          []string{"read", "write"},
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

func NewClientRegistry(clients ...domain.Client) (*ClientRegistry, error) {
	r := &ClientRegistry{clients: make(map[string]domain.Client, len(clients))}
	for _, c := range clients {
		if c.ID == "" {
			return nil, fmt.Errorf("client without id")
		}
		if _, ok := r.clients[c.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClient, c.ID)
		}
		if c.AccessTokenTTL <= 0 {
			c.AccessTokenTTL = jwtx.DefaultAccessTokenTTL
		}
		if c.RefreshTokenTTL <= 0 {
			c.RefreshTokenTTL = jwtx.DefaultRefreshTokenTTL
		}
		r.clients[c.ID] = c
	}
	return r, nil
}

// Get returns a client by id without authenticating it.
func (r *ClientRegistry) Get(id string) (domain.Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

// Authenticate checks the client id and secret pair. Unknown ids and wrong
// secrets are indistinguishable to the caller.
func (r *ClientRegistry) Authenticate(id, secret string) (domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return domain.Client{}, ErrInvalidClient
	}
	if err := cryptox.VerifySecret(secret, c.Secret); err != nil {
		return domain.Client{}, ErrInvalidClient
	}
	return c, nil
}

// Len returns the number of configured clients.
func (r *ClientRegistry) Len() int { return len(r.clients) }
