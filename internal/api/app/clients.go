package app

import (
	"fmt"
	"os"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/service"
	"gopkg.in/yaml.v3"
)

// clientsFile is the on-disk client registry:
//
//	clients:
//	  - id: angular
//	    secret: "@ngul@r0"
//	    grant_types: [password, refresh_token]
//	    scopes: [read, write]
//	    access_token_ttl: 30m
//	    refresh_token_ttl: 24h
type clientsFile struct {
	Clients []clientEntry `yaml:"clients"`
}

type clientEntry struct {
	ID              string        `yaml:"id"`
	Secret          string        `yaml:"secret"`
	GrantTypes      []string      `yaml:"grant_types"`
	Scopes          []string      `yaml:"scopes"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

// LoadClients builds the client registry. Without AUTH_CLIENTS_FILE it holds
// the single client from AUTH_CLIENT_ID/AUTH_CLIENT_SECRET.
func LoadClients(cfg Config) (*service.ClientRegistry, error) {
	if cfg.ClientsFile == "" {
		return service.NewClientRegistry(
			service.DefaultClient(cfg.ClientID, cfg.ClientSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		)
	}

	raw, err := os.ReadFile(cfg.ClientsFile)
	if err != nil {
		return nil, fmt.Errorf("read clients file: %w", err)
	}
	return parseClients(raw, cfg)
}

func parseClients(raw []byte, cfg Config) (*service.ClientRegistry, error) {
	var f clientsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse clients file: %w", err)
	}
	if len(f.Clients) == 0 {
		return nil, fmt.Errorf("clients file defines no clients")
	}

	clients := make([]domain.Client, 0, len(f.Clients))
	for _, e := range f.Clients {
		c := service.DefaultClient(e.ID, e.Secret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
		if len(e.GrantTypes) > 0 {
			c.GrantTypes = e.GrantTypes
		}
		if len(e.Scopes) > 0 {
			c.Scopes = e.Scopes
		}
		if e.AccessTokenTTL > 0 {
			c.AccessTokenTTL = e.AccessTokenTTL
		}
		if e.RefreshTokenTTL > 0 {
			c.RefreshTokenTTL = e.RefreshTokenTTL
		}
		clients = append(clients, c)
	}

	return service.NewClientRegistry(clients...)
}
