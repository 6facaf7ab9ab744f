package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/service"
	"github.com/stretchr/testify/require"
)

func TestLoadClients_Default(t *testing.T) {
	cfg := validConfig()
	cfg.ClientID, cfg.ClientSecret = "angular", "@ngul@r0"

	reg, err := LoadClients(cfg)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	c, err := reg.Authenticate("angular", "@ngul@r0")
	require.NoError(t, err)
	require.Equal(t, []string{"read", "write"}, c.Scopes)
	require.True(t, c.AllowsGrant(domain.GrantPassword))
	require.True(t, c.AllowsGrant(domain.GrantRefreshToken))
	require.Equal(t, time.Minute, c.AccessTokenTTL)
	require.Equal(t, time.Hour, c.RefreshTokenTTL)
}

func TestLoadClients_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
clients:
  - id: angular
    secret: "@ngul@r0"
    refresh_token_ttl: 48h
  - id: mobile
    secret: m0b1l3
    grant_types: [password]
    scopes: [read]
    access_token_ttl: 5m
`), 0o600))

	cfg := validConfig()
	cfg.ClientsFile = path

	reg, err := LoadClients(cfg)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	angular, ok := reg.Get("angular")
	require.True(t, ok)
	require.Equal(t, time.Minute, angular.AccessTokenTTL)
	require.Equal(t, 48*time.Hour, angular.RefreshTokenTTL)
	require.Equal(t, []string{"read", "write"}, angular.Scopes)

	mobile, err := reg.Authenticate("mobile", "m0b1l3")
	require.NoError(t, err)
	require.Equal(t, []string{"read"}, mobile.Scopes)
	require.False(t, mobile.AllowsGrant(domain.GrantRefreshToken))
	require.Equal(t, 5*time.Minute, mobile.AccessTokenTTL)
	require.Equal(t, time.Hour, mobile.RefreshTokenTTL)
}

func TestLoadClients_Errors(t *testing.T) {
	cfg := validConfig()

	t.Run("missing file", func(t *testing.T) {
		cfg.ClientsFile = filepath.Join(t.TempDir(), "nope.yaml")
		_, err := LoadClients(cfg)
		require.Error(t, err)
	})

	t.Run("empty registry", func(t *testing.T) {
		_, err := parseClients([]byte("clients: []\n"), cfg)
		require.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := parseClients([]byte("clients: [\n"), cfg)
		require.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := parseClients([]byte("clients:\n  - id: a\n    access_token_ttl: soon\n"), cfg)
		require.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := parseClients([]byte("clients:\n  - id: a\n  - id: a\n"), cfg)
		require.ErrorIs(t, err, service.ErrDuplicateClient)
	})
}
