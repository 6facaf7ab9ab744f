package app

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_SIGNING_SECRET", testSecret)

	cfg := LoadConfig()

	require.Equal(t, "algamoney-api", cfg.Issuer)
	require.Equal(t, "http://localhost:8000", cfg.AllowedOrigin)
	require.Equal(t, "angular", cfg.ClientID)
	require.Equal(t, "@ngul@r0", cfg.ClientSecret)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	require.True(t, cfg.RefreshCookie)
	require.False(t, cfg.CookieSecure)
	require.False(t, cfg.ReuseRefreshTokens)
	require.Equal(t, ReplayStoreSQLite, cfg.ReplayStore)
	require.Equal(t, "algamoney.db", cfg.DatabaseFile)
	require.Empty(t, cfg.PepperFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 9090, cfg.OpsPort)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AUTH_SIGNING_SECRET", testSecret)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "20")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL", "12h")
	t.Setenv("AUTH_REFRESH_COOKIE", "false")
	t.Setenv("AUTH_COOKIE_SECURE", "true")
	t.Setenv("AUTH_COOKIE_SAMESITE", "Strict")
	t.Setenv("AUTH_REPLAY_STORE", "Memory")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("PORT", "8081")

	cfg := LoadConfig()

	require.Equal(t, 20*time.Second, cfg.AccessTokenTTL)
	require.Equal(t, 12*time.Hour, cfg.RefreshTokenTTL)
	require.False(t, cfg.RefreshCookie)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, http.SameSiteStrictMode, cfg.SameSite())
	require.Equal(t, ReplayStoreMemory, cfg.ReplayStore)
	require.Equal(t, 0, cfg.RedisDB)
	require.Equal(t, 8081, cfg.Port)
	require.NoError(t, cfg.Validate())
}

func validConfig() Config {
	return Config{
		SigningSecret:   testSecret,
		ReplayStore:     ReplayStoreSQLite,
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Port:            8080,
		OpsPort:         9090,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing secret", func(c *Config) { c.SigningSecret = "" }, ErrSigningSecret},
		{"short secret", func(c *Config) { c.SigningSecret = strings.Repeat("x", MinSigningSecretLength-1) }, ErrSigningSecret},
		{"unknown replay store", func(c *Config) { c.ReplayStore = "etcd" }, ErrReplayStore},
		{"unknown samesite", func(c *Config) { c.CookieSameSite = "sometimes" }, ErrSameSite},
		{"samesite none without secure", func(c *Config) { c.CookieSameSite = "none" }, ErrSameSite},
		{"samesite none with secure", func(c *Config) { c.CookieSameSite, c.CookieSecure = "none", true }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("same ports", func(t *testing.T) {
		cfg := validConfig()
		cfg.OpsPort = cfg.Port
		require.Error(t, cfg.Validate())
	})

	t.Run("zero ttl", func(t *testing.T) {
		cfg := validConfig()
		cfg.AccessTokenTTL = 0
		require.Error(t, cfg.Validate())
	})
}

func TestSameSite(t *testing.T) {
	for in, want := range map[string]http.SameSite{
		"":       http.SameSiteDefaultMode,
		"lax":    http.SameSiteLaxMode,
		"strict": http.SameSiteStrictMode,
		"none":   http.SameSiteNoneMode,
	} {
		require.Equal(t, want, Config{CookieSameSite: in}.SameSite(), in)
	}
}
