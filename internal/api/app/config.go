package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinSigningSecretLength is the shortest HS256 secret accepted at startup.
const MinSigningSecretLength = 32

var (
	ErrSigningSecret = fmt.Errorf("AUTH_SIGNING_SECRET must be at least %d bytes", MinSigningSecretLength)
	ErrReplayStore   = errors.New("AUTH_REPLAY_STORE must be one of sqlite, memory, redis")
	ErrSameSite      = errors.New("AUTH_COOKIE_SAMESITE must be one of lax, strict, none")
)

// Replay store backends.
const (
	ReplayStoreSQLite = "sqlite"
	ReplayStoreMemory = "memory"
	ReplayStoreRedis  = "redis"
)

type Config struct {
	Issuer        string // Issuer claim for tokens (default: algamoney-api)
	SigningSecret string // Required: HS256 shared secret

	AllowedOrigin string // The single origin answered by the CORS gate (default: http://localhost:8000)

	ClientID        string        // Default client id when no clients file is given (default: angular)
	ClientSecret    string        // Default client secret (default: @ngul@r0)
	AccessTokenTTL  time.Duration // Default access token lifetime (default: 30m)
	RefreshTokenTTL time.Duration // Default refresh token lifetime (default: 24h)
	ClientsFile     string        // Optional: YAML client registry

	RefreshCookie      bool   // Move refresh tokens into the HttpOnly cookie (default: true)
	CookieSecure       bool   // Mark the refresh cookie Secure (default: false)
	CookieSameSite     string // Optional: lax, strict or none
	ReuseRefreshTokens bool   // Keep refresh tokens valid after an exchange (default: false)

	ReplayStore string // Consumed refresh marker backend: sqlite, memory, redis (default: sqlite)
	RedisAddr   string // Redis address for the redis replay store (default: localhost:6379)
	RedisDB     int    // Redis database number (default: 0)

	PublicCategories bool // Serve GET /categorias without a token (default: false)

	DatabaseFile      string // Path to SQLite database file (default: ./algamoney.db)
	PepperFile        string // Optional: password hashing pepper, created on first use
	SeedAdminUsername string // Administrator created on an empty database (default: admin)
	SeedAdminPassword string // (default: admin)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // API listener port (default: 8080)
	OpsPort              int           // Probes, metrics and docs listener port (default: 9090)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Consumed marker purge interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "algamoney-api"),
		SigningSecret: os.Getenv("AUTH_SIGNING_SECRET"),
		AllowedOrigin: getEnvOrDefault("AUTH_ALLOWED_ORIGIN", "http://localhost:8000"),

		ClientID:        getEnvOrDefault("AUTH_CLIENT_ID", "angular"),
		ClientSecret:    getEnvOrDefault("AUTH_CLIENT_SECRET", "@ngul@r0"),
		AccessTokenTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", 24*time.Hour),
		ClientsFile:     os.Getenv("AUTH_CLIENTS_FILE"),

		RefreshCookie:      getEnvBoolOrDefault("AUTH_REFRESH_COOKIE", true),
		CookieSecure:       getEnvBoolOrDefault("AUTH_COOKIE_SECURE", false),
		CookieSameSite:     strings.ToLower(os.Getenv("AUTH_COOKIE_SAMESITE")),
		ReuseRefreshTokens: getEnvBoolOrDefault("AUTH_REUSE_REFRESH_TOKENS", false),

		ReplayStore: strings.ToLower(getEnvOrDefault("AUTH_REPLAY_STORE", ReplayStoreSQLite)),
		RedisAddr:   getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvIntOrDefault("REDIS_DB", 0),

		PublicCategories: getEnvBoolOrDefault("AUTH_PUBLIC_CATEGORIES", false),

		DatabaseFile:      getEnvOrDefault("AUTH_DATABASE_FILE", "algamoney.db"),
		PepperFile:        os.Getenv("AUTH_PEPPER_FILE"),
		SeedAdminUsername: getEnvOrDefault("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnvOrDefault("SEED_ADMIN_PASSWORD", "admin"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		OpsPort:              getEnvIntOrDefault("OPS_PORT", 9090),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects configurations the service must not start with.
func (c Config) Validate() error {
	if len(c.SigningSecret) < MinSigningSecretLength {
		return ErrSigningSecret
	}

	switch c.ReplayStore {
	case ReplayStoreSQLite, ReplayStoreMemory, ReplayStoreRedis:
	default:
		return fmt.Errorf("%w: got %q", ErrReplayStore, c.ReplayStore)
	}

	switch c.CookieSameSite {
	case "", "lax", "strict":
	case "none":
		// Browsers drop SameSite=None cookies that are not Secure
		if !c.CookieSecure {
			return fmt.Errorf("%w: none requires AUTH_COOKIE_SECURE=true", ErrSameSite)
		}
	default:
		return fmt.Errorf("%w: got %q", ErrSameSite, c.CookieSameSite)
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.Port == c.OpsPort {
		return errors.New("PORT and OPS_PORT must differ")
	}
	return nil
}

// SameSite maps CookieSameSite onto the net/http constant. Unset leaves the
// attribute off the cookie.
func (c Config) SameSite() http.SameSite {
	switch c.CookieSameSite {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds, as in the token TTL settings
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
