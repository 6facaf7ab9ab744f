package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/rutsatz/algamoney-api/internal/api/http"
	"github.com/rutsatz/algamoney-api/internal/api/service"
	"github.com/rutsatz/algamoney-api/internal/api/store/drivers/sqlite"
	"github.com/rutsatz/algamoney-api/pkg/cryptox"
	"github.com/rutsatz/algamoney-api/pkg/httpx"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the API with all its dependencies
type Application struct {
	cfg       Config
	logger    *slog.Logger
	startTime time.Time

	// Core dependencies
	db      *sqlite.Store
	replay  replayStore
	signer  *jwtx.HS256
	clients *service.ClientRegistry
	metrics *httpapi.Metrics

	// Services
	tokenService        *service.TokenService
	userService         *service.UserService
	categoryService     *service.CategoryService
	housekeepingService *service.HousekeepingService

	// HTTP servers
	server    *http.Server
	opsServer *http.Server
	router    *httpapi.Router
}

// NewLogger builds the process logger from the config.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "algamoney-api",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:       cfg,
		logger:    NewLogger(cfg),
		startTime: time.Now(),
	}

	if err := InitPepper(cfg); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	db, err := OpenDatabase(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.init(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

func (app *Application) init(ctx context.Context) error {
	var err error

	if app.replay, err = initReplayStore(ctx, app.cfg, app.db, app.logger); err != nil {
		return err
	}
	if app.signer, err = InitSigner(app.cfg, app.logger); err != nil {
		return err
	}
	if app.clients, err = LoadClients(app.cfg); err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}
	app.logger.Info("client registry loaded", "clients", app.clients.Len())

	if app.metrics, err = httpapi.NewMetrics(); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	app.initServices()

	if err := app.seedAdmin(ctx); err != nil {
		return err
	}

	app.initHTTP()
	return nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("algamoney api starting",
		"port", app.cfg.Port,
		"ops_port", app.cfg.OpsPort,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 2)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()
	go func() {
		serverErrors <- app.opsServer.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down algamoney api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	for _, srv := range []*http.Server{app.server, app.opsServer} {
		if err := srv.Shutdown(ctx); err != nil {
			app.logger.Error("graceful server shutdown failed", "addr", srv.Addr, "error", err)
			if err := srv.Close(); err != nil {
				app.logger.Error("error closing server", "addr", srv.Addr, "error", err)
			}
		}
	}

	app.housekeepingService.Stop()

	if app.replay.close != nil {
		if err := app.replay.close(); err != nil {
			app.logger.Error("error closing replay store", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("algamoney api stopped")
	return nil
}

// Handler returns the API handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// OpsHandler returns the probes, metrics and docs handler.
func (app *Application) OpsHandler() http.Handler { return app.opsServer.Handler }

// InitPepper loads the password pepper when a pepper file is configured.
func InitPepper(cfg Config) error {
	if cfg.PepperFile == "" {
		cryptox.SetPepper("")
		return nil
	}
	return cryptox.LoadPepperFile(cfg.PepperFile)
}

// OpenDatabase opens the SQLite database and applies migrations.
func OpenDatabase(cfg Config, logger *slog.Logger) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(sqlite.DSN(cfg.DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "file", cfg.DatabaseFile)
	return db, nil
}

func (app *Application) seedAdmin(ctx context.Context) error {
	created, err := app.userService.SeedAdmin(ctx, app.cfg.SeedAdminUsername, app.cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}
	if created {
		app.logger.Warn("administrator created on empty database, change its password",
			"username", app.cfg.SeedAdminUsername)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db}
	app.categoryService = &service.CategoryService{Store: app.db}

	app.tokenService = &service.TokenService{
		Signer:             app.signer,
		Verifier:           app.signer,
		Clients:            app.clients,
		Users:              app.userService,
		Consumed:           app.replay,
		Issuer:             app.cfg.Issuer,
		ReuseRefreshTokens: app.cfg.ReuseRefreshTokens,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.replay,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and servers
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		httpapi.RouterConfig{
			AllowedOrigin:       app.cfg.AllowedOrigin,
			PublicCategories:    app.cfg.PublicCategories,
			TokenRateLimit:      httpx.TokenLimit,
			ResourceRateLimit:   httpx.ResourceLimit,
			CredentialRateLimit: httpx.CredentialLimit,
		},
		app.signer,
		app.logger,
		app.metrics,
	)

	router.TokenService = app.tokenService
	router.CategoryService = app.categoryService
	router.Bridge = &httpapi.RefreshCookieBridge{
		Enabled:  app.cfg.RefreshCookie,
		Secure:   app.cfg.CookieSecure,
		SameSite: app.cfg.SameSite(),
		Lifetime: app.refreshLifetime,
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	var replayPinger httpapi.Pinger
	if app.replay.ping != nil {
		replayPinger = app.replay
	}
	app.opsServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.OpsPort),
		Handler:           httpapi.NewOpsMux(app.startTime, BuildVersion, app.db, replayPinger, app.metrics),
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// refreshLifetime is the refresh cookie Max-Age for a client.
func (app *Application) refreshLifetime(clientID string) time.Duration {
	if c, ok := app.clients.Get(clientID); ok {
		return c.RefreshTokenTTL
	}
	return app.cfg.RefreshTokenTTL
}
