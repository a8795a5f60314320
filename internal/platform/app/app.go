// Package app assembles the platform: config, storage, session keys,
// services, and the HTTP server, with graceful shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/knowaria/knowaria/internal/platform/http"
	"github.com/knowaria/knowaria/internal/platform/service"
	"github.com/knowaria/knowaria/internal/platform/store"
	"github.com/knowaria/knowaria/internal/platform/store/drivers/sqlite"
	"github.com/knowaria/knowaria/pkg/cryptox"
	"github.com/knowaria/knowaria/pkg/idx"
	"github.com/knowaria/knowaria/pkg/jwtx"
	"github.com/knowaria/knowaria/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the platform with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	keypair *jwtx.EdDSAKeypair

	authService         *service.AuthService
	signupService       *service.SignupService
	verificationService *service.VerificationService
	articleService      *service.ArticleService
	reactionService     *service.ReactionService
	profileService      *service.ProfileService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "knowaria",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Sessions are signed with a per-boot keypair; restarting invalidates
	// every outstanding session.
	keypair, err := jwtx.NewEphemeralKeypair(idx.New().String(), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session keypair: %w", err)
	}
	app.keypair = keypair

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("platform starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down platform...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("platform stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Keypair:    app.keypair,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.signupService = &service.SignupService{Store: app.db}
	app.verificationService = &service.VerificationService{
		Store:  app.db,
		Issuer: "Knowaria",
		Sender: service.LogSender{},
	}
	app.articleService = &service.ArticleService{Store: app.db}
	app.reactionService = &service.ReactionService{Store: app.db}
	app.profileService = &service.ProfileService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keypair,
		BuildVersion,
		app.cfg.SecureCookies,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.SignupService = app.signupService
	router.VerificationService = app.verificationService
	router.ArticleService = app.articleService
	router.ReactionService = app.reactionService
	router.ProfileService = app.profileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
