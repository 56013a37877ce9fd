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

	httpapi "github.com/huddlehq/huddle/internal/teams/http"
	"github.com/huddlehq/huddle/internal/teams/mailer"
	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/internal/teams/store"
	"github.com/huddlehq/huddle/internal/teams/store/drivers/sqlite"
	"github.com/huddlehq/huddle/pkg/cryptox"
	"github.com/huddlehq/huddle/pkg/jwtx"
	"github.com/huddlehq/huddle/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the team service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	keys     *jwtx.KeySet
	verifier jwtx.Verifier
	mailer   mailer.Mailer

	identityService     *service.IdentityService
	teamService         *service.TeamService
	membershipService   *service.MembershipService
	invitationService   *service.InvitationService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "huddle",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Pepper for password hashing (seed tooling shares the same hashes).
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, verifier, err := InitVerifyKeys(app.cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize verification keys: %w", err)
	}
	app.keys = keys
	app.verifier = verifier

	app.initMailer()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("team service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down team service...")

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

	app.logger.Info("team service stopped")
	return nil
}

// initDatabase opens the sqlite store and applies migrations.
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

// initMailer picks SMTP when a relay is configured, log-only otherwise.
func (app *Application) initMailer() {
	if app.cfg.SMTPAddr == "" {
		app.mailer = &mailer.LogMailer{Logger: app.logger}
		app.logger.Info("no smtp relay configured, invitation emails will be logged")
		return
	}

	app.mailer = &mailer.SMTPMailer{
		Addr:     app.cfg.SMTPAddr,
		From:     app.cfg.SMTPFrom,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		AppURL:   app.cfg.AppURL,
	}
	app.logger.Info("smtp mailer configured", "addr", app.cfg.SMTPAddr)
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.identityService = &service.IdentityService{Store: app.db}
	app.teamService = &service.TeamService{Store: app.db}
	app.membershipService = &service.MembershipService{Store: app.db}
	app.invitationService = &service.InvitationService{
		Store:  app.db,
		Mailer: app.mailer,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.InvitationRetention,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.IdentityService = app.identityService
	router.TeamService = app.teamService
	router.MembershipService = app.membershipService
	router.InvitationService = app.invitationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
