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

	httpapi "github.com/aussiebroadwan/postboard/internal/posts/http"
	"github.com/aussiebroadwan/postboard/internal/posts/service"
	"github.com/aussiebroadwan/postboard/internal/posts/store"
	"github.com/aussiebroadwan/postboard/internal/posts/store/drivers/sqlite"
	"github.com/aussiebroadwan/postboard/pkg/captoken"
	"github.com/aussiebroadwan/postboard/pkg/cryptox"
	"github.com/aussiebroadwan/postboard/pkg/jwtx"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application owns the postboard service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	sessionKeys *jwtx.SessionKeys
	hasher      *cryptox.PasswordHasher

	deleteIssuer   *captoken.Issuer
	deleteVerifier *captoken.Verifier

	postService    *service.PostService
	userService    *service.UserService
	sessionService *service.SessionService
	mfaService     *service.MFAService

	server *http.Server
	router *httpapi.Router
}

// New wires every dependency. Only a missing delete secret is tolerated;
// anything else that fails here stops startup.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "postboard",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.logger.Info("postboard starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"delete_enabled", app.postService.DeleteEnabled(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down postboard...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("postboard stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf(
			"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
			app.cfg.DatabaseFile,
		)
	}

	db, err := sqlite.NewStore(dsn)
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

func (app *Application) initKeys() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewPasswordHasher(pepper)

	keys, err := jwtx.NewEphemeralSessionKeys(app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to generate session keys: %w", err)
	}
	app.sessionKeys = keys
	app.logger.Info("generated ephemeral session key", "kid", keys.KID(), "issuer", keys.Issuer())
	app.logger.Warn("sessions issued before this start are now invalid")

	app.deleteIssuer, app.deleteVerifier, err = InitDeleteTokens(app.cfg, app.logger)
	return err
}

func (app *Application) initServices() {
	app.postService = &service.PostService{
		Store:    app.db,
		Issuer:   app.deleteIssuer,
		Verifier: app.deleteVerifier,
	}
	app.userService = &service.UserService{
		Store:  app.db,
		Hasher: app.hasher,
	}
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Hasher: app.hasher,
		Signer: app.sessionKeys,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sessionKeys,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.PostService = app.postService
	router.UserService = app.userService
	router.SessionService = app.sessionService
	router.MFAService = app.mfaService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
