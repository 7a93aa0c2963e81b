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

	httpapi "github.com/aussiebroadwan/tuenti/internal/tuenti/http"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore/fs"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore/gridfs"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store/drivers/sqlite"
	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
	"github.com/aussiebroadwan/tuenti/pkg/otelx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

const serviceName = "tuenti"

// Application holds the tuenti service and everything it depends on.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	objects       objectstore.Store
	signer        jwtx.Signer
	keys          *jwtx.KeySet
	verifier      jwtx.Verifier
	traceShutdown otelx.ShutdownFunc

	invitationService   *service.InvitationService
	registrationService *service.RegistrationService
	authService         *service.AuthService
	profileService      *service.ProfileService
	feedService         *service.FeedService
	mediaService        *service.MediaService
	friendshipService   *service.FriendshipService
	notificationService *service.NotificationService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New opens the stores, loads keys and wires the services and router.
// setupTracing is swapped in tests.
var setupTracing = otelx.Setup

func New(ctx context.Context, cfg Config) (_ *Application, err error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
		}),
	}

	shutdown, err := setupTracing(ctx, otelx.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: serviceName,
		Version:     BuildVersion,
		Env:         cfg.Env,
		SampleRatio: cfg.OTELSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	app.traceShutdown = shutdown
	defer func() {
		if err != nil {
			_ = app.traceShutdown(ctx)
		}
	}()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initObjectStore(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.signer, app.keys, app.verifier, err = InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.closeStores(ctx)
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.closeStores(ctx)
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, for tests.
func (app *Application) Handler() http.Handler { return app.router }

// InvitationService is used by the CLI to mint invitations.
func (app *Application) InvitationService() *service.InvitationService {
	return app.invitationService
}

// Run serves until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("tuenti starting", "port", app.cfg.Port, "version", BuildVersion,
		"objectstore", app.cfg.ObjectStore)

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

// Shutdown drains requests, stops housekeeping and closes the stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tuenti...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.traceShutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	return app.Close(ctx)
}

// Close releases the stores without touching the HTTP server. Used by
// one-shot commands that never call Run.
func (app *Application) Close(ctx context.Context) error {
	err := app.closeStores(ctx)
	if err == nil {
		app.logger.Info("tuenti stopped")
	}
	return err
}

func (app *Application) closeStores(ctx context.Context) error {
	var errs []error
	if app.objects != nil {
		if err := app.objects.Close(ctx); err != nil {
			app.logger.Error("error closing object store", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "path", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initObjectStore(ctx context.Context) error {
	switch app.cfg.ObjectStore {
	case ObjectStoreGridFS:
		s, err := gridfs.Connect(ctx, gridfs.Config{
			URI:      app.cfg.MongoURI,
			Database: app.cfg.MongoDatabase,
			Bucket:   app.cfg.MongoBucket,
		})
		if err != nil {
			return fmt.Errorf("failed to connect object store: %w", err)
		}
		app.objects = s
		app.logger.Info("object store connected", "driver", "gridfs", "database", app.cfg.MongoDatabase)
	default:
		s, err := fs.NewStore(app.cfg.MediaDir)
		if err != nil {
			return fmt.Errorf("failed to open object store: %w", err)
		}
		app.objects = s
		app.logger.Info("object store opened", "driver", "fs", "root", app.cfg.MediaDir)
	}
	return nil
}

func (app *Application) mailer() service.Mailer {
	if app.cfg.SMTPAddr == "" {
		app.logger.Warn("no smtp relay configured, mail will be logged")
		return service.LogMailer{}
	}
	return &service.SMTPMailer{
		Addr:     app.cfg.SMTPAddr,
		From:     app.cfg.SMTPFrom,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
	}
}

func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	hasher := cryptox.NewPasswordHasher(pepper)

	tokens := &service.TokenIssuer{
		Signer:     app.signer,
		Issuer:     app.cfg.Issuer,
		Audience:   app.cfg.Audience,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}

	app.invitationService = &service.InvitationService{Store: app.db}
	app.registrationService = &service.RegistrationService{Store: app.db, Hasher: hasher, Tokens: tokens}
	app.authService = &service.AuthService{
		Store:      app.db,
		Hasher:     hasher,
		Tokens:     tokens,
		Mailer:     app.mailer(),
		CodeIssuer: app.cfg.Issuer,
	}
	app.profileService = &service.ProfileService{Store: app.db}
	app.feedService = &service.FeedService{Store: app.db}
	app.mediaService = &service.MediaService{
		Store:    app.db,
		Objects:  app.objects,
		MaxBytes: app.cfg.MaxUploadBytes,
	}
	app.friendshipService = &service.FriendshipService{Store: app.db}
	app.notificationService = &service.NotificationService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.objects,
		app.logger,
	)

	router.InvitationService = app.invitationService
	router.RegistrationService = app.registrationService
	router.AuthService = app.authService
	router.ProfileService = app.profileService
	router.FeedService = app.feedService
	router.MediaService = app.mediaService
	router.FriendshipService = app.friendshipService
	router.NotificationService = app.notificationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
