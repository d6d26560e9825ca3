package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	raven "github.com/getsentry/raven-go"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	rungroup "github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"

	"github.com/polaroidwall/polaroidwall/pkg/server/api"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/chain"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/middleware"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/routes"
	"github.com/polaroidwall/polaroidwall/pkg/server/config"
	"github.com/polaroidwall/polaroidwall/pkg/storage"
	"github.com/polaroidwall/polaroidwall/pkg/store"
)

// Run starts the polaroids server
// Any error returned is fatal
func Run(logger log.Logger) error {
	logger.Info("Loading configuration from environment")
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "Could not load configuration")
	}
	logger.Info("Configuration successfully loaded")

	logger = logger.With("environment", cfg.Environment)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "Could not connect to database")
	}
	defer db.Close()

	if err := store.Migrate(db, logger); err != nil {
		return errors.Wrap(err, "Could not migrate database")
	}

	fileStorage, err := storage.NewDiskStorage(cfg.UploadDir)
	if err != nil {
		return errors.Wrap(err, "Could not prepare upload directory")
	}

	polaroidStore := store.DBPolaroidStore{DB: db}

	// If the SentryDsn is not set then a no-op client will be returned
	sentryClient, err := raven.New(cfg.SentryDsn)
	if err != nil {
		return errors.Wrap(err, "Could not initialise sentry-raven client")
	}
	sentryClient.SetEnvironment(cfg.Environment)

	handler := NewHandler(logger, sentryClient, Options{
		PolaroidStore:      polaroidStore,
		Storage:            fileStorage,
		UploadDir:          cfg.UploadDir,
		MaxUploadBytes:     cfg.MaxUploadBytes,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	var g rungroup.Group

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	g.Add(
		func() error {
			logger.With("port", cfg.Port).Info("Listening for HTTP requests")
			return server.ListenAndServe()
		},
		func(error) { server.Shutdown(context.Background()) },
	)

	if cfg.SweepInterval > 0 {
		// Removing a file after its record was deleted is best-effort, so files
		// can be orphaned. The sweeper garbage collects them.
		sweeperLogger := logger.With("component", "sweeper")

		sweeper := NewOrphanSweeper(sweeperLogger, sentryClient, polaroidStore, fileStorage, cfg.SweepGracePeriod)
		sweeperCtx, sweeperCancel := context.WithCancel(context.Background())

		g.Add(
			func() error { return sweeper.Start(sweeperCtx, cfg.SweepInterval) },
			func(error) { sweeperCancel() },
		)
	}

	{
		signals := make(chan os.Signal, 1)
		done := make(chan struct{})

		g.Add(
			func() error {
				signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
				select {
				case sig := <-signals:
					logger.With("signal", sig.String()).Info("Received signal, shutting down")
					return nil
				case <-done:
					return nil
				}
			},
			func(error) {
				signal.Stop(signals)
				close(done)
			},
		)
	}

	if err := g.Run(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "could not start HTTP server")
	}
	return nil
}

// Options configures the routes served by NewHandler
type Options struct {
	PolaroidStore      store.PolaroidStore
	Storage            storage.Storage
	UploadDir          string
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
}

// NewHandler builds the full HTTP handler: the polaroid API, the health check
// and the static upload files, wrapped in CORS.
func NewHandler(logger log.Logger, sentryClient *raven.Client, opts Options) http.Handler {
	polaroidRouteSet := routes.Polaroids{
		PolaroidStore:  opts.PolaroidStore,
		Storage:        opts.Storage,
		MaxUploadBytes: opts.MaxUploadBytes,
	}

	router := mux.NewRouter()

	// Every request will be logged, and any error raised in serving the request
	// will also be logged and reported to Sentry.
	rootHandler := chain.
		New(middleware.NewErrorHandler(logger)).
		Add(middleware.NewRequestLogger(logger)).
		Add(middleware.NewSentryReporter(sentryClient))

	// Healthcheck
	router.Methods("GET").Path("/health_check").HandlerFunc(
		rootHandler.
			Add(middleware.WithVersion).
			Resolve(routes.HealthCheck),
	)

	// Uploaded files are served with whatever type the file server detects
	router.Methods("GET", "HEAD").PathPrefix(storage.URLPrefix + "/").HandlerFunc(
		rootHandler.
			Add(middleware.DefaultErrorRenderer).
			Add(middleware.WithVersion).
			Resolve(routes.Uploads(opts.UploadDir)),
	)

	// Core API routes
	// These routes all accept and return JSON
	defaultChain := rootHandler.
		Add(middleware.DefaultErrorRenderer).
		Add(middleware.WithVersion).
		Add(middleware.AsJSON)

	router.Methods("GET").Path("/api/polaroids").HandlerFunc(
		defaultChain.Resolve(polaroidRouteSet.List),
	)

	router.Methods("POST").Path("/api/polaroids").HandlerFunc(
		defaultChain.Resolve(polaroidRouteSet.Create),
	)

	router.Methods("PUT").Path("/api/polaroids/{id}").HandlerFunc(
		defaultChain.Resolve(polaroidRouteSet.Update),
	)

	router.Methods("DELETE").Path("/api/polaroids/{id}").HandlerFunc(
		defaultChain.Resolve(polaroidRouteSet.Destroy),
	)

	router.NotFoundHandler = defaultChain.Resolve(notFound)

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
}

func notFound(w http.ResponseWriter, r *http.Request) error {
	api.NotFoundError.Render(w, http.StatusNotFound)
	return nil
}
