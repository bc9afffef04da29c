// The gateway serves the shop's REST surface: the public storefront API and
// the admin API, backed either by the in-memory store for local development
// or by the GraphQL backend with entity caching in production.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/noizee/storefront/internal/app"
	"github.com/noizee/storefront/internal/app/httpapi"
	graphqlstore "github.com/noizee/storefront/internal/app/storage/graphql"
	"github.com/noizee/storefront/internal/config"
	"github.com/noizee/storefront/internal/entitycache"
	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/internal/localstore"
	"github.com/noizee/storefront/internal/metrics"
	"github.com/noizee/storefront/internal/middleware"
	"github.com/noizee/storefront/internal/uploads"
	"github.com/noizee/storefront/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gateway:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "gateway.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}, "gateway")
	if err != nil {
		return err
	}

	cache := entitycache.New(entitycache.Config{
		Name:        "entities",
		MaxEntities: cfg.Cache.MaxEntities,
		TTL:         cfg.Cache.TTL,
	})

	local, err := openLocalStore(cfg.Store)
	if err != nil {
		return err
	}

	// The backend client needs the session token, but the session service is
	// built by the application, which in turn needs the stores. The relay
	// breaks the cycle; it is bound once the application exists.
	tokens := &tokenRelay{}

	var stores app.Stores
	var subscriber *gqlclient.Subscriber
	if cfg.Backend.GraphQLEndpoint != "" {
		client, err := gqlclient.New(gqlclient.Config{
			Endpoint:   cfg.Backend.GraphQLEndpoint,
			HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
			Tokens:     tokens,
		})
		if err != nil {
			return err
		}
		backend := graphqlstore.New(client, cache, log)
		stores = app.Stores{
			Products:  backend,
			Taxonomy:  backend,
			Blog:      backend,
			Orders:    backend,
			Customers: backend,
			Auth:      backend,
		}
		if cfg.Backend.SubscriptionEndpoint != "" {
			subscriber = gqlclient.NewSubscriber(cfg.Backend.SubscriptionEndpoint, tokens, log)
		}
		log.WithField("endpoint", cfg.Backend.GraphQLEndpoint).Info("using GraphQL backend")
	} else {
		log.Info("no backend configured, using in-memory stores")
	}

	application, err := app.New(stores, app.Options{
		Local:         local,
		Cache:         cache,
		Subscriber:    subscriber,
		SweepSchedule: cfg.Cache.SweepSchedule,
	}, log)
	if err != nil {
		return err
	}
	tokens.Bind(application.Auth)

	var authMW *middleware.AuthMiddleware
	if cfg.Auth.JWTSecret != "" {
		authMW = middleware.NewAuthMiddleware([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, log, nil)
	} else {
		log.Warn("AUTH_JWT_SECRET is not set, admin routes are unprotected")
	}

	var uploadClient *uploads.Client
	if cfg.Uploads.Endpoint != "" {
		uploadClient, err = uploads.New(uploads.Config{
			Endpoint: cfg.Uploads.Endpoint,
			MaxBytes: cfg.Uploads.MaxBytes,
			Tokens:   tokens,
		})
		if err != nil {
			return err
		}
	}

	api := httpapi.NewHandler(application, httpapi.Options{
		Auth:    authMW,
		Uploads: uploadClient,
		Log:     log,
	})

	limiter := middleware.NewRateLimiter(cfg.Security.RequestsPerSecond, cfg.Security.Burst, log)
	stopCleanup := make(chan struct{})
	go limiter.StartCleanup(time.Minute, stopCleanup)

	tracing := middleware.NewTracingMiddleware(log)
	cors := middleware.NewCORSMiddleware(cfg.Security.AllowedOrigins)

	chained := tracing.Handler(cors.Handler(limiter.Handler(metrics.InstrumentHandler(api))))

	root := http.NewServeMux()
	root.Handle("/", chained)
	root.Handle("/metrics", metrics.Handler())
	root.Handle("/healthz", newHealthHandler())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("gateway listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown failed")
	}
	return application.Stop(shutdownCtx)
}

func openLocalStore(cfg config.StoreConfig) (localstore.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return localstore.NewMemory(), nil
	case "bolt":
		return localstore.OpenBolt(cfg.BoltPath)
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return localstore.NewRedis(redis.NewClient(opts), "noizee"), nil
	case "postgres":
		return localstore.OpenPostgres(cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// tokenRelay forwards Token calls to the session service once it exists.
type tokenRelay struct {
	src gqlclient.TokenSource
}

func (t *tokenRelay) Bind(src gqlclient.TokenSource) { t.src = src }

func (t *tokenRelay) Token() string {
	if t.src == nil {
		return ""
	}
	return t.src.Token()
}
