package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mcoot/pizzeria/internal/config"
	"github.com/mcoot/pizzeria/internal/dependencies/clock"
	"github.com/mcoot/pizzeria/internal/dependencies/random"
	"github.com/mcoot/pizzeria/internal/services/address"
	"github.com/mcoot/pizzeria/internal/services/catalog"
	"github.com/mcoot/pizzeria/internal/services/credential"
	"github.com/mcoot/pizzeria/internal/services/identity"
	"github.com/mcoot/pizzeria/internal/services/payment"
	"github.com/mcoot/pizzeria/internal/services/session"
	"github.com/mcoot/pizzeria/internal/storage"
	"github.com/mcoot/pizzeria/internal/storage/memory"
	"github.com/mcoot/pizzeria/internal/storage/postgres"
	redisstorage "github.com/mcoot/pizzeria/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions session.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Hasher           *credential.Hasher
	IdentityResolver *identity.Resolver
	SessionService   *session.Service
	AddressService   *address.Service
	PaymentService   *payment.Service
	CatalogService   *catalog.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Settings is the loaded server configuration. Empty backend types
	// default to memory.
	Settings config.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	settings := cfg.Settings

	clk := clock.New()
	rnd := random.New()

	var (
		closers     []io.Closer
		redisClient *goredis.Client
	)
	fail := func(err error) (*App, error) {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	sharedRedis := func() (*goredis.Client, error) {
		if redisClient != nil {
			return redisClient, nil
		}
		client, err := redisstorage.NewClient(redisConfig(settings.Redis))
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, client)
		redisClient = client
		return client, nil
	}

	// Create storage based on type
	var store storage.Storage
	switch settings.Storage.Type {
	case "", config.BackendMemory:
		store = memory.New()
	case config.BackendRedis:
		client, err := sharedRedis()
		if err != nil {
			return fail(err)
		}
		store = redisstorage.NewWithClient(client, redisConfig(settings.Redis))
	case config.BackendPostgres:
		pg, err := postgres.Open(ctx, postgresConfig(settings.Postgres))
		if err != nil {
			return fail(fmt.Errorf("open postgres: %w", err))
		}
		closers = append(closers, pg)
		store = pg
	default:
		return fail(errors.New("invalid storage type: must be 'memory', 'redis' or 'postgres'"))
	}

	// Create session store based on type
	var sessions session.Store
	switch settings.Session.Store {
	case "", config.BackendMemory:
		sessions = memory.NewSessionStore(clk)
	case config.BackendRedis:
		client, err := sharedRedis()
		if err != nil {
			return fail(err)
		}
		sessions = redisstorage.NewSessionStore(client, clk)
	default:
		return fail(errors.New("invalid session store: must be 'memory' or 'redis'"))
	}

	logger.Info("storage configured",
		slog.String("storage", orDefault(settings.Storage.Type)),
		slog.String("sessions", orDefault(settings.Session.Store)),
	)

	app := newWithDependencies(store, sessions, clk, rnd, settings, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	sessions session.Store,
	clk clock.Clock,
	rnd random.Random,
	settings config.Config,
	logger *slog.Logger,
) *App {
	hasher := credential.New(rnd, credential.Config{MaxConcurrent: settings.Credential.MaxConcurrent})

	return &App{
		Storage:          store,
		Sessions:         sessions,
		Clock:            clk,
		Random:           rnd,
		Hasher:           hasher,
		IdentityResolver: identity.New(store, hasher, clk, logger),
		SessionService:   session.New(sessions, rnd, clk, session.Config{TTL: settings.Session.TTL}),
		AddressService:   address.New(store, logger),
		PaymentService:   payment.New(store, logger),
		CatalogService:   catalog.New(store, logger),
	}
}

// Close releases backend connections in reverse order of creation
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func redisConfig(c config.RedisConfig) redisstorage.Config {
	cfg := redisstorage.DefaultConfig()
	if c.URL != "" {
		cfg.URL = c.URL
	}
	if c.PoolSize > 0 {
		cfg.PoolSize = c.PoolSize
	}
	if c.MinIdleConns > 0 {
		cfg.MinIdleConns = c.MinIdleConns
	}
	return cfg
}

func postgresConfig(c config.PostgresConfig) postgres.Config {
	cfg := postgres.DefaultConfig()
	if c.DSN != "" {
		cfg.DSN = c.DSN
	}
	if c.MaxOpenConns > 0 {
		cfg.MaxOpenConns = c.MaxOpenConns
	}
	return cfg
}

func orDefault(backend string) string {
	if backend == "" {
		return config.BackendMemory
	}
	return backend
}
