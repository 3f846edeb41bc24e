package store

import (
	"context"
	"sync"
	"time"

	"leave-tracker/internal/shared/connection"

	"go.uber.org/zap"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	// Postgres is used when MongoURI is empty and Postgres.Host is set.
	Postgres connection.PostgresConfig
	Timeout  time.Duration
}

// Dialer opens a durable backend.
type Dialer func(ctx context.Context, cfg Config) (Backend, error)

type Option func(*Adapter)

func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l.Named("store.adapter")
		}
	}
}

func WithMongoDialer(d Dialer) Option {
	return func(a *Adapter) { a.dialMongo = d }
}

func WithPostgresDialer(d Dialer) Option {
	return func(a *Adapter) { a.dialPostgres = d }
}

func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// Adapter owns the single backend of the process. The backend is chosen on
// first use and never changes afterwards.
type Adapter struct {
	cfg          Config
	logger       *zap.Logger
	dialMongo    Dialer
	dialPostgres Dialer
	now          func() time.Time

	mu       sync.Mutex
	backend  Backend
	degraded bool
}

func New(cfg Config, opts ...Option) *Adapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "leave_tracker"
	}
	a := &Adapter{
		cfg:          cfg,
		logger:       zap.L().Named("store.adapter"),
		dialMongo:    dialMongo,
		dialPostgres: dialPostgres,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewWithBackend skips dialing; used by tests and tools.
func NewWithBackend(b Backend, opts ...Option) *Adapter {
	a := New(Config{}, opts...)
	a.backend = b
	return a
}

func dialMongo(ctx context.Context, cfg Config) (Backend, error) {
	client, err := connection.ConnectMongo(ctx, cfg.MongoURI, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return NewMongoBackend(client, cfg.MongoDatabase), nil
}

func dialPostgres(ctx context.Context, cfg Config) (Backend, error) {
	db, err := connection.ConnectGORM(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	if err := MigratePostgres(ctx, db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return NewPostgresBackend(db), nil
}

// ensure connects on first use. Any failure selects the memory backend for
// the rest of the process lifetime; there are no retries.
func (a *Adapter) ensure(ctx context.Context) Backend {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.backend != nil {
		return a.backend
	}

	// The first caller's cancellation must not decide the mode for everyone.
	dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Timeout)
	defer cancel()

	var (
		b    Backend
		err  error
		mode Mode
	)
	switch {
	case a.cfg.MongoURI != "":
		mode = ModeMongo
		b, err = a.dialMongo(dialCtx, a.cfg)
	case a.cfg.Postgres.Host != "":
		mode = ModePostgres
		b, err = a.dialPostgres(dialCtx, a.cfg)
	default:
		a.logger.Warn("no database configured, using in-memory storage; data will not survive a restart")
		a.backend = NewMemoryBackend(a.now())
		a.degraded = true
		return a.backend
	}

	if err != nil {
		a.logger.Error("database connection failed, falling back to in-memory storage",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		a.backend = NewMemoryBackend(a.now())
		a.degraded = true
		return a.backend
	}

	a.logger.Info("storage backend ready", zap.String("mode", string(mode)))
	a.backend = b
	return a.backend
}

func (a *Adapter) Mode(ctx context.Context) Mode {
	return a.ensure(ctx).Mode()
}

// Degraded is true when a configured database could not be reached or none
// was configured.
func (a *Adapter) Degraded(ctx context.Context) bool {
	a.ensure(ctx)
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.degraded
}

func (a *Adapter) Users(ctx context.Context) UserCollection {
	return a.ensure(ctx).Users()
}

func (a *Adapter) Leaves(ctx context.Context) LeaveCollection {
	return a.ensure(ctx).Leaves()
}

// Close releases the backend if one was opened. Safe to call more than once.
func (a *Adapter) Close(ctx context.Context) error {
	a.mu.Lock()
	b := a.backend
	a.mu.Unlock()
	if b == nil {
		return nil
	}
	return b.Close(ctx)
}
