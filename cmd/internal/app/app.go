// Package app wires the quill server runtime: config, logging, stores, the
// classification client, and HTTP routes.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"quill/cmd/internal/auth"
	authapi "quill/cmd/internal/auth/api"
	"quill/cmd/internal/profanity"
	"quill/cmd/internal/qna"
	qnaapi "quill/cmd/internal/qna/api"
	"quill/cmd/security/password"
	"quill/cmd/security/token"
)

// Store is a small app-level lifecycle abstraction so DB-backed resources
// can be closed gracefully.
type Store interface {
	Close(ctx context.Context) error
}

// nopStore is used for in-memory store mode.
type nopStore struct{}

func (nopStore) Close(_ context.Context) error { return nil }

// App is the quill server runtime.
type App struct {
	cfg Config
	log Logger

	store Store

	dbPool    *pgxpool.Pool
	dbEnabled bool

	auth    *authapi.Handler
	content *qnaapi.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	codec, err := token.NewCodec(cfg.TokenKeyHex)
	if err != nil {
		return nil, err
	}
	hasher, err := password.FromEnv()
	if err != nil {
		return nil, err
	}

	lifecycle, records, dbPool, dbEnabled, err := newStore(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	clean := profanity.New(profanity.Config{
		BaseURL:   cfg.BadWordsURL,
		APIKey:    cfg.BadWordsAPIKey,
		RetryBase: cfg.BadWordsRetryBase,
		Timeout:   cfg.BadWordsTimeout,
	}, log)

	authHandler, err := authapi.NewHandler(log, records, hasher, codec)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, err
	}
	contentHandler := qnaapi.NewHandler(log, records, clean, auth.NewGate(log, codec))

	return &App{
		cfg:       cfg,
		log:       log,
		store:     lifecycle,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		auth:      authHandler,
		content:   contentHandler,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.auth, a.content)

	var handler http.Handler = mux
	handler = WithSecurityHeaders(handler)
	handler = WithCORS(handler, a.cfg, a.log)
	handler = WithRequestLogging(handler, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.store.Close(shutdownCtx); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newStore decides between Postgres-backed persistence and the in-memory
// development store.
func newStore(ctx context.Context, cfg Config, log Logger) (Store, qna.Store, *pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return nopStore{}, qna.NewMemoryStore(), nil, false, nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, nil, false, err
	}

	records, err := qna.NewPostgresStore(pool, log)
	if err != nil {
		pool.Close()
		return nil, nil, nil, false, err
	}

	log.Info("db.enabled.postgres_store")
	return dbStore{pool: pool}, records, pool, true, nil
}

type dbStore struct {
	pool *pgxpool.Pool
}

func (s dbStore) Close(_ context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
