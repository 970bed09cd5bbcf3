package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/lexicon-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexicon-backend/internal/adapter/postgres/meaning"
	"github.com/heartmarshall/lexicon-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/lexicon-backend/internal/adapter/postgres/user"
	wordrepo "github.com/heartmarshall/lexicon-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/lexicon-backend/internal/app/importer"
	"github.com/heartmarshall/lexicon-backend/internal/auth"
	"github.com/heartmarshall/lexicon-backend/internal/config"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/internal/service/search"
	"github.com/heartmarshall/lexicon-backend/internal/service/word"
	"github.com/heartmarshall/lexicon-backend/internal/transport/middleware"
	"github.com/heartmarshall/lexicon-backend/internal/transport/rest"
)

// Database is what the application needs from the connection pool:
// queries, transactions and a liveness ping. *pgxpool.Pool satisfies it.
type Database interface {
	postgres.DB
	Ping(ctx context.Context) error
}

// Run is the "serve" entry point: it loads configuration from configPath
// (see config.Load), connects to the database and serves HTTP until ctx
// is canceled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	a, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

// App owns the configuration, logger and database pool shared by every
// command.
type App struct {
	cfg  *config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
}

// New initializes the logger and connects to PostgreSQL. Pending
// migrations are applied first when database.auto_migrate is set.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg.Log)

	logger.Info("starting application", slog.String("log_level", cfg.Log.Level))

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &App{cfg: cfg, log: logger, pool: pool}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.pool.Close()
}

// Serve runs the HTTP server until ctx is canceled, then drains in-flight
// requests for at most server.shutdown_timeout.
func (a *App) Serve(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, cleanup := NewHandler(a.cfg, a.log, a.pool, reg, clockwork.NewRealClock())
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down", slog.Duration("timeout", a.cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("http server stopped")
	return nil
}

// Import loads words from files through the word service.
func (a *App) Import(ctx context.Context, files []string, dryRun bool) (importer.Result, error) {
	svc := newWordService(a.log, a.pool)
	return importer.Run(ctx, importer.Config{DryRun: dryRun}, files, svc, a.log)
}

// AddEditor registers (or renames) an editor so words can be assigned to it.
func (a *App) AddEditor(ctx context.Context, e *domain.Editor) error {
	if err := user.New(a.pool).Upsert(ctx, e); err != nil {
		return fmt.Errorf("add editor: %w", err)
	}
	a.log.Info("editor registered", slog.String("editor_id", e.ID.String()), slog.String("name", e.Name))
	return nil
}

// ListEditors returns every registered editor.
func (a *App) ListEditors(ctx context.Context) ([]domain.Editor, error) {
	return user.New(a.pool).List(ctx)
}

// ---------------------------------------------------------------------------
// Wiring
// ---------------------------------------------------------------------------

func newWordService(logger *slog.Logger, db Database) *word.Service {
	return word.NewService(logger,
		wordrepo.New(db),
		meaning.New(db),
		note.New(db),
		user.New(db),
		postgres.NewTxManager(db),
	)
}

// NewHandler assembles the full HTTP stack over db. HTTP metrics are
// registered with reg. The returned cleanup stops background work (the
// rate limiter's eviction loop) and must be called once the server has
// stopped.
func NewHandler(
	cfg *config.Config,
	logger *slog.Logger,
	db Database,
	reg *prometheus.Registry,
	clock clockwork.Clock,
) (http.Handler, func()) {
	words := wordrepo.New(db)
	meanings := meaning.New(db)

	searchSvc := search.NewService(logger, words, meanings,
		search.NewWordCache(cfg.Search.WordOfDayCache, cfg.Search.WordOfDayTTL),
		cfg.Search,
	)
	wordSvc := newWordService(logger, db)

	metrics := middleware.NewMetrics(reg)

	var (
		limit   middleware.Middleware
		cleanup = func() {}
	)
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit, metrics.RateLimited)
		limit = rl.Limit(rest.UnlimitedPaths...)
		cleanup = rl.Stop
	}

	mux := rest.NewRouter(rest.RouterDeps{
		Health:   rest.NewHealthHandler(Version, rest.Check{Name: "database", Pinger: db}),
		Search:   rest.NewSearchHandler(searchSvc, logger, clock),
		Words:    rest.NewWordHandler(wordSvc, logger, cfg.Server.MaxBodyBytes),
		Metrics:  metrics,
		Gatherer: reg,
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.RealIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limit,
		middleware.Auth(auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)),
	)(mux)

	return handler, cleanup
}
