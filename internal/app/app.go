package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/football-sync/external/apifootball"
	"github.com/riskibarqy/football-sync/internal/config"
	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
	"github.com/riskibarqy/football-sync/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/football-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-sync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/riskibarqy/football-sync/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// Worker owns every long lived dependency of the sync worker.
type Worker struct {
	Config     config.Config
	Store      usecase.Store
	CacheLog   cachelog.Repository
	Reconciler *usecase.GraphReconciler
	Live       *usecase.LiveEventSynchronizer
	Curator    *usecase.RosterCurator
	Jobs       *usecase.FixtureJobService
	Scheduler  *jobqueue.TimerScheduler

	db     *sqlx.DB
	logger *logging.Logger
}

// Options lets callers swap the provider client or clock, mainly for tests.
type Options struct {
	Client usecase.SnapshotClient
	Clock  clockwork.Clock
}

// NewWorker wires the store, provider client and services. An empty DB_URL
// selects the in-memory store.
func NewWorker(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*Worker, error) {
	if logger == nil {
		logger = logging.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	w := &Worker{Config: cfg, logger: logger}

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL empty, using in-memory store")
		store := memory.NewStore()
		w.Store = store
		w.CacheLog = store.CacheLog()
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(db)
		w.db = db
		w.Store = store
		w.CacheLog = store.CacheLog()
		logger.Info("postgres store ready", "db_name", dbNameFromURL(cfg.DBURL))
	}

	client := opts.Client
	if client == nil {
		client = apifootball.NewClient(apifootball.ClientConfig{
			BaseURL:        cfg.APIFootballBaseURL,
			APIKey:         cfg.APIFootballKey,
			Timeout:        cfg.APIFootballTimeout,
			MaxRetries:     cfg.APIFootballMaxRetries,
			Logger:         logger,
			Clock:          clock,
			CircuitBreaker: cfg.APIFootballCircuitBreaker(),
		})
	}

	w.Reconciler = usecase.NewGraphReconciler(client, w.Store, w.CacheLog, clock, usecase.GraphReconcilerConfig{
		ReferenceZone: cfg.ReferenceTimezone,
	}, logger)
	w.Live = usecase.NewLiveEventSynchronizer(w.Store, w.CacheLog, clock, logger)
	w.Curator = usecase.NewRosterCurator(w.Store, logger)
	w.Scheduler = jobqueue.NewTimerScheduler(jobqueue.TimerSchedulerConfig{
		PollInterval: cfg.LivePollInterval,
		Clock:        clock,
		Logger:       logger,
	})
	w.Jobs = usecase.NewFixtureJobService(client, w.Store, w.Reconciler, w.Live, w.Scheduler, clock, usecase.FixtureJobConfig{
		Concurrency: cfg.WorkerConcurrency,
		LineupLead:  cfg.LineupLead,
	}, logger)

	return w, nil
}

// StartScheduler binds the timer scheduler to the live poller.
func (w *Worker) StartScheduler(ctx context.Context) {
	w.Scheduler.Start(ctx, w.Jobs.PollLiveFixture)
}

// Close stops scheduled jobs and releases the database pool.
func (w *Worker) Close() error {
	if w.Scheduler != nil {
		w.Scheduler.Stop()
	}
	var errs []error
	if w.db != nil {
		if err := w.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
