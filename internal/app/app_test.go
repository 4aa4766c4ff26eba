package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-sync/internal/config"
	usecasemock "github.com/riskibarqy/football-sync/internal/mocks/usecase"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/riskibarqy/football-sync/internal/usecase"
	"github.com/stretchr/testify/mock"
)

func TestNewWorker_MemoryStore(t *testing.T) {
	client := usecasemock.NewSnapshotClient(t)
	client.On("FetchLeague", mock.Anything, int64(39)).Return(usecase.LeagueSnapshot{
		ID:      39,
		Name:    "Premier League",
		Seasons: []usecase.SeasonSnapshot{{Year: 2025, Current: true}},
	}, nil).Once()

	cfg := config.Config{
		ReferenceTimezone: time.UTC,
		WorkerConcurrency: 2,
		LivePollInterval:  time.Second,
		LineupLead:        time.Hour,
	}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC))

	w, err := NewWorker(context.Background(), cfg, logging.NewNop(), Options{Client: client, Clock: clock})
	if err != nil {
		t.Fatalf("new worker: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.StartScheduler(ctx)

	got, err := w.Reconciler.ReconcileLeague(ctx, 39)
	if err != nil {
		t.Fatalf("reconcile league: %v", err)
	}
	if got.CurrentSeason == nil || *got.CurrentSeason != 2025 {
		t.Fatalf("unexpected current season: %v", got.CurrentSeason)
	}

	if err := w.Jobs.AddFixtureJobs(ctx, 1001); !errors.Is(err, usecase.ErrPreconditionMissing) {
		t.Fatalf("expected precondition error for uncached fixture, got %v", err)
	}
	if w.Scheduler.Pending() != 0 {
		t.Fatalf("expected no pending jobs, got %d", w.Scheduler.Pending())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close worker: %v", err)
	}
}
