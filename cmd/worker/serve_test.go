package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-sync/internal/app"
	"github.com/riskibarqy/football-sync/internal/config"
	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	"github.com/riskibarqy/football-sync/internal/domain/team"
	usecasemock "github.com/riskibarqy/football-sync/internal/mocks/usecase"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/riskibarqy/football-sync/internal/usecase"
	"github.com/stretchr/testify/mock"
)

func TestServe_SchedulesAvailableFixtures(t *testing.T) {
	kickoff := time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(kickoff.Add(10 * time.Minute))

	polled := make(chan int64, 1)
	client := usecasemock.NewSnapshotClient(t)
	client.On("FetchLiveFixture", mock.Anything, int64(1035037)).
		Run(func(args mock.Arguments) { polled <- args.Get(1).(int64) }).
		Return(usecase.LiveFixtureSnapshot{}, errors.New("provider down")).
		Once()

	cfg := config.Config{
		ReferenceTimezone: time.UTC,
		WorkerConcurrency: 2,
		SyncInterval:      time.Hour,
		LivePollInterval:  time.Hour,
		LineupLead:        time.Hour,
	}
	w, err := app.NewWorker(context.Background(), cfg, logging.NewNop(), app.Options{Client: client, Clock: clock})
	if err != nil {
		t.Fatalf("new worker: %v", err)
	}

	ctx := context.Background()
	repos := w.Store.Repositories()
	if err := repos.Leagues.Upsert(ctx, league.League{ID: 39, Name: "Premier League"}); err != nil {
		t.Fatalf("seed league: %v", err)
	}
	for _, id := range []int64{42, 50} {
		if err := repos.Teams.Upsert(ctx, team.Team{ID: id, Name: "Team"}); err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}
	if err := repos.Fixtures.Upsert(ctx, fixture.Fixture{
		ID:         1035037,
		LeagueID:   39,
		HomeTeamID: 42,
		AwayTeamID: 50,
		Timezone:   "UTC",
		KickoffAt:  kickoff,
		Timestamp:  kickoff.Unix(),
		Available:  true,
	}); err != nil {
		t.Fatalf("seed fixture: %v", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.StartScheduler(runCtx)

	done := make(chan error, 1)
	go func() { done <- serve(runCtx, w, logging.NewNop()) }()

	select {
	case id := <-polled:
		if id != 1035037 {
			t.Fatalf("unexpected fixture polled: %d", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not poll the available fixture")
	}
	if !w.Scheduler.Scheduled(1035037) {
		t.Fatal("expected the fixture to stay scheduled after a failed poll")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("serve: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close worker: %v", err)
	}
}
