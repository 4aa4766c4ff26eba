package usecase_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	"github.com/riskibarqy/football-sync/internal/domain/player"
	"github.com/riskibarqy/football-sync/internal/domain/team"
	"github.com/riskibarqy/football-sync/internal/infrastructure/repository/memory"
	usecasemock "github.com/riskibarqy/football-sync/internal/mocks/usecase"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/riskibarqy/football-sync/internal/usecase"
	"github.com/stretchr/testify/require"
)

const (
	premierLeague = int64(39)
	laLiga        = int64(140)
	homeTeam      = int64(42)
	awayTeam      = int64(49)
	liveFixture   = int64(1035037)
	sakaID        = int64(1460)
)

var kickoff = time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)

type harness struct {
	ctx        context.Context
	store      *memory.Store
	client     *usecasemock.SnapshotClient
	clock      *clockwork.FakeClock
	reconciler *usecase.GraphReconciler
	live       *usecase.LiveEventSynchronizer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore()
	client := usecasemock.NewSnapshotClient(t)
	clock := clockwork.NewFakeClockAt(kickoff.Add(-2 * time.Hour))
	logger := logging.NewNop()

	return &harness{
		ctx:        context.Background(),
		store:      store,
		client:     client,
		clock:      clock,
		reconciler: usecase.NewGraphReconciler(client, store, store.CacheLog(), clock, usecase.GraphReconcilerConfig{ReferenceZone: time.UTC}, logger),
		live:       usecase.NewLiveEventSynchronizer(store, store.CacheLog(), clock, logger),
	}
}

func (h *harness) repos() usecase.Repositories {
	return h.store.Repositories()
}

func (h *harness) seedLeague(t *testing.T, id int64, season int) {
	t.Helper()
	require.NoError(t, h.repos().Leagues.Upsert(h.ctx, league.League{ID: id, Name: "League " + strconv.FormatInt(id, 10), CurrentSeason: &season}))
}

func (h *harness) seedTeam(t *testing.T, id int64, leagues ...int64) {
	t.Helper()
	require.NoError(t, h.repos().Teams.Upsert(h.ctx, team.Team{ID: id, Name: "Team " + strconv.FormatInt(id, 10)}))
	for _, leagueID := range leagues {
		require.NoError(t, h.repos().Teams.LinkLeague(h.ctx, leagueID, id))
	}
}

func (h *harness) seedPlayer(t *testing.T, item player.Player, teams ...int64) {
	t.Helper()
	require.NoError(t, h.repos().Players.Upsert(h.ctx, item))
	for _, teamID := range teams {
		require.NoError(t, h.repos().Players.LinkTeam(h.ctx, teamID, item.ID))
	}
}

// seedFixture stores a league, both teams, a registered player and one fixture.
func (h *harness) seedFixture(t *testing.T) {
	t.Helper()
	h.seedLeague(t, premierLeague, 2025)
	h.seedTeam(t, homeTeam, premierLeague)
	h.seedTeam(t, awayTeam, premierLeague)
	h.seedPlayer(t, player.Player{ID: sakaID, Name: "B. Saka"}, homeTeam)
	require.NoError(t, h.repos().Fixtures.Upsert(h.ctx, fixture.Fixture{
		ID:         liveFixture,
		LeagueID:   premierLeague,
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		Timezone:   "UTC",
		KickoffAt:  kickoff,
		Timestamp:  kickoff.Unix(),
	}))
}

func liveSnapshot(events ...usecase.EventSnapshot) usecase.LiveFixtureSnapshot {
	return usecase.LiveFixtureSnapshot{
		Fixture: usecase.FixtureSnapshot{
			ID:         liveFixture,
			LeagueID:   premierLeague,
			HomeTeamID: homeTeam,
			AwayTeamID: awayTeam,
			Timezone:   "UTC",
			Date:       usecase.Present(kickoff),
			Timestamp:  kickoff.Unix(),
			Status:     usecase.StatusSnapshot{Long: "First Half", Short: "1H", Elapsed: usecase.Present(23)},
			Goals:      usecase.GoalsSnapshot{Home: usecase.Present(1), Away: usecase.Present(0)},
		},
		Events: usecase.Present(events),
	}
}

func registered(id int64, name string) usecase.PersonSnapshot {
	return usecase.PersonSnapshot{ID: usecase.Present(id), Name: usecase.Present(name)}
}

func unregistered(name string) usecase.PersonSnapshot {
	return usecase.PersonSnapshot{Name: usecase.Present(name)}
}

func event(elapsed int, teamID int64, typ, detail string, who, assist usecase.PersonSnapshot) usecase.EventSnapshot {
	return usecase.EventSnapshot{
		Elapsed: usecase.Present(elapsed),
		TeamID:  usecase.Present(teamID),
		Player:  who,
		Assist:  assist,
		Type:    usecase.Present(typ),
		Detail:  usecase.Present(detail),
	}
}
