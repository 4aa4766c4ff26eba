package usecase_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/match"
	usecasemock "github.com/riskibarqy/football-sync/internal/mocks/usecase"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/riskibarqy/football-sync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (h *harness) jobs(scheduler usecase.JobScheduler) *usecase.FixtureJobService {
	return usecase.NewFixtureJobService(
		h.client,
		h.store,
		h.reconciler,
		h.live,
		scheduler,
		h.clock,
		usecase.FixtureJobConfig{Concurrency: 3, LineupLead: time.Hour},
		logging.NewNop(),
	)
}

func TestFixtureJobService_AddFixtureJobs(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)

	scheduler := usecasemock.NewJobScheduler(t)
	scheduler.On("Schedule", mock.Anything, mock.MatchedBy(func(job usecase.FixtureJob) bool {
		return job.FixtureID == liveFixture &&
			job.LiveAt.Equal(kickoff) &&
			job.LineupAt.Equal(kickoff.Add(-time.Hour))
	})).Return(nil).Once()

	require.NoError(t, h.jobs(scheduler).AddFixtureJobs(h.ctx, liveFixture))

	item, _, err := h.repos().Fixtures.GetByID(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.True(t, item.Available)
	assert.Empty(t, h.events(t), "leftover live data is cleared")
}

func TestFixtureJobService_AddFixtureJobs_AfterKickoffSkipsLineupJob(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	h.clock.Advance(3 * time.Hour)

	scheduler := usecasemock.NewJobScheduler(t)
	scheduler.On("Schedule", mock.Anything, mock.MatchedBy(func(job usecase.FixtureJob) bool {
		return job.LineupAt.IsZero() && job.LiveAt.Equal(kickoff)
	})).Return(nil).Once()

	require.NoError(t, h.jobs(scheduler).AddFixtureJobs(h.ctx, liveFixture))
}

func TestFixtureJobService_AddFixtureJobs_SchedulerFailureKeepsEvents(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)

	scheduler := usecasemock.NewJobScheduler(t)
	scheduler.On("Schedule", mock.Anything, mock.Anything).Return(errors.New("queue down")).Once()

	require.Error(t, h.jobs(scheduler).AddFixtureJobs(h.ctx, liveFixture))

	item, _, err := h.repos().Fixtures.GetByID(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.False(t, item.Available)
	assert.Len(t, h.events(t), 2)
}

func TestFixtureJobService_ResumeFixtureJobs(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	require.NoError(t, h.repos().Fixtures.SetAvailable(h.ctx, liveFixture, true))
	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)

	scheduler := usecasemock.NewJobScheduler(t)
	scheduler.On("Scheduled", liveFixture).Return(false).Once()
	scheduler.On("Schedule", mock.Anything, mock.MatchedBy(func(job usecase.FixtureJob) bool {
		return job.FixtureID == liveFixture && job.LiveAt.Equal(kickoff)
	})).Return(nil).Once()

	resumed, err := h.jobs(scheduler).ResumeFixtureJobs(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resumed)
	assert.Len(t, h.events(t), 2, "resuming keeps the event log")
}

func TestFixtureJobService_ResumeFixtureJobs_SkipsScheduledAndFinished(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	require.NoError(t, h.repos().Fixtures.SetAvailable(h.ctx, liveFixture, true))

	scheduler := usecasemock.NewJobScheduler(t)
	scheduler.On("Scheduled", liveFixture).Return(true).Once()
	resumed, err := h.jobs(scheduler).ResumeFixtureJobs(h.ctx)
	require.NoError(t, err)
	assert.Zero(t, resumed)

	h.clock.Advance(3 * time.Hour)
	require.NoError(t, h.repos().Fixtures.UpsertLiveStatus(h.ctx, fixture.LiveStatus{
		FixtureID:   liveFixture,
		LongStatus:  "Match Finished",
		ShortStatus: "FT",
	}))
	scheduler.On("Scheduled", liveFixture).Return(false).Once()
	resumed, err = h.jobs(scheduler).ResumeFixtureJobs(h.ctx)
	require.NoError(t, err)
	assert.Zero(t, resumed)
}

func TestFixtureJobService_AddFixtureJobs_UncachedFixture(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	err := h.jobs(nil).AddFixtureJobs(h.ctx, liveFixture)
	require.ErrorIs(t, err, usecase.ErrPreconditionMissing)
}

func TestFixtureJobService_RemoveFixtureJobs(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	require.NoError(t, h.repos().Fixtures.SetAvailable(h.ctx, liveFixture, true))

	scheduler := usecasemock.NewJobScheduler(t)
	scheduler.On("Cancel", mock.Anything, liveFixture).Return(nil).Once()

	require.NoError(t, h.jobs(scheduler).RemoveFixtureJobs(h.ctx, liveFixture))

	item, _, err := h.repos().Fixtures.GetByID(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.False(t, item.Available)
}

func TestFixtureJobService_RemoveFixtureJobs_SchedulerFailureKeepsAvailability(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	require.NoError(t, h.repos().Fixtures.SetAvailable(h.ctx, liveFixture, true))

	scheduler := usecasemock.NewJobScheduler(t)
	scheduler.On("Cancel", mock.Anything, liveFixture).Return(errors.New("queue down")).Once()

	require.Error(t, h.jobs(scheduler).RemoveFixtureJobs(h.ctx, liveFixture))

	item, _, err := h.repos().Fixtures.GetByID(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.True(t, item.Available)
}

func TestFixtureJobService_PollLiveFixture_Finished(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	snap := liveSnapshot(openingEvents()...)
	snap.Fixture.Status = usecase.StatusSnapshot{Long: "Match Finished", Short: "FT", Elapsed: usecase.Present(90)}
	h.client.On("FetchLiveFixture", mock.Anything, liveFixture).Return(snap, nil).Once()

	finished, err := h.jobs(nil).PollLiveFixture(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.True(t, finished)
	assert.Len(t, h.events(t), 2)
}

func TestFixtureJobService_PollLiveFixture_RepeatConverges(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	snap := liveSnapshot(openingEvents()...)
	snap.Fixture.Status = usecase.StatusSnapshot{Long: "Second Half", Short: "2H", Elapsed: usecase.Present(60)}
	h.client.On("FetchLiveFixture", mock.Anything, liveFixture).Return(snap, nil).Twice()

	jobs := h.jobs(nil)
	_, err := jobs.PollLiveFixture(h.ctx, liveFixture)
	require.NoError(t, err)
	events := h.events(t)
	status, found, err := h.repos().Fixtures.GetLiveStatus(h.ctx, liveFixture)
	require.NoError(t, err)
	require.True(t, found)

	_, err = jobs.PollLiveFixture(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.Equal(t, events, h.events(t), "a repeated poll keeps the event rows")
	again, _, err := h.repos().Fixtures.GetLiveStatus(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.Equal(t, status, again)
	assert.Equal(t, "2H", again.ShortStatus)
}

func TestFixtureJobService_PollLiveFixture_RebuildsBrokenTimeline(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	_, err := h.repos().Matches.CreateEvent(h.ctx, match.Event{FixtureID: liveFixture, Sequence: 3, Type: match.EventVar})
	require.NoError(t, err)

	h.client.On("FetchLiveFixture", mock.Anything, liveFixture).Return(liveSnapshot(openingEvents()...), nil).Once()

	finished, err := h.jobs(nil).PollLiveFixture(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.False(t, finished)

	events := h.events(t)
	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].Sequence)
	assert.Equal(t, 1, events[1].Sequence)
}

func TestFixtureJobService_PollLiveFixtures_ReportsPerFixture(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	h.client.On("FetchLiveFixture", mock.Anything, liveFixture).Return(liveSnapshot(openingEvents()...), nil).Once()
	h.client.On("FetchLiveFixture", mock.Anything, int64(5)).Return(usecase.LiveFixtureSnapshot{
		Fixture: usecase.FixtureSnapshot{ID: 5, HomeTeamID: homeTeam, AwayTeamID: awayTeam},
	}, nil).Once()

	results, err := h.jobs(nil).PollLiveFixtures(h.ctx, []int64{liveFixture, 5})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, liveFixture, results[0].FixtureID)
	assert.ErrorIs(t, results[1].Err, usecase.ErrPreconditionMissing)
}

func TestFixtureJobService_PollLiveFixtures_SerializesSameFixture(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	var inFlight, peak atomic.Int32
	h.client.On("FetchLiveFixture", mock.Anything, liveFixture).
		Return(liveSnapshot(openingEvents()...), nil).
		Run(func(mock.Arguments) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
		}).
		Times(3)

	results, err := h.jobs(nil).PollLiveFixtures(h.ctx, []int64{liveFixture, liveFixture, liveFixture})
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, r.Err)
	}
	assert.Equal(t, int32(1), peak.Load())
	assert.Len(t, h.events(t), 2)
}

func TestFixtureJobService_PollAvailableFixtures_WaitsForLineupWindow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)
	require.NoError(t, h.repos().Fixtures.SetAvailable(h.ctx, liveFixture, true))
	jobs := h.jobs(nil)

	results, err := jobs.PollAvailableFixtures(h.ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	h.clock.Advance(90 * time.Minute)
	h.client.On("FetchLiveFixture", mock.Anything, liveFixture).Return(liveSnapshot(), nil).Once()

	results, err = jobs.PollAvailableFixtures(h.ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}

func TestFixtureJobService_RefreshLeagues(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.client.On("FetchLeague", mock.Anything, premierLeague).Return(usecase.LeagueSnapshot{
		ID:      premierLeague,
		Name:    "Premier League",
		Seasons: []usecase.SeasonSnapshot{{Year: 2025, Current: true}},
	}, nil).Once()
	h.client.On("FetchTeamsOfLeague", mock.Anything, premierLeague, 2025).Return([]usecase.TeamSnapshot{
		{ID: homeTeam, Name: "Arsenal"},
		{ID: awayTeam, Name: "Chelsea"},
	}, nil).Once()
	h.client.On("FetchFixturesOfLeague", mock.Anything, premierLeague, 2025).Return([]usecase.FixtureSnapshot{
		{ID: liveFixture, LeagueID: premierLeague, HomeTeamID: homeTeam, AwayTeamID: awayTeam, Timezone: "UTC", Date: usecase.Present(kickoff), Timestamp: kickoff.Unix()},
	}, nil).Once()
	h.client.On("FetchLeague", mock.Anything, laLiga).Return(usecase.LeagueSnapshot{}, errors.New("rate limited")).Once()

	results := h.jobs(nil).RefreshLeagues(h.ctx, []int64{laLiga, premierLeague})
	require.Len(t, results, 2)

	assert.Equal(t, premierLeague, results[0].LeagueID)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 2, results[0].Teams)
	assert.Equal(t, 1, results[0].Fixtures)

	assert.Equal(t, laLiga, results[1].LeagueID)
	assert.Error(t, results[1].Err)

	_, found, err := h.repos().Fixtures.GetByID(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestFixtureJobService_RefreshRosterAndTeamLeagues(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedLeague(t, premierLeague, 2025)
	h.seedTeam(t, homeTeam, premierLeague)
	h.client.On("FetchRoster", mock.Anything, homeTeam).Return([]usecase.PlayerSnapshot{
		{ID: sakaID, Name: "B. Saka"},
		{ID: 1461, Name: "M. Odegaard"},
	}, nil).Once()
	h.client.On("FetchCurrentLeaguesOfTeam", mock.Anything, homeTeam).Return([]usecase.LeagueSnapshot{
		{ID: premierLeague, Name: "League 39"},
	}, nil).Once()

	svc := h.jobs(nil)
	count, err := svc.RefreshRoster(h.ctx, homeTeam)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.RefreshCurrentLeaguesOfTeam(h.ctx, homeTeam))
	leagues, err := h.repos().Teams.ListLeagueIDs(h.ctx, homeTeam)
	require.NoError(t, err)
	assert.Equal(t, []int64{premierLeague}, leagues)
}
