package usecase_test

import (
	"testing"

	"github.com/riskibarqy/football-sync/internal/domain/match"
	"github.com/riskibarqy/football-sync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) events(t *testing.T) []match.Event {
	t.Helper()
	items, err := h.repos().Matches.ListEventsByFixture(h.ctx, liveFixture)
	require.NoError(t, err)
	return items
}

func (h *harness) matchPlayers(t *testing.T) []match.Player {
	t.Helper()
	items, err := h.repos().Matches.ListPlayersByFixture(h.ctx, liveFixture)
	require.NoError(t, err)
	return items
}

func (h *harness) matchPlayer(t *testing.T, id *int64) match.Player {
	t.Helper()
	require.NotNil(t, id)
	item, found, err := h.repos().Matches.GetPlayer(h.ctx, *id)
	require.NoError(t, err)
	require.True(t, found)
	return item
}

func openingEvents() []usecase.EventSnapshot {
	return []usecase.EventSnapshot{
		event(10, homeTeam, "Goal", "Normal Goal", registered(sakaID, "B. Saka"), unregistered("Trialist")),
		event(20, awayTeam, "Card", "Yellow Card", unregistered("Stranger"), usecase.PersonSnapshot{}),
	}
}

func TestLiveEventSynchronizer_AppendAndIdempotence(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	result, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	events := h.events(t)
	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].Sequence)
	assert.Equal(t, match.EventGoal, events[0].Type)
	assert.Equal(t, 1, events[1].Sequence)

	scorer := h.matchPlayer(t, events[0].PlayerRefID)
	require.NotNil(t, scorer.PlayerID)
	assert.Equal(t, sakaID, *scorer.PlayerID)
	assert.True(t, scorer.Disposable())
	assert.Equal(t, "Trialist", h.matchPlayer(t, events[0].AssistRefID).UnregisteredName)
	assert.Nil(t, events[1].AssistRefID)
	assert.Len(t, h.matchPlayers(t), 3)

	writes := h.store.Writes()
	result, err = h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Unchanged)
	assert.Equal(t, writes, h.store.Writes(), "repeated poll must not write")
}

func TestLiveEventSynchronizer_ShrinkDeletesOrphanedDisposable(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)

	result, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()[:1]...))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)

	require.Len(t, h.events(t), 1)
	for _, p := range h.matchPlayers(t) {
		assert.NotEqual(t, "Stranger", p.UnregisteredName)
	}
	assert.Len(t, h.matchPlayers(t), 2)
}

func TestLiveEventSynchronizer_UpdateInPlaceReleasesReplacedPlayer(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)
	before := h.events(t)

	changed := openingEvents()
	changed[0] = event(11, homeTeam, "Goal", "Normal Goal", unregistered("G. Jesus"), unregistered("Trialist"))

	result, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(changed...))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Unchanged)

	after := h.events(t)
	require.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID, "updated in place")
	assert.Equal(t, 11, after[0].Elapsed)
	assert.Equal(t, "G. Jesus", h.matchPlayer(t, after[0].PlayerRefID).UnregisteredName)
	assert.Equal(t, *before[0].AssistRefID, *after[0].AssistRefID)

	_, found, err := h.repos().Matches.GetPlayer(h.ctx, *before[0].PlayerRefID)
	require.NoError(t, err)
	assert.False(t, found, "disposable scorer is no longer referenced")
}

func TestLiveEventSynchronizer_ExtraTimeAndCaseInsensitiveIdentity(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)

	same := openingEvents()
	same[0].Extra = usecase.Present(0)
	same[0].Type = usecase.Present("GOAL")
	same[0].Detail = usecase.Present("normal goal")

	writes := h.store.Writes()
	result, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(same...))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Unchanged)
	assert.Equal(t, writes, h.store.Writes())
}

func TestLiveEventSynchronizer_ReusesUnregisteredNameAcrossEvents(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	snap := liveSnapshot(
		event(30, awayTeam, "Card", "Yellow Card", unregistered("Stranger"), usecase.PersonSnapshot{}),
		event(60, awayTeam, "Card", "Red Card", unregistered("Stranger"), usecase.PersonSnapshot{}),
	)
	_, err := h.live.SyncLiveEvent(h.ctx, snap)
	require.NoError(t, err)

	events := h.events(t)
	require.Len(t, events, 2)
	assert.Equal(t, *events[0].PlayerRefID, *events[1].PlayerRefID)
	assert.Len(t, h.matchPlayers(t), 1)
}

func TestLiveEventSynchronizer_UnresolvableEventBecomesPlaceholder(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	snap := liveSnapshot(
		event(5, homeTeam, "Injury", "", unregistered("Someone"), usecase.PersonSnapshot{}),
		event(7, 999, "Goal", "Normal Goal", unregistered("Someone"), usecase.PersonSnapshot{}),
		event(9, homeTeam, "subst", "Substitution 1", registered(sakaID, "B. Saka"), unregistered("Bench")),
	)
	result, err := h.live.SyncLiveEvent(h.ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 2, result.Placeholders)

	events := h.events(t)
	require.Len(t, events, 3)
	for _, e := range events[:2] {
		assert.Equal(t, match.EventUnknown, e.Type)
		assert.Equal(t, match.PlaceholderMarker, e.Detail)
		require.NotNil(t, e.Comments)
		assert.Equal(t, match.PlaceholderMarker, *e.Comments)
		assert.Nil(t, e.TeamID)
		assert.Nil(t, e.PlayerRefID)
	}
	assert.Equal(t, match.EventSubst, events[2].Type)

	writes := h.store.Writes()
	_, err = h.live.SyncLiveEvent(h.ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, writes, h.store.Writes(), "placeholders are idempotent")
}

func TestLiveEventSynchronizer_UncachedPlayerFallsBackToName(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	result, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(
		event(40, awayTeam, "Goal", "Normal Goal", registered(4242, "New Signing"), usecase.PersonSnapshot{}),
	))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Anomalies)

	events := h.events(t)
	require.Len(t, events, 1)
	scorer := h.matchPlayer(t, events[0].PlayerRefID)
	assert.Nil(t, scorer.PlayerID)
	assert.Equal(t, "New Signing", scorer.UnregisteredName)
}

func TestLiveEventSynchronizer_AbsentEventsKeepTimeline(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)

	snap := liveSnapshot()
	snap.Events = usecase.Absent[[]usecase.EventSnapshot]()
	result, err := h.live.SyncLiveEvent(h.ctx, snap)
	require.NoError(t, err)
	assert.True(t, result.EventsSkipped)
	assert.Len(t, h.events(t), 2)

	result, err = h.live.SyncLiveEvent(h.ctx, liveSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Deleted)
	assert.Empty(t, h.events(t))
	assert.Empty(t, h.matchPlayers(t))
}

func TestLiveEventSynchronizer_Preconditions(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.ErrorIs(t, err, usecase.ErrPreconditionMissing)

	h.seedFixture(t)
	snap := liveSnapshot(openingEvents()...)
	snap.Fixture.AwayTeamID = 999
	_, err = h.live.SyncLiveEvent(h.ctx, snap)
	require.ErrorIs(t, err, usecase.ErrReferenceNotFound)
}

func TestLiveEventSynchronizer_IntegrityViolationAndReplay(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	for _, seq := range []int{0, 2} {
		_, err := h.repos().Matches.CreateEvent(h.ctx, match.Event{FixtureID: liveFixture, Sequence: seq, Elapsed: seq, Type: match.EventVar})
		require.NoError(t, err)
	}

	snap := liveSnapshot(openingEvents()...)
	_, err := h.live.SyncLiveEvent(h.ctx, snap)
	require.ErrorIs(t, err, usecase.ErrIntegrityViolation)

	require.NoError(t, h.live.ResolveIntegrityError(h.ctx, snap))

	events := h.events(t)
	require.Len(t, events, 2)
	for i, e := range events {
		assert.Equal(t, i, e.Sequence)
	}
	assert.Equal(t, match.EventGoal, events[0].Type)
}

func TestLiveEventSynchronizer_UpdateLiveStatus(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	snap := liveSnapshot()
	finished, err := h.live.UpdateLiveStatus(h.ctx, snap)
	require.NoError(t, err)
	assert.False(t, finished)

	status, found, err := h.repos().Fixtures.GetLiveStatus(h.ctx, liveFixture)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "1H", status.ShortStatus)
	assert.Equal(t, 1, status.HomeScore)
	require.NotNil(t, status.Elapsed)
	assert.Equal(t, 23, *status.Elapsed)

	snap.Fixture.Status = usecase.StatusSnapshot{Long: "Match Finished", Short: "FT", Elapsed: usecase.Present(90)}
	finished, err = h.live.UpdateLiveStatus(h.ctx, snap)
	require.NoError(t, err)
	assert.True(t, finished)
}

func TestLiveEventSynchronizer_SaveLineupsAdoptsDisposablePlayers(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(
		event(3, homeTeam, "Card", "Yellow Card", unregistered("Trialist"), usecase.PersonSnapshot{}),
	))
	require.NoError(t, err)
	trialist := h.events(t)[0].PlayerRefID

	snap := liveSnapshot()
	home := usecase.LineupSnapshot{
		TeamID:    homeTeam,
		Formation: "4-3-3",
		StartXI: []usecase.LineupPlayerSnapshot{
			{Person: unregistered("Trialist"), Position: "M", Grid: "3:2"},
			{Person: registered(sakaID, "B. Saka"), Number: usecase.Present(7), Position: "F", Grid: "4:3"},
		},
	}
	away := usecase.LineupSnapshot{
		TeamID:      awayTeam,
		Formation:   "4-4-2",
		Substitutes: []usecase.LineupPlayerSnapshot{{Person: registered(777, "Ghost"), Position: "D"}},
	}

	snap.Lineups = usecase.Present([]usecase.LineupSnapshot{home})
	saved, err := h.live.SaveLineups(h.ctx, snap)
	require.NoError(t, err)
	assert.False(t, saved, "one lineup is not trusted")

	snap.Lineups = usecase.Present([]usecase.LineupSnapshot{home, away})
	saved, err = h.live.SaveLineups(h.ctx, snap)
	require.NoError(t, err)
	assert.True(t, saved)

	players := h.matchPlayers(t)
	require.Len(t, players, 3)
	for _, p := range players {
		assert.False(t, p.Disposable())
	}

	adopted := h.matchPlayer(t, trialist)
	assert.Equal(t, "3:2", adopted.Grid)

	var ghost match.Player
	for _, p := range players {
		if p.TeamID == awayTeam {
			ghost = p
		}
	}
	assert.Nil(t, ghost.PlayerID)
	assert.Equal(t, "Ghost", ghost.UnregisteredName)
	assert.True(t, ghost.Substitute)

	writes := h.store.Writes()
	_, err = h.live.SaveLineups(h.ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, writes, h.store.Writes())

	// Later events bind to the lineup player instead of a new disposable one.
	_, err = h.live.SyncLiveEvent(h.ctx, liveSnapshot(
		event(3, homeTeam, "Card", "Yellow Card", unregistered("Trialist"), usecase.PersonSnapshot{}),
		event(50, homeTeam, "Goal", "Normal Goal", registered(sakaID, "B. Saka"), usecase.PersonSnapshot{}),
	))
	require.NoError(t, err)
	assert.Len(t, h.matchPlayers(t), 3)
}

func TestLiveEventSynchronizer_ClearEvents(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.seedFixture(t)

	_, err := h.live.SyncLiveEvent(h.ctx, liveSnapshot(openingEvents()...))
	require.NoError(t, err)

	deleted, err := h.live.ClearEvents(h.ctx, liveFixture)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Empty(t, h.events(t))
	assert.Empty(t, h.matchPlayers(t))
}
