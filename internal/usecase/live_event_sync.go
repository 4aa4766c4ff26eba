package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/match"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// LiveSyncResult summarizes one poll applied to a fixture timeline.
type LiveSyncResult struct {
	FixtureID    int64
	Deleted      int
	Updated      int
	Created      int
	Unchanged    int
	Placeholders int
	Anomalies    int
	// EventsSkipped is set when the snapshot carried no events array at all.
	EventsSkipped bool
}

// LiveEventSynchronizer keeps a fixture's event log, lineups and live status in
// line with repeated polls. Callers serialize calls per fixture.
type LiveEventSynchronizer struct {
	store  Store
	cache  cacheRecorder
	logger *logging.Logger
}

func NewLiveEventSynchronizer(store Store, cacheLog cachelog.Repository, clock clockwork.Clock, logger *logging.Logger) *LiveEventSynchronizer {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger = logger.Named("live")
	return &LiveEventSynchronizer{
		store:  store,
		cache:  cacheRecorder{repo: cacheLog, clock: clock, logger: logger},
		logger: logger,
	}
}

// SyncLiveEvent applies the snapshot's event array: trailing stored events the
// provider retracted are deleted, events at shared positions are updated in
// place when they differ, and new positions are appended.
func (s *LiveEventSynchronizer) SyncLiveEvent(ctx context.Context, snap LiveFixtureSnapshot) (result LiveSyncResult, err error) {
	fixtureID := snap.Fixture.ID
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveEventSynchronizer.SyncLiveEvent", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := checkLiveReferences(ctx, repos, snap); err != nil {
			return err
		}
		var txErr error
		result, txErr = s.syncEvents(ctx, repos, snap)
		return txErr
	})
	if err != nil {
		return LiveSyncResult{}, fmt.Errorf("sync live events of fixture=%d: %w", fixtureID, err)
	}

	s.cache.record(ctx, cachelog.TypeLiveFixture, map[string]any{"fixtureId": fixtureID})
	s.logger.InfoContext(ctx, "live events synced",
		"fixture_id", fixtureID,
		"deleted", result.Deleted,
		"updated", result.Updated,
		"created", result.Created,
		"placeholders", result.Placeholders,
		"anomalies", result.Anomalies,
	)
	return result, nil
}

// ResolveIntegrityError wipes the stored timeline of the fixture and replays
// the snapshot into it within one transaction.
func (s *LiveEventSynchronizer) ResolveIntegrityError(ctx context.Context, snap LiveFixtureSnapshot) (err error) {
	fixtureID := snap.Fixture.ID
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveEventSynchronizer.ResolveIntegrityError", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	var wiped int
	var result LiveSyncResult
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := checkLiveReferences(ctx, repos, snap); err != nil {
			return err
		}
		var txErr error
		if wiped, txErr = s.wipeEvents(ctx, repos, fixtureID); txErr != nil {
			return txErr
		}
		result, txErr = s.syncEvents(ctx, repos, snap)
		return txErr
	})
	if err != nil {
		return fmt.Errorf("resolve integrity of fixture=%d: %w", fixtureID, err)
	}

	s.logger.WarnContext(ctx, "event log rebuilt", "fixture_id", fixtureID, "wiped", wiped, "created", result.Created)
	return nil
}

// ClearEvents deletes every stored event of a fixture and its orphaned
// disposable match players.
func (s *LiveEventSynchronizer) ClearEvents(ctx context.Context, fixtureID int64) (deleted int, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveEventSynchronizer.ClearEvents", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		var txErr error
		deleted, txErr = s.wipeEvents(ctx, repos, fixtureID)
		return txErr
	})
	if err != nil {
		return 0, fmt.Errorf("clear events of fixture=%d: %w", fixtureID, err)
	}
	return deleted, nil
}

// UpdateLiveStatus copies status and score into the fixture's live status and
// reports whether the fixture is finished.
func (s *LiveEventSynchronizer) UpdateLiveStatus(ctx context.Context, snap LiveFixtureSnapshot) (finished bool, err error) {
	fixtureID := snap.Fixture.ID
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveEventSynchronizer.UpdateLiveStatus", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	status := liveStatusFromSnapshot(fixtureID, snap.Fixture.Status, snap.Fixture.Goals)
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := cachedFixture(ctx, repos, fixtureID); err != nil {
			return err
		}
		_, err := saveLiveStatus(ctx, repos.Fixtures, status)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("update live status of fixture=%d: %w", fixtureID, err)
	}
	return fixture.IsFinishedStatus(status.ShortStatus), nil
}

func (s *LiveEventSynchronizer) syncEvents(ctx context.Context, repos Repositories, snap LiveFixtureSnapshot) (LiveSyncResult, error) {
	fixtureID := snap.Fixture.ID
	result := LiveSyncResult{FixtureID: fixtureID}

	incoming, ok := snap.Events.Get()
	if !ok {
		s.logger.WarnContext(ctx, "snapshot without events array, keeping stored timeline", "fixture_id", fixtureID)
		result.EventsSkipped = true
		return result, nil
	}

	stored, err := repos.Matches.ListEventsByFixture(ctx, fixtureID)
	if err != nil {
		return LiveSyncResult{}, fmt.Errorf("list events: %w", err)
	}
	for i, e := range stored {
		if e.Sequence != i {
			return LiveSyncResult{}, fmt.Errorf("%w: fixture=%d event id=%d has sequence %d at position %d", ErrIntegrityViolation, fixtureID, e.ID, e.Sequence, i)
		}
	}

	resolver, err := newPersonResolver(ctx, repos, fixtureID, s.logger)
	if err != nil {
		return LiveSyncResult{}, err
	}
	teams := map[int64]bool{snap.Fixture.HomeTeamID: true, snap.Fixture.AwayTeamID: true}

	// Shrink from the tail.
	for i := len(stored) - 1; i >= len(incoming); i-- {
		e := stored[i]
		if err := repos.Matches.DeleteEvent(ctx, e.ID); err != nil {
			return LiveSyncResult{}, fmt.Errorf("delete event sequence=%d: %w", e.Sequence, err)
		}
		if err := resolver.release(ctx, e.PlayerRefID, e.AssistRefID); err != nil {
			return LiveSyncResult{}, err
		}
		result.Deleted++
	}

	for i := 0; i < len(stored) && i < len(incoming); i++ {
		written, placeholder, err := s.updateEvent(ctx, repos, resolver, stored[i], incoming[i], teams)
		if err != nil {
			return LiveSyncResult{}, err
		}
		if placeholder {
			result.Placeholders++
		}
		if written {
			result.Updated++
		} else {
			result.Unchanged++
		}
	}

	for i := len(stored); i < len(incoming); i++ {
		placeholder, err := s.appendEvent(ctx, repos, resolver, fixtureID, i, incoming[i], teams)
		if err != nil {
			return LiveSyncResult{}, err
		}
		if placeholder {
			result.Placeholders++
		}
		result.Created++
	}

	result.Anomalies = resolver.anomalies
	return result, nil
}

func (s *LiveEventSynchronizer) updateEvent(
	ctx context.Context,
	repos Repositories,
	resolver *personResolver,
	current match.Event,
	incoming EventSnapshot,
	teams map[int64]bool,
) (written, placeholder bool, err error) {
	want, cerr := canonicalEvent(current.FixtureID, current.Sequence, incoming, teams)
	if cerr != nil {
		s.logPlaceholder(ctx, current.FixtureID, current.Sequence, cerr)
		want = placeholderTarget(current.FixtureID, current.Sequence)
	}

	storedPlayer := resolver.refOf(current.PlayerRefID)
	storedAssist := resolver.refOf(current.AssistRefID)
	if want.matches(current, storedPlayer, storedAssist) {
		return false, want.placeholder, nil
	}

	target := want.event
	target.ID = current.ID
	var created []int64
	if !want.placeholder {
		target.PlayerRefID, target.AssistRefID, created, err = s.resolvePersons(ctx, resolver, want, current, storedPlayer, storedAssist)
		if errors.Is(err, errEventUnresolvable) {
			s.logPlaceholder(ctx, current.FixtureID, current.Sequence, err)
			want = placeholderTarget(current.FixtureID, current.Sequence)
			target = want.event
			target.ID = current.ID
			err = nil
		}
		if err != nil {
			return false, false, err
		}
	}

	if !eventRowEqual(current, target) {
		if err := repos.Matches.UpdateEvent(ctx, target); err != nil {
			return false, false, fmt.Errorf("update event sequence=%d: %w", current.Sequence, err)
		}
		written = true
	}

	candidates := append([]*int64{current.PlayerRefID, current.AssistRefID}, idPtrs(created)...)
	if err := resolver.release(ctx, candidates...); err != nil {
		return false, false, err
	}
	return written, want.placeholder, nil
}

func (s *LiveEventSynchronizer) appendEvent(
	ctx context.Context,
	repos Repositories,
	resolver *personResolver,
	fixtureID int64,
	sequence int,
	incoming EventSnapshot,
	teams map[int64]bool,
) (placeholder bool, err error) {
	want, cerr := canonicalEvent(fixtureID, sequence, incoming, teams)
	if cerr != nil {
		s.logPlaceholder(ctx, fixtureID, sequence, cerr)
		want = placeholderTarget(fixtureID, sequence)
	}

	target := want.event
	var created []int64
	if !want.placeholder {
		target.PlayerRefID, target.AssistRefID, created, err = s.resolvePersons(ctx, resolver, want, match.Event{}, NoPerson(), NoPerson())
		if errors.Is(err, errEventUnresolvable) {
			s.logPlaceholder(ctx, fixtureID, sequence, err)
			want = placeholderTarget(fixtureID, sequence)
			target = want.event
			err = nil
		}
		if err != nil {
			return false, err
		}
	}

	if _, err := repos.Matches.CreateEvent(ctx, target); err != nil {
		return false, fmt.Errorf("create event sequence=%d: %w", sequence, err)
	}
	if err := resolver.release(ctx, idPtrs(created)...); err != nil {
		return false, err
	}
	return want.placeholder, nil
}

// resolvePersons keeps stored references whose identity and team did not
// change and resolves the others.
func (s *LiveEventSynchronizer) resolvePersons(
	ctx context.Context,
	resolver *personResolver,
	want eventTarget,
	current match.Event,
	storedPlayer, storedAssist PersonRef,
) (playerRef, assistRef *int64, created []int64, err error) {
	sameTeam := current.TeamID != nil && *current.TeamID == want.teamID

	rebind := func(ref, stored PersonRef, currentID *int64) (*int64, error) {
		if ref.Kind() == PersonNone {
			return nil, nil
		}
		if sameTeam && currentID != nil && ref.Equal(stored) {
			return currentID, nil
		}
		id, made, err := resolver.resolve(ctx, ref, want.teamID)
		created = append(created, made...)
		return id, err
	}

	if playerRef, err = rebind(want.player, storedPlayer, current.PlayerRefID); err != nil {
		return nil, nil, created, err
	}
	if assistRef, err = rebind(want.assist, storedAssist, current.AssistRefID); err != nil {
		return nil, nil, created, err
	}
	return playerRef, assistRef, created, nil
}

func (s *LiveEventSynchronizer) wipeEvents(ctx context.Context, repos Repositories, fixtureID int64) (int, error) {
	stored, err := repos.Matches.ListEventsByFixture(ctx, fixtureID)
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}
	resolver, err := newPersonResolver(ctx, repos, fixtureID, s.logger)
	if err != nil {
		return 0, err
	}
	for _, e := range stored {
		if err := repos.Matches.DeleteEvent(ctx, e.ID); err != nil {
			return 0, fmt.Errorf("delete event sequence=%d: %w", e.Sequence, err)
		}
	}
	for _, e := range stored {
		if err := resolver.release(ctx, e.PlayerRefID, e.AssistRefID); err != nil {
			return 0, err
		}
	}
	return len(stored), nil
}

func (s *LiveEventSynchronizer) logPlaceholder(ctx context.Context, fixtureID int64, sequence int, cause error) {
	s.logger.WarnContext(ctx, "event replaced by placeholder", "fixture_id", fixtureID, "sequence", sequence, "error", cause)
}

// eventTarget is the canonical form of a snapshot event before persons are
// bound to match players.
type eventTarget struct {
	event       match.Event
	teamID      int64
	player      PersonRef
	assist      PersonRef
	placeholder bool
}

func canonicalEvent(fixtureID int64, sequence int, e EventSnapshot, teams map[int64]bool) (eventTarget, error) {
	elapsed, ok := e.Elapsed.Get()
	if !ok {
		return eventTarget{}, fmt.Errorf("%w: event without elapsed time", ErrMalformedSnapshot)
	}
	rawType, ok := e.Type.Get()
	if !ok {
		return eventTarget{}, fmt.Errorf("%w: event without type", ErrMalformedSnapshot)
	}
	typ, err := match.ParseEventType(rawType)
	if err != nil {
		return eventTarget{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	teamID, ok := e.TeamID.Get()
	if !ok {
		return eventTarget{}, fmt.Errorf("%w: event without team", ErrMalformedSnapshot)
	}
	if !teams[teamID] {
		return eventTarget{}, fmt.Errorf("%w: event team=%d is not playing fixture=%d", ErrReferenceNotFound, teamID, fixtureID)
	}

	return eventTarget{
		event: match.Event{
			FixtureID: fixtureID,
			Sequence:  sequence,
			Elapsed:   elapsed,
			Extra:     e.Extra.Ptr(),
			TeamID:    &teamID,
			Type:      typ,
			Detail:    e.Detail.OrElse(""),
			Comments:  e.Comments.Ptr(),
		},
		teamID: teamID,
		player: e.Player.Ref(),
		assist: e.Assist.Ref(),
	}, nil
}

func placeholderTarget(fixtureID int64, sequence int) eventTarget {
	return eventTarget{event: match.Placeholder(fixtureID, sequence), placeholder: true}
}

// matches compares event identity: extra time treats null as zero, type and
// detail ignore case, persons compare through PersonRef.
func (t eventTarget) matches(current match.Event, storedPlayer, storedAssist PersonRef) bool {
	want := t.event
	return current.Elapsed == want.Elapsed &&
		current.ExtraMinutes() == want.ExtraMinutes() &&
		strings.EqualFold(string(current.Type), string(want.Type)) &&
		strings.EqualFold(current.Detail, want.Detail) &&
		stringPtrEqual(current.Comments, want.Comments) &&
		int64PtrEqual(current.TeamID, want.TeamID) &&
		storedPlayer.Equal(t.player) &&
		storedAssist.Equal(t.assist)
}

// eventRowEqual compares the persisted columns of two events.
func eventRowEqual(a, b match.Event) bool {
	return a.Elapsed == b.Elapsed &&
		intPtrEqual(a.Extra, b.Extra) &&
		a.Type == b.Type &&
		a.Detail == b.Detail &&
		stringPtrEqual(a.Comments, b.Comments) &&
		int64PtrEqual(a.TeamID, b.TeamID) &&
		int64PtrEqual(a.PlayerRefID, b.PlayerRefID) &&
		int64PtrEqual(a.AssistRefID, b.AssistRefID)
}

func idPtrs(ids []int64) []*int64 {
	out := make([]*int64, 0, len(ids))
	for i := range ids {
		out = append(out, &ids[i])
	}
	return out
}

func cachedFixture(ctx context.Context, repos Repositories, fixtureID int64) (fixture.Fixture, error) {
	if fixtureID <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id must be positive", ErrInvalidInput)
	}
	item, found, err := repos.Fixtures.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture=%d: %w", fixtureID, err)
	}
	if !found {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%d is not cached", ErrPreconditionMissing, fixtureID)
	}
	return item, nil
}

// checkLiveReferences requires the fixture to be cached and its league and
// teams to be stored.
func checkLiveReferences(ctx context.Context, repos Repositories, snap LiveFixtureSnapshot) error {
	stored, err := cachedFixture(ctx, repos, snap.Fixture.ID)
	if err != nil {
		return err
	}
	refs := snap.Fixture
	if refs.LeagueID == 0 {
		refs.LeagueID = stored.LeagueID
	}
	if refs.HomeTeamID == 0 || refs.AwayTeamID == 0 {
		return fmt.Errorf("%w: fixture=%d snapshot without home or away team", ErrMalformedSnapshot, refs.ID)
	}
	return checkFixtureReferences(ctx, repos, refs)
}
