package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/riskibarqy/football-sync/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// FixtureJob is what gets registered with a scheduler for one fixture.
// LineupAt is zero when the match has already kicked off.
type FixtureJob struct {
	FixtureID int64
	LineupAt  time.Time
	LiveAt    time.Time
}

// JobScheduler registers timed polling jobs. Timing is the scheduler's concern.
type JobScheduler interface {
	Schedule(ctx context.Context, job FixtureJob) error
	Cancel(ctx context.Context, fixtureID int64) error
	// Scheduled reports whether the fixture has a registered job.
	Scheduled(fixtureID int64) bool
}

type noopJobScheduler struct{}

func (noopJobScheduler) Schedule(context.Context, FixtureJob) error { return nil }
func (noopJobScheduler) Cancel(context.Context, int64) error        { return nil }
func (noopJobScheduler) Scheduled(int64) bool                       { return false }

func NewNoopJobScheduler() JobScheduler {
	return noopJobScheduler{}
}

type FixtureJobConfig struct {
	// Concurrency bounds parallel work across fixtures and leagues.
	Concurrency int
	// LineupLead is how long before kickoff lineups are expected.
	LineupLead time.Duration
}

type LivePollResult struct {
	FixtureID int64
	Finished  bool
	Err       error
}

type LeagueRefreshResult struct {
	LeagueID int64
	Teams    int
	Fixtures int
	Err      error
}

// FixtureJobService coordinates reconciliation runs. It owns the per-key
// locks: no two runs for the same fixture, league or team overlap.
type FixtureJobService struct {
	client     SnapshotClient
	store      Store
	reconciler *GraphReconciler
	live       *LiveEventSynchronizer
	scheduler  JobScheduler
	locks      *resilience.KeyedMutex
	cfg        FixtureJobConfig
	clock      clockwork.Clock
	logger     *logging.Logger
}

func NewFixtureJobService(
	client SnapshotClient,
	store Store,
	reconciler *GraphReconciler,
	live *LiveEventSynchronizer,
	scheduler JobScheduler,
	clock clockwork.Clock,
	cfg FixtureJobConfig,
	logger *logging.Logger,
) *FixtureJobService {
	if scheduler == nil {
		scheduler = NewNoopJobScheduler()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.LineupLead <= 0 {
		cfg.LineupLead = time.Hour
	}

	return &FixtureJobService{
		client:     client,
		store:      store,
		reconciler: reconciler,
		live:       live,
		scheduler:  scheduler,
		locks:      resilience.NewKeyedMutex(),
		cfg:        cfg,
		clock:      clock,
		logger:     logger.Named("jobs"),
	}
}

func fixtureKey(id int64) string { return "fixture:" + strconv.FormatInt(id, 10) }
func leagueKey(id int64) string  { return "league:" + strconv.FormatInt(id, 10) }
func teamKey(id int64) string    { return "team:" + strconv.FormatInt(id, 10) }

// AddFixtureJobs registers the fixture's jobs, marks it available and then
// clears its leftover live data. A failed clear rolls the registration back.
func (s *FixtureJobService) AddFixtureJobs(ctx context.Context, fixtureID int64) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureJobService.AddFixtureJobs", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	return s.locks.WithLock(ctx, fixtureKey(fixtureID), func(ctx context.Context) error {
		fixtures := s.store.Repositories().Fixtures
		item, err := cachedFixture(ctx, s.store.Repositories(), fixtureID)
		if err != nil {
			return err
		}

		job := s.jobFor(item)
		if err := s.scheduler.Schedule(ctx, job); err != nil {
			return fmt.Errorf("schedule jobs of fixture=%d: %w", fixtureID, err)
		}
		if err := fixtures.SetAvailable(ctx, fixtureID, true); err != nil {
			s.rollbackJobs(ctx, item)
			return fmt.Errorf("mark fixture=%d available: %w", fixtureID, err)
		}

		// Polls for this fixture wait on the lock, so none sees the old log.
		cleared, err := s.live.ClearEvents(ctx, fixtureID)
		if err != nil {
			s.rollbackJobs(ctx, item)
			if !item.Available {
				if undoErr := fixtures.SetAvailable(ctx, fixtureID, false); undoErr != nil {
					s.logger.ErrorContext(ctx, "restore fixture availability failed", "fixture_id", fixtureID, "error", undoErr)
				}
			}
			return err
		}

		s.logger.InfoContext(ctx, "fixture jobs added",
			"fixture_id", fixtureID,
			"kickoff_at", item.KickoffAt,
			"lineup_at", job.LineupAt,
			"cleared_events", cleared,
		)
		return nil
	})
}

func (s *FixtureJobService) jobFor(item fixture.Fixture) FixtureJob {
	job := FixtureJob{FixtureID: item.ID, LiveAt: item.KickoffAt}
	if s.clock.Now().Before(item.KickoffAt) {
		job.LineupAt = item.KickoffAt.Add(-s.cfg.LineupLead)
	}
	return job
}

// rollbackJobs cancels a registration made earlier in the same call. A fixture
// that was already available keeps a job.
func (s *FixtureJobService) rollbackJobs(ctx context.Context, item fixture.Fixture) {
	if item.Available {
		return
	}
	if err := s.scheduler.Cancel(ctx, item.ID); err != nil {
		s.logger.ErrorContext(ctx, "cancel fixture jobs after failed add", "fixture_id", item.ID, "error", err)
	}
}

// ResumeFixtureJobs registers jobs for available fixtures that are not finished
// and have no job yet. It covers fixtures marked available by another process
// and jobs lost on restart. Leftover events are kept.
func (s *FixtureJobService) ResumeFixtureJobs(ctx context.Context) (resumed int, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureJobService.ResumeFixtureJobs")
	defer func() { endSpan(span, err) }()

	repos := s.store.Repositories()
	items, err := repos.Fixtures.ListAvailable(ctx)
	if err != nil {
		return 0, fmt.Errorf("list available fixtures: %w", err)
	}

	now := s.clock.Now()
	for _, item := range items {
		if s.scheduler.Scheduled(item.ID) {
			continue
		}
		done, err := fixtureDone(ctx, repos, item, now)
		if err != nil {
			return resumed, err
		}
		if done {
			continue
		}
		err = s.locks.WithLock(ctx, fixtureKey(item.ID), func(ctx context.Context) error {
			return s.scheduler.Schedule(ctx, s.jobFor(item))
		})
		if err != nil {
			return resumed, fmt.Errorf("schedule jobs of fixture=%d: %w", item.ID, err)
		}
		resumed++
	}
	if resumed > 0 {
		s.logger.InfoContext(ctx, "fixture jobs resumed", "fixtures", resumed)
	}
	return resumed, nil
}

// fixtureDone reports whether a kicked off fixture already has a finished status.
func fixtureDone(ctx context.Context, repos Repositories, item fixture.Fixture, now time.Time) (bool, error) {
	status, found, err := repos.Fixtures.GetLiveStatus(ctx, item.ID)
	if err != nil {
		return false, fmt.Errorf("get live status of fixture=%d: %w", item.ID, err)
	}
	return found && fixture.IsFinishedStatus(status.ShortStatus) && now.After(item.KickoffAt), nil
}

// RemoveFixtureJobs cancels the fixture's jobs and marks it unavailable.
func (s *FixtureJobService) RemoveFixtureJobs(ctx context.Context, fixtureID int64) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureJobService.RemoveFixtureJobs", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	return s.locks.WithLock(ctx, fixtureKey(fixtureID), func(ctx context.Context) error {
		if _, err := cachedFixture(ctx, s.store.Repositories(), fixtureID); err != nil {
			return err
		}
		if err := s.scheduler.Cancel(ctx, fixtureID); err != nil {
			return fmt.Errorf("cancel jobs of fixture=%d: %w", fixtureID, err)
		}
		if err := s.store.Repositories().Fixtures.SetAvailable(ctx, fixtureID, false); err != nil {
			return fmt.Errorf("mark fixture=%d unavailable: %w", fixtureID, err)
		}
		s.logger.InfoContext(ctx, "fixture jobs removed", "fixture_id", fixtureID)
		return nil
	})
}

// PollLiveFixture runs one poll-and-write cycle for a fixture: lineups, events,
// then status. An integrity violation in the event log triggers a rebuild.
func (s *FixtureJobService) PollLiveFixture(ctx context.Context, fixtureID int64) (finished bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureJobService.PollLiveFixture", attribute.Int64("fixture_id", fixtureID))
	defer func() { endSpan(span, err) }()

	err = s.locks.WithLock(ctx, fixtureKey(fixtureID), func(ctx context.Context) error {
		snap, err := s.client.FetchLiveFixture(ctx, fixtureID)
		if err != nil {
			return fmt.Errorf("fetch live fixture=%d: %w", fixtureID, err)
		}
		if snap.Fixture.ID != fixtureID {
			return fmt.Errorf("%w: live response id=%d for fixture=%d", ErrMalformedSnapshot, snap.Fixture.ID, fixtureID)
		}

		if _, err := s.live.SaveLineups(ctx, snap); err != nil {
			return err
		}

		_, err = s.live.SyncLiveEvent(ctx, snap)
		if errors.Is(err, ErrIntegrityViolation) {
			s.logger.WarnContext(ctx, "event log integrity violation, rebuilding", "fixture_id", fixtureID, "error", err)
			err = s.live.ResolveIntegrityError(ctx, snap)
		}
		if err != nil {
			return err
		}

		finished, err = s.live.UpdateLiveStatus(ctx, snap)
		return err
	})
	if err != nil {
		return false, err
	}
	if finished {
		s.logger.InfoContext(ctx, "fixture finished", "fixture_id", fixtureID)
	}
	return finished, nil
}

// PollLiveFixtures polls fixtures in parallel. One failing fixture does not
// stop the others; failures are reported per fixture.
func (s *FixtureJobService) PollLiveFixtures(ctx context.Context, fixtureIDs []int64) ([]LivePollResult, error) {
	results := make([]LivePollResult, len(fixtureIDs))
	if len(fixtureIDs) == 0 {
		return results, nil
	}

	workers, err := ants.NewPool(s.cfg.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i, id := range fixtureIDs {
		i, id := i, id
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			finished, err := s.PollLiveFixture(ctx, id)
			if err != nil {
				s.logger.ErrorContext(ctx, "live poll failed", "fixture_id", id, "error", err)
			}
			results[i] = LivePollResult{FixtureID: id, Finished: finished, Err: err}
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit live poll of fixture=%d: %w", id, err)
		}
	}
	wg.Wait()
	return results, nil
}

// PollAvailableFixtures polls every available fixture that has kicked off and
// is not finished yet.
func (s *FixtureJobService) PollAvailableFixtures(ctx context.Context) ([]LivePollResult, error) {
	repos := s.store.Repositories()
	items, err := repos.Fixtures.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available fixtures: %w", err)
	}

	now := s.clock.Now()
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if now.Before(item.KickoffAt.Add(-s.cfg.LineupLead)) {
			continue
		}
		done, err := fixtureDone(ctx, repos, item, now)
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}
		ids = append(ids, item.ID)
	}
	return s.PollLiveFixtures(ctx, ids)
}

// RefreshLeagues reconciles league info, teams and fixtures for each league.
// Leagues run in parallel, each one under its own lock.
func (s *FixtureJobService) RefreshLeagues(ctx context.Context, leagueIDs []int64) []LeagueRefreshResult {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	logger.InfoContext(ctx, "league refresh started", "leagues", leagueIDs)

	var mu sync.Mutex
	results := make([]LeagueRefreshResult, 0, len(leagueIDs))

	p := pool.New().WithMaxGoroutines(s.cfg.Concurrency).WithErrors()
	for _, id := range leagueIDs {
		id := id
		p.Go(func() error {
			row := s.refreshLeague(ctx, id)
			if row.Err != nil {
				logger.ErrorContext(ctx, "league refresh failed", "league_id", id, "error", row.Err)
			}
			mu.Lock()
			results = append(results, row)
			mu.Unlock()
			return row.Err
		})
	}
	if err := p.Wait(); err != nil {
		logger.WarnContext(ctx, "league refresh finished with failures", "error", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].LeagueID < results[j].LeagueID })
	logger.InfoContext(ctx, "league refresh finished", "leagues", len(results))
	return results
}

func (s *FixtureJobService) refreshLeague(ctx context.Context, leagueID int64) LeagueRefreshResult {
	row := LeagueRefreshResult{LeagueID: leagueID}
	row.Err = s.locks.WithLock(ctx, leagueKey(leagueID), func(ctx context.Context) error {
		if _, err := s.reconciler.ReconcileLeague(ctx, leagueID); err != nil {
			return err
		}
		teams, err := s.reconciler.ReconcileTeamsOfLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		row.Teams = len(teams)
		fixtures, err := s.reconciler.ReconcileFixturesOfLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		row.Fixtures = len(fixtures)
		return nil
	})
	return row
}

// RefreshRoster reconciles a team's roster under the team lock.
func (s *FixtureJobService) RefreshRoster(ctx context.Context, teamID int64) (int, error) {
	var count int
	err := s.locks.WithLock(ctx, teamKey(teamID), func(ctx context.Context) error {
		players, err := s.reconciler.ReconcileRoster(ctx, teamID)
		count = len(players)
		return err
	})
	return count, err
}

// RefreshCurrentLeaguesOfTeam reconciles a team's current leagues under the team lock.
func (s *FixtureJobService) RefreshCurrentLeaguesOfTeam(ctx context.Context, teamID int64) error {
	return s.locks.WithLock(ctx, teamKey(teamID), func(ctx context.Context) error {
		return s.reconciler.ReconcileCurrentLeaguesOfTeam(ctx, teamID)
	})
}
