package jobqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-sync/internal/platform/logging"
	"github.com/riskibarqy/football-sync/internal/usecase"
)

const defaultPollInterval = 30 * time.Second

// PollFunc polls one fixture and reports whether it has finished.
type PollFunc func(ctx context.Context, fixtureID int64) (finished bool, err error)

type TimerSchedulerConfig struct {
	PollInterval time.Duration
	Clock        clockwork.Clock
	Logger       *logging.Logger
}

// TimerScheduler runs fixture jobs in process: one lineup poll at LineupAt,
// then repeated polls from LiveAt until the fixture finishes or is cancelled.
type TimerScheduler struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	logger   *logging.Logger
	interval time.Duration

	base context.Context
	poll PollFunc
	jobs map[int64]*scheduledJob
	wg   sync.WaitGroup
}

type scheduledJob struct {
	cancel context.CancelFunc
}

var _ usecase.JobScheduler = (*TimerScheduler)(nil)

func NewTimerScheduler(cfg TimerSchedulerConfig) *TimerScheduler {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &TimerScheduler{
		clock:    clock,
		logger:   logger.Named("scheduler"),
		interval: interval,
		jobs:     make(map[int64]*scheduledJob),
	}
}

// Start binds the poller. Jobs run under ctx and stop when it is cancelled.
func (s *TimerScheduler) Start(ctx context.Context, poll PollFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = ctx
	s.poll = poll
}

// Schedule replaces any job already registered for the fixture.
func (s *TimerScheduler) Schedule(_ context.Context, job usecase.FixtureJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poll == nil || s.base == nil {
		return fmt.Errorf("schedule fixture=%d: scheduler not started", job.FixtureID)
	}
	if existing, ok := s.jobs[job.FixtureID]; ok {
		existing.cancel()
	}

	ctx, cancel := context.WithCancel(s.base)
	entry := &scheduledJob{cancel: cancel}
	s.jobs[job.FixtureID] = entry

	s.wg.Add(1)
	go s.run(ctx, entry, job)

	s.logger.Info("fixture jobs scheduled",
		"fixture_id", job.FixtureID,
		"lineup_at", job.LineupAt,
		"live_at", job.LiveAt,
	)
	return nil
}

func (s *TimerScheduler) Cancel(_ context.Context, fixtureID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[fixtureID]; ok {
		existing.cancel()
		delete(s.jobs, fixtureID)
		s.logger.Info("fixture jobs cancelled", "fixture_id", fixtureID)
	}
	return nil
}

// Stop cancels every job and waits for running polls to return.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	for id, job := range s.jobs {
		job.cancel()
		delete(s.jobs, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *TimerScheduler) Scheduled(fixtureID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[fixtureID]
	return ok
}

// Pending reports the number of registered fixtures.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *TimerScheduler) run(ctx context.Context, entry *scheduledJob, job usecase.FixtureJob) {
	defer s.wg.Done()
	defer s.release(job.FixtureID, entry)

	if !job.LineupAt.IsZero() && job.LineupAt.Before(job.LiveAt) {
		if !s.sleepUntil(ctx, job.LineupAt) {
			return
		}
		if done := s.pollOnce(ctx, job.FixtureID); done {
			return
		}
	}

	if !s.sleepUntil(ctx, job.LiveAt) {
		return
	}
	for {
		if done := s.pollOnce(ctx, job.FixtureID); done {
			return
		}
		if !s.sleepUntil(ctx, s.clock.Now().Add(s.interval)) {
			return
		}
	}
}

// pollOnce reports whether the job should stop.
func (s *TimerScheduler) pollOnce(ctx context.Context, fixtureID int64) bool {
	finished, err := s.poll(ctx, fixtureID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		if errors.Is(err, usecase.ErrPreconditionMissing) {
			s.logger.Warn("fixture no longer cached, dropping jobs", "fixture_id", fixtureID, "error", err)
			return true
		}
		s.logger.Warn("fixture poll failed", "fixture_id", fixtureID, "error", err)
		return false
	}
	if finished {
		s.logger.Info("fixture finished, live jobs done", "fixture_id", fixtureID)
	}
	return finished
}

func (s *TimerScheduler) sleepUntil(ctx context.Context, at time.Time) bool {
	d := at.Sub(s.clock.Now())
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := s.clock.NewTimer(d)
	select {
	case <-ctx.Done():
		stopAndDrainTimer(timer)
		return false
	case <-timer.Chan():
		return true
	}
}

// release drops the registry entry unless a newer job replaced it.
func (s *TimerScheduler) release(fixtureID int64, entry *scheduledJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.cancel()
	if current, ok := s.jobs[fixtureID]; ok && current == entry {
		delete(s.jobs, fixtureID)
	}
}

func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
