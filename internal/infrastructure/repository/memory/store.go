package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	"github.com/riskibarqy/football-sync/internal/domain/match"
	"github.com/riskibarqy/football-sync/internal/domain/player"
	"github.com/riskibarqy/football-sync/internal/domain/team"
	"github.com/riskibarqy/football-sync/internal/usecase"
)

type edge struct {
	from int64
	to   int64
}

// state holds every table. It is cloned on transaction start and restored when
// the transaction fails.
type state struct {
	leagues     map[int64]league.League
	teams       map[int64]team.Team
	players     map[int64]player.Player
	leagueTeams map[edge]struct{}
	teamPlayers map[edge]struct{}
	fixtures    map[int64]fixture.Fixture
	liveStatus  map[int64]fixture.LiveStatus
	lineups     map[int64]match.Lineup
	matchPlayer map[int64]match.Player
	events      map[int64]match.Event
	cacheLog    map[string]cachelog.Entry
	nextID      int64
}

func newState() *state {
	return &state{
		leagues:     make(map[int64]league.League),
		teams:       make(map[int64]team.Team),
		players:     make(map[int64]player.Player),
		leagueTeams: make(map[edge]struct{}),
		teamPlayers: make(map[edge]struct{}),
		fixtures:    make(map[int64]fixture.Fixture),
		liveStatus:  make(map[int64]fixture.LiveStatus),
		lineups:     make(map[int64]match.Lineup),
		matchPlayer: make(map[int64]match.Player),
		events:      make(map[int64]match.Event),
		cacheLog:    make(map[string]cachelog.Entry),
	}
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		leagues:     cloneMap(s.leagues),
		teams:       cloneMap(s.teams),
		players:     cloneMap(s.players),
		leagueTeams: cloneMap(s.leagueTeams),
		teamPlayers: cloneMap(s.teamPlayers),
		fixtures:    cloneMap(s.fixtures),
		liveStatus:  cloneMap(s.liveStatus),
		lineups:     cloneMap(s.lineups),
		matchPlayer: cloneMap(s.matchPlayer),
		events:      cloneMap(s.events),
		cacheLog:    cloneMap(s.cacheLog),
		nextID:      s.nextID,
	}
}

// Store is an in-process entity store used for tests and dry runs.
// Transactions are serialized; a failed transaction restores the state it
// started from.
type Store struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	data   *state
	writes atomic.Int64
}

func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) Repositories() usecase.Repositories {
	return usecase.Repositories{
		Leagues:  &LeagueRepository{store: s},
		Teams:    &TeamRepository{store: s},
		Players:  &PlayerRepository{store: s},
		Fixtures: &FixtureRepository{store: s},
		Matches:  &MatchRepository{store: s},
	}
}

func (s *Store) CacheLog() *CacheLogRepository {
	return &CacheLogRepository{store: s}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	saved := s.data.clone()
	savedWrites := s.writes.Load()
	s.mu.RUnlock()

	if err := fn(ctx, s.Repositories()); err != nil {
		s.mu.Lock()
		s.data = saved
		s.mu.Unlock()
		s.writes.Store(savedWrites)
		return err
	}
	return nil
}

// Writes counts committed mutating calls. Tests use it to assert that a repeated
// pass changes nothing.
func (s *Store) Writes() int64 {
	return s.writes.Load()
}

func (s *Store) read(fn func(*state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(*state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes.Add(1)
	fn(s.data)
}
