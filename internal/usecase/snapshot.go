package usecase

import (
	"context"
	"time"
)

// SnapshotClient fetches typed snapshots from the sports data provider.
type SnapshotClient interface {
	FetchLeague(ctx context.Context, leagueID int64) (LeagueSnapshot, error)
	FetchCurrentLeagues(ctx context.Context) ([]LeagueSnapshot, error)
	FetchTeamsOfLeague(ctx context.Context, leagueID int64, season int) ([]TeamSnapshot, error)
	FetchTeam(ctx context.Context, teamID int64) (TeamSnapshot, error)
	FetchRoster(ctx context.Context, teamID int64) ([]PlayerSnapshot, error)
	FetchCurrentLeaguesOfTeam(ctx context.Context, teamID int64) ([]LeagueSnapshot, error)
	FetchPlayer(ctx context.Context, playerID, leagueID int64, season int) (PlayerSeasonSnapshot, error)
	FetchFixturesOfLeague(ctx context.Context, leagueID int64, season int) ([]FixtureSnapshot, error)
	FetchLiveFixture(ctx context.Context, fixtureID int64) (LiveFixtureSnapshot, error)
}

type SeasonSnapshot struct {
	Year    int
	Current bool
}

type LeagueSnapshot struct {
	ID      int64
	Name    string
	Logo    string
	Seasons []SeasonSnapshot
}

// CurrentSeason returns the season flagged current, if any.
func (l LeagueSnapshot) CurrentSeason() Optional[int] {
	for _, s := range l.Seasons {
		if s.Current {
			return Present(s.Year)
		}
	}
	return Absent[int]()
}

type TeamSnapshot struct {
	ID   int64
	Name string
	Logo string
}

type PlayerSnapshot struct {
	ID       int64
	Name     string
	Photo    string
	Position string
	Number   Optional[int]
}

// PlayerSeasonSnapshot is a player profile scoped to the league and season the
// provider reports statistics for.
type PlayerSeasonSnapshot struct {
	Player   PlayerSnapshot
	LeagueID int64
	Season   int
}

type StatusSnapshot struct {
	Long    string
	Short   string
	Elapsed Optional[int]
}

type GoalsSnapshot struct {
	Home Optional[int]
	Away Optional[int]
}

type FixtureSnapshot struct {
	ID         int64
	Referee    Optional[string]
	Round      string
	Timezone   string
	Date       Optional[time.Time]
	Timestamp  int64
	LeagueID   int64
	HomeTeamID int64
	AwayTeamID int64
	Status     StatusSnapshot
	Goals      GoalsSnapshot
}

type LineupPlayerSnapshot struct {
	Person   PersonSnapshot
	Number   Optional[int]
	Position string
	Grid     string
}

type LineupSnapshot struct {
	TeamID      int64
	Formation   string
	StartXI     []LineupPlayerSnapshot
	Substitutes []LineupPlayerSnapshot
}

// EventSnapshot mirrors one element of the provider's event array. Fields the
// provider may omit are Optional so resolution never inspects raw nulls.
type EventSnapshot struct {
	Elapsed  Optional[int]
	Extra    Optional[int]
	TeamID   Optional[int64]
	Player   PersonSnapshot
	Assist   PersonSnapshot
	Type     Optional[string]
	Detail   Optional[string]
	Comments Optional[string]
}

// LiveFixtureSnapshot is one poll of a single fixture. Lineups and Events are
// Absent when the provider omitted the array entirely.
type LiveFixtureSnapshot struct {
	Fixture FixtureSnapshot
	Lineups Optional[[]LineupSnapshot]
	Events  Optional[[]EventSnapshot]
}

// TrustedLineups returns home and away lineups only when both are present.
func (s LiveFixtureSnapshot) TrustedLineups() (home, away LineupSnapshot, ok bool) {
	lineups, present := s.Lineups.Get()
	if !present {
		return LineupSnapshot{}, LineupSnapshot{}, false
	}
	var foundHome, foundAway bool
	for _, l := range lineups {
		switch l.TeamID {
		case s.Fixture.HomeTeamID:
			home, foundHome = l, true
		case s.Fixture.AwayTeamID:
			away, foundAway = l, true
		}
	}
	if !foundHome || !foundAway {
		return LineupSnapshot{}, LineupSnapshot{}, false
	}
	return home, away, true
}
