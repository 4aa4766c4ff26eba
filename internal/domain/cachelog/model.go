package cachelog

import "time"

// Type names the snapshot operation a cache entry belongs to.
type Type string

const (
	TypeLeague               Type = "LEAGUE"
	TypeCurrentLeagues       Type = "CURRENT_LEAGUES"
	TypeCurrentLeaguesOfTeam Type = "CURRENT_LEAGUES_OF_TEAM"
	TypeLeagueTeams          Type = "LEAGUE_TEAMS"
	TypeTeam                 Type = "TEAM"
	TypeSquad                Type = "SQUAD"
	TypePlayer               Type = "PLAYER"
	TypeFixture              Type = "FIXTURE"
	TypeLiveFixture          Type = "LIVE_FIXTURE"
	TypeFixturesOfLeague     Type = "FIXTURES_OF_LEAGUE"
)

// Entry records when a snapshot operation last completed for a parameter set,
// e.g. {Type: TypeLeagueTeams, Params: {"leagueId": 39}}.
type Entry struct {
	Type     Type
	Params   map[string]any
	CachedAt time.Time
}
