package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID         int64     `db:"id"`
	LeagueID   int64     `db:"league_id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	Referee    string    `db:"referee"`
	Round      string    `db:"round"`
	Timezone   string    `db:"timezone"`
	KickoffAt  time.Time `db:"kickoff_at"`
	Timestamp  int64     `db:"timestamp"`
	Available  bool      `db:"available"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type fixtureInsertModel struct {
	ID         int64     `db:"id"`
	LeagueID   int64     `db:"league_id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	Referee    string    `db:"referee"`
	Round      string    `db:"round"`
	Timezone   string    `db:"timezone"`
	KickoffAt  time.Time `db:"kickoff_at"`
	Timestamp  int64     `db:"timestamp"`
	Available  bool      `db:"available"`
}

type liveStatusTableModel struct {
	FixtureID   int64         `db:"fixture_id"`
	LongStatus  string        `db:"long_status"`
	ShortStatus string        `db:"short_status"`
	Elapsed     sql.NullInt64 `db:"elapsed"`
	HomeScore   int           `db:"home_score"`
	AwayScore   int           `db:"away_score"`
}
