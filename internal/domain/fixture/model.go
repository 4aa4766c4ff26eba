package fixture

import (
	"fmt"
	"strings"
	"time"
)

// Fixture represents one scheduled match.
type Fixture struct {
	ID         int64
	LeagueID   int64
	HomeTeamID int64
	AwayTeamID int64
	Referee    string
	Round      string
	// Timezone is the provider's source zone; KickoffAt is normalized to the
	// configured reference zone.
	Timezone  string
	KickoffAt time.Time
	Timestamp int64
	// Available is true while live jobs are registered for the fixture.
	Available bool
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if f.LeagueID <= 0 || f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture %d requires league, home and away team", f.ID)
	}
	return nil
}

// LiveStatus is the mutable live state of a fixture, one row per fixture.
type LiveStatus struct {
	FixtureID   int64
	LongStatus  string
	ShortStatus string
	Elapsed     *int
	HomeScore   int
	AwayScore   int
}

func NormalizeStatus(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// IsFinishedStatus reports whether short no longer needs live polling.
func IsFinishedStatus(short string) bool {
	switch NormalizeStatus(short) {
	case "TBD", "FT", "AET", "PEN", "PST", "CANC", "ABD", "AWD", "WO":
		return true
	default:
		return false
	}
}

func IsLiveStatus(short string) bool {
	switch NormalizeStatus(short) {
	case "1H", "HT", "2H", "ET", "BT", "P", "SUSP", "INT", "LIVE":
		return true
	default:
		return false
	}
}
