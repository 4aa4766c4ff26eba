package usecase

import (
	"time"

	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	"github.com/riskibarqy/football-sync/internal/domain/player"
	"github.com/riskibarqy/football-sync/internal/domain/team"
)

// The merge helpers copy provider owned fields onto a stored entity and report
// whether anything changed. Display name overrides and curation flags are never
// touched.

func leagueFromSnapshot(s LeagueSnapshot) league.League {
	return league.League{
		ID:            s.ID,
		Name:          s.Name,
		Logo:          s.Logo,
		CurrentSeason: s.CurrentSeason().Ptr(),
	}
}

func mergeLeague(current league.League, s LeagueSnapshot) (league.League, bool) {
	changed := false
	if current.Name != s.Name {
		current.Name = s.Name
		changed = true
	}
	if current.Logo != s.Logo {
		current.Logo = s.Logo
		changed = true
	}
	// A snapshot without a current season keeps the stored one.
	if season, ok := s.CurrentSeason().Get(); ok && !intPtrEquals(current.CurrentSeason, season) {
		current.CurrentSeason = &season
		changed = true
	}
	return current, changed
}

func teamFromSnapshot(s TeamSnapshot) team.Team {
	return team.Team{ID: s.ID, Name: s.Name, Logo: s.Logo}
}

func mergeTeam(current team.Team, s TeamSnapshot) (team.Team, bool) {
	changed := false
	if current.Name != s.Name {
		current.Name = s.Name
		changed = true
	}
	if current.Logo != s.Logo {
		current.Logo = s.Logo
		changed = true
	}
	return current, changed
}

func playerFromSnapshot(s PlayerSnapshot) player.Player {
	return player.Player{
		ID:       s.ID,
		Name:     s.Name,
		Photo:    s.Photo,
		Position: s.Position,
		Number:   s.Number.Ptr(),
	}
}

func mergePlayer(current player.Player, s PlayerSnapshot) (player.Player, bool) {
	changed := false
	if current.Name != s.Name {
		current.Name = s.Name
		changed = true
	}
	if current.Photo != s.Photo {
		current.Photo = s.Photo
		changed = true
	}
	if current.Position != s.Position {
		current.Position = s.Position
		changed = true
	}
	if !intPtrEqual(current.Number, s.Number.Ptr()) {
		current.Number = s.Number.Ptr()
		changed = true
	}
	return current, changed
}

func fixtureFromSnapshot(s FixtureSnapshot, ref *time.Location) fixture.Fixture {
	return fixture.Fixture{
		ID:         s.ID,
		LeagueID:   s.LeagueID,
		HomeTeamID: s.HomeTeamID,
		AwayTeamID: s.AwayTeamID,
		Referee:    s.Referee.OrElse(""),
		Round:      s.Round,
		Timezone:   s.Timezone,
		KickoffAt:  normalizeKickoff(s, ref),
		Timestamp:  s.Timestamp,
	}
}

func mergeFixture(current fixture.Fixture, s FixtureSnapshot, ref *time.Location) (fixture.Fixture, bool) {
	incoming := fixtureFromSnapshot(s, ref)
	incoming.Available = current.Available
	same := incoming.LeagueID == current.LeagueID &&
		incoming.HomeTeamID == current.HomeTeamID &&
		incoming.AwayTeamID == current.AwayTeamID &&
		incoming.Referee == current.Referee &&
		incoming.Round == current.Round &&
		incoming.Timezone == current.Timezone &&
		incoming.Timestamp == current.Timestamp &&
		incoming.KickoffAt.Equal(current.KickoffAt)
	if same {
		return current, false
	}
	return incoming, true
}

func liveStatusFromSnapshot(fixtureID int64, status StatusSnapshot, goals GoalsSnapshot) fixture.LiveStatus {
	return fixture.LiveStatus{
		FixtureID:   fixtureID,
		LongStatus:  status.Long,
		ShortStatus: status.Short,
		Elapsed:     status.Elapsed.Ptr(),
		HomeScore:   goals.Home.OrElse(0),
		AwayScore:   goals.Away.OrElse(0),
	}
}

func liveStatusEqual(a, b fixture.LiveStatus) bool {
	return a.FixtureID == b.FixtureID &&
		a.LongStatus == b.LongStatus &&
		a.ShortStatus == b.ShortStatus &&
		intPtrEqual(a.Elapsed, b.Elapsed) &&
		a.HomeScore == b.HomeScore &&
		a.AwayScore == b.AwayScore
}

// normalizeKickoff expresses the kickoff in the reference zone. When the source
// timezone is unknown the unix timestamp is authoritative.
func normalizeKickoff(s FixtureSnapshot, ref *time.Location) time.Time {
	if ref == nil {
		ref = time.UTC
	}
	if date, ok := s.Date.Get(); ok {
		if _, err := time.LoadLocation(s.Timezone); err == nil {
			return date.In(ref)
		}
	}
	return time.Unix(s.Timestamp, 0).In(ref)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func intPtrEquals(p *int, v int) bool {
	return p != nil && *p == v
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
