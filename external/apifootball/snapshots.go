package apifootball

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-sync/internal/usecase"
)

func (c *Client) FetchLeague(ctx context.Context, leagueID int64) (usecase.LeagueSnapshot, error) {
	if leagueID <= 0 {
		return usecase.LeagueSnapshot{}, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[leagueItem]
	if err := c.get(ctx, "/leagues", map[string]string{"id": formatID(leagueID)}, &env); err != nil {
		return usecase.LeagueSnapshot{}, fmt.Errorf("fetch league id=%d: %w", leagueID, err)
	}
	if len(env.Response) == 0 {
		return usecase.LeagueSnapshot{}, fmt.Errorf("%w: league id=%d not returned by provider", usecase.ErrNotFound, leagueID)
	}
	return mapLeague(env.Response[0]), nil
}

func (c *Client) FetchCurrentLeagues(ctx context.Context) ([]usecase.LeagueSnapshot, error) {
	var env envelope[leagueItem]
	if err := c.get(ctx, "/leagues", map[string]string{"current": "true"}, &env); err != nil {
		return nil, fmt.Errorf("fetch current leagues: %w", err)
	}
	return mapLeagues(env.Response), nil
}

func (c *Client) FetchCurrentLeaguesOfTeam(ctx context.Context, teamID int64) ([]usecase.LeagueSnapshot, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[leagueItem]
	query := map[string]string{"team": formatID(teamID), "current": "true"}
	if err := c.get(ctx, "/leagues", query, &env); err != nil {
		return nil, fmt.Errorf("fetch current leagues of team id=%d: %w", teamID, err)
	}
	return mapLeagues(env.Response), nil
}

func (c *Client) FetchTeamsOfLeague(ctx context.Context, leagueID int64, season int) ([]usecase.TeamSnapshot, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[teamItem]
	query := map[string]string{"league": formatID(leagueID), "season": strconv.Itoa(season)}
	if err := c.get(ctx, "/teams", query, &env); err != nil {
		return nil, fmt.Errorf("fetch teams of league id=%d season=%d: %w", leagueID, season, err)
	}
	out := make([]usecase.TeamSnapshot, 0, len(env.Response))
	for _, item := range env.Response {
		out = append(out, mapTeam(item.Team))
	}
	return out, nil
}

func (c *Client) FetchTeam(ctx context.Context, teamID int64) (usecase.TeamSnapshot, error) {
	if teamID <= 0 {
		return usecase.TeamSnapshot{}, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[teamItem]
	if err := c.get(ctx, "/teams", map[string]string{"id": formatID(teamID)}, &env); err != nil {
		return usecase.TeamSnapshot{}, fmt.Errorf("fetch team id=%d: %w", teamID, err)
	}
	if len(env.Response) == 0 {
		return usecase.TeamSnapshot{}, fmt.Errorf("%w: team id=%d not returned by provider", usecase.ErrNotFound, teamID)
	}
	return mapTeam(env.Response[0].Team), nil
}

func (c *Client) FetchRoster(ctx context.Context, teamID int64) ([]usecase.PlayerSnapshot, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[squadItem]
	if err := c.get(ctx, "/players/squads", map[string]string{"team": formatID(teamID)}, &env); err != nil {
		return nil, fmt.Errorf("fetch roster team id=%d: %w", teamID, err)
	}

	var out []usecase.PlayerSnapshot
	for _, squad := range env.Response {
		if squad.Team.ID != teamID {
			return nil, fmt.Errorf("%w: roster for team id=%d returned team id=%d", usecase.ErrMalformedSnapshot, teamID, squad.Team.ID)
		}
		for _, p := range squad.Players {
			out = append(out, usecase.PlayerSnapshot{
				ID:       p.ID,
				Name:     strings.TrimSpace(p.Name),
				Photo:    p.Photo,
				Position: p.Position,
				Number:   usecase.FromPtr(p.Number),
			})
		}
	}
	return out, nil
}

func (c *Client) FetchPlayer(ctx context.Context, playerID, leagueID int64, season int) (usecase.PlayerSeasonSnapshot, error) {
	if playerID <= 0 || leagueID <= 0 {
		return usecase.PlayerSeasonSnapshot{}, fmt.Errorf("%w: player and league id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[playerItem]
	query := map[string]string{
		"id":     formatID(playerID),
		"league": formatID(leagueID),
		"season": strconv.Itoa(season),
	}
	if err := c.get(ctx, "/players", query, &env); err != nil {
		return usecase.PlayerSeasonSnapshot{}, fmt.Errorf("fetch player id=%d: %w", playerID, err)
	}
	if len(env.Response) == 0 {
		return usecase.PlayerSeasonSnapshot{}, fmt.Errorf("%w: player id=%d not returned by provider", usecase.ErrNotFound, playerID)
	}
	return mapPlayerSeason(env.Response[0]), nil
}

func (c *Client) FetchFixturesOfLeague(ctx context.Context, leagueID int64, season int) ([]usecase.FixtureSnapshot, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[fixtureItem]
	query := map[string]string{"league": formatID(leagueID), "season": strconv.Itoa(season)}
	if err := c.get(ctx, "/fixtures", query, &env); err != nil {
		return nil, fmt.Errorf("fetch fixtures of league id=%d season=%d: %w", leagueID, season, err)
	}
	out := make([]usecase.FixtureSnapshot, 0, len(env.Response))
	for _, item := range env.Response {
		out = append(out, mapFixture(item))
	}
	return out, nil
}

func (c *Client) FetchLiveFixture(ctx context.Context, fixtureID int64) (usecase.LiveFixtureSnapshot, error) {
	if fixtureID <= 0 {
		return usecase.LiveFixtureSnapshot{}, fmt.Errorf("%w: fixture id must be greater than zero", usecase.ErrInvalidInput)
	}
	var env envelope[liveFixtureItem]
	if err := c.get(ctx, "/fixtures", map[string]string{"id": formatID(fixtureID)}, &env); err != nil {
		return usecase.LiveFixtureSnapshot{}, fmt.Errorf("fetch live fixture id=%d: %w", fixtureID, err)
	}
	if len(env.Response) == 0 {
		return usecase.LiveFixtureSnapshot{}, fmt.Errorf("%w: fixture id=%d not returned by provider", usecase.ErrNotFound, fixtureID)
	}
	return mapLiveFixture(env.Response[0]), nil
}

func mapLeagues(items []leagueItem) []usecase.LeagueSnapshot {
	out := make([]usecase.LeagueSnapshot, 0, len(items))
	for _, item := range items {
		out = append(out, mapLeague(item))
	}
	return out
}

func mapLeague(item leagueItem) usecase.LeagueSnapshot {
	out := usecase.LeagueSnapshot{
		ID:   item.League.ID,
		Name: strings.TrimSpace(item.League.Name),
		Logo: item.League.Logo,
	}
	for _, s := range item.Seasons {
		out.Seasons = append(out.Seasons, usecase.SeasonSnapshot{Year: s.Year, Current: s.Current})
	}
	return out
}

func mapTeam(ref teamRef) usecase.TeamSnapshot {
	return usecase.TeamSnapshot{ID: ref.ID, Name: strings.TrimSpace(ref.Name), Logo: ref.Logo}
}

// mapPlayerSeason reads number and position from the first statistics block,
// which the provider scopes to the requested league and season.
func mapPlayerSeason(item playerItem) usecase.PlayerSeasonSnapshot {
	out := usecase.PlayerSeasonSnapshot{
		Player: usecase.PlayerSnapshot{
			ID:    item.Player.ID,
			Name:  strings.TrimSpace(item.Player.Name),
			Photo: item.Player.Photo,
		},
	}
	if len(item.Statistics) > 0 {
		stat := item.Statistics[0]
		out.LeagueID = stat.League.ID
		out.Season = stat.League.Season
		out.Player.Position = stat.Games.Position
		out.Player.Number = usecase.FromPtr(stat.Games.Number)
	}
	return out
}

func mapFixture(item fixtureItem) usecase.FixtureSnapshot {
	return usecase.FixtureSnapshot{
		ID:         item.Fixture.ID,
		Referee:    usecase.FromPtr(item.Fixture.Referee),
		Round:      item.League.Round,
		Timezone:   item.Fixture.Timezone,
		Date:       parseDate(item.Fixture.Date),
		Timestamp:  item.Fixture.Timestamp,
		LeagueID:   item.League.ID,
		HomeTeamID: item.Teams.Home.ID,
		AwayTeamID: item.Teams.Away.ID,
		Status: usecase.StatusSnapshot{
			Long:    item.Fixture.Status.Long,
			Short:   item.Fixture.Status.Short,
			Elapsed: usecase.FromPtr(item.Fixture.Status.Elapsed),
		},
		Goals: usecase.GoalsSnapshot{
			Home: usecase.FromPtr(item.Goals.Home),
			Away: usecase.FromPtr(item.Goals.Away),
		},
	}
}

func mapLiveFixture(item liveFixtureItem) usecase.LiveFixtureSnapshot {
	out := usecase.LiveFixtureSnapshot{Fixture: mapFixture(item.fixtureItem)}

	if item.Lineups != nil {
		lineups := make([]usecase.LineupSnapshot, 0, len(*item.Lineups))
		for _, l := range *item.Lineups {
			if l.Team == nil {
				continue
			}
			lineups = append(lineups, usecase.LineupSnapshot{
				TeamID:      l.Team.ID,
				Formation:   strings.TrimSpace(deref(l.Formation)),
				StartXI:     mapLineupPlayers(l.StartXI),
				Substitutes: mapLineupPlayers(l.Substitutes),
			})
		}
		out.Lineups = usecase.Present(lineups)
	}

	if item.Events != nil {
		events := make([]usecase.EventSnapshot, 0, len(*item.Events))
		for _, e := range *item.Events {
			ev := usecase.EventSnapshot{
				Elapsed:  usecase.FromPtr(e.Time.Elapsed),
				Extra:    usecase.FromPtr(e.Time.Extra),
				Player:   mapPerson(e.Player),
				Assist:   mapPerson(e.Assist),
				Type:     usecase.FromPtr(e.Type),
				Detail:   usecase.FromPtr(e.Detail),
				Comments: usecase.FromPtr(e.Comments),
			}
			if e.Team != nil {
				ev.TeamID = usecase.FromPtr(e.Team.ID)
			}
			events = append(events, ev)
		}
		out.Events = usecase.Present(events)
	}
	return out
}

func mapLineupPlayers(items []lineupPlayerDTO) []usecase.LineupPlayerSnapshot {
	out := make([]usecase.LineupPlayerSnapshot, 0, len(items))
	for _, item := range items {
		p := item.Player
		out = append(out, usecase.LineupPlayerSnapshot{
			Person:   usecase.PersonSnapshot{ID: usecase.FromPtr(p.ID), Name: usecase.FromPtr(p.Name)},
			Number:   usecase.FromPtr(p.Number),
			Position: deref(p.Pos),
			Grid:     deref(p.Grid),
		})
	}
	return out
}

func mapPerson(p *personDTO) usecase.PersonSnapshot {
	if p == nil {
		return usecase.PersonSnapshot{}
	}
	return usecase.PersonSnapshot{ID: usecase.FromPtr(p.ID), Name: usecase.FromPtr(p.Name)}
}

// parseDate accepts the provider's ISO-8601 kickoff, e.g. 2025-08-16T14:00:00+00:00.
func parseDate(raw string) usecase.Optional[time.Time] {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return usecase.Absent[time.Time]()
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return usecase.Absent[time.Time]()
	}
	return usecase.Present(parsed)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
