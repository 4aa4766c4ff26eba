package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-sync/internal/domain/match"
	qb "github.com/riskibarqy/football-sync/internal/platform/querybuilder"
)

type MatchRepository struct {
	db queryer
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetLineup(ctx context.Context, fixtureID, teamID int64) (match.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("match_lineups").
		Where(qb.Eq("fixture_id", fixtureID), qb.Eq("team_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Lineup{}, false, fmt.Errorf("build select lineup query: %w", err)
	}

	var row lineupTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Lineup{}, false, nil
		}
		return match.Lineup{}, false, fmt.Errorf("select lineup: %w", err)
	}
	return match.Lineup(row), true, nil
}

func (r *MatchRepository) CreateLineup(ctx context.Context, item match.Lineup) (match.Lineup, error) {
	query, args, err := qb.InsertModel("match_lineups", lineupInsertModel{
		FixtureID: item.FixtureID,
		TeamID:    item.TeamID,
		Formation: item.Formation,
	}, "RETURNING id")
	if err != nil {
		return match.Lineup{}, fmt.Errorf("build insert lineup query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return match.Lineup{}, fmt.Errorf("insert lineup: %w", err)
	}
	return item, nil
}

func (r *MatchRepository) GetPlayer(ctx context.Context, id int64) (match.Player, bool, error) {
	query, args, err := qb.Select("*").From("match_players").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Player{}, false, fmt.Errorf("build select match player query: %w", err)
	}
	return r.getPlayer(ctx, query, args)
}

func (r *MatchRepository) ListPlayersByFixture(ctx context.Context, fixtureID int64) ([]match.Player, error) {
	query, args, err := qb.Select("*").From("match_players").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match players query: %w", err)
	}

	var rows []matchPlayerTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match players: %w", err)
	}
	out := make([]match.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchPlayerFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) FindPlayerByName(ctx context.Context, fixtureID, teamID int64, name string) (match.Player, bool, error) {
	query, args, err := qb.Select("*").From("match_players").
		Where(
			qb.Eq("fixture_id", fixtureID),
			qb.Eq("team_id", teamID),
			qb.IsNull("player_id"),
			qb.Eq("unregistered_name", strings.TrimSpace(name)),
		).
		OrderBy("lineup_id IS NULL", "id").
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Player{}, false, fmt.Errorf("build find match player by name query: %w", err)
	}
	return r.getPlayer(ctx, query, args)
}

func (r *MatchRepository) FindPlayerByPlayerID(ctx context.Context, fixtureID, teamID, playerID int64) (match.Player, bool, error) {
	query, args, err := qb.Select("*").From("match_players").
		Where(
			qb.Eq("fixture_id", fixtureID),
			qb.Eq("team_id", teamID),
			qb.Eq("player_id", playerID),
		).
		OrderBy("lineup_id IS NULL", "id").
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Player{}, false, fmt.Errorf("build find match player by player id query: %w", err)
	}
	return r.getPlayer(ctx, query, args)
}

func (r *MatchRepository) getPlayer(ctx context.Context, query string, args []any) (match.Player, bool, error) {
	var row matchPlayerTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Player{}, false, nil
		}
		return match.Player{}, false, fmt.Errorf("select match player: %w", err)
	}
	return matchPlayerFromRow(row), true, nil
}

func (r *MatchRepository) CreatePlayer(ctx context.Context, item match.Player) (match.Player, error) {
	query, args, err := qb.InsertModel("match_players", matchPlayerWrite(item), "RETURNING id")
	if err != nil {
		return match.Player{}, fmt.Errorf("build insert match player query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return match.Player{}, fmt.Errorf("insert match player: %w", err)
	}
	return item, nil
}

func (r *MatchRepository) UpdatePlayer(ctx context.Context, item match.Player) error {
	write := matchPlayerWrite(item)
	query, args, err := qb.Update("match_players").
		Set("lineup_id", write.LineupID).
		Set("player_id", write.PlayerID).
		Set("unregistered_name", write.UnregisteredName).
		Set("position", write.Position).
		Set("grid", write.Grid).
		Set("number", write.Number).
		Set("substitute", write.Substitute).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match player: %w", err)
	}
	return nil
}

func (r *MatchRepository) DeletePlayer(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("match_players").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match player: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListEventsByFixture(ctx context.Context, fixtureID int64) ([]match.Event, error) {
	query, args, err := qb.Select("*").From("fixture_events").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixture events query: %w", err)
	}

	var rows []fixtureEventTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixture events: %w", err)
	}
	out := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) CreateEvent(ctx context.Context, item match.Event) (match.Event, error) {
	query, args, err := qb.InsertModel("fixture_events", eventWrite(item), "RETURNING id")
	if err != nil {
		return match.Event{}, fmt.Errorf("build insert fixture event query: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return match.Event{}, fmt.Errorf("insert fixture event: %w", err)
	}
	return item, nil
}

func (r *MatchRepository) UpdateEvent(ctx context.Context, item match.Event) error {
	write := eventWrite(item)
	query, args, err := qb.Update("fixture_events").
		Set("elapsed", write.Elapsed).
		Set("extra", write.Extra).
		Set("team_id", write.TeamID).
		Set("type", write.Type).
		Set("detail", write.Detail).
		Set("comments", write.Comments).
		Set("player_match_player_id", write.PlayerRefID).
		Set("assist_match_player_id", write.AssistRefID).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update fixture event: %w", err)
	}
	return nil
}

func (r *MatchRepository) DeleteEvent(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("fixture_events").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete fixture event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete fixture event: %w", err)
	}
	return nil
}

func (r *MatchRepository) CountEventReferences(ctx context.Context, playerRefID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("fixture_events").
		Where(qb.Expr("(player_match_player_id = ? OR assist_match_player_id = ?)", playerRefID, playerRefID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count event references query: %w", err)
	}
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count event references: %w", err)
	}
	return count, nil
}

func matchPlayerWrite(item match.Player) matchPlayerWriteModel {
	return matchPlayerWriteModel{
		FixtureID:        item.FixtureID,
		TeamID:           item.TeamID,
		LineupID:         toNullInt64(item.LineupID),
		PlayerID:         toNullInt64(item.PlayerID),
		UnregisteredName: emptyToNullString(strings.TrimSpace(item.UnregisteredName)),
		Position:         item.Position,
		Grid:             item.Grid,
		Number:           toNullInt(item.Number),
		Substitute:       item.Substitute,
	}
}

func matchPlayerFromRow(row matchPlayerTableModel) match.Player {
	return match.Player{
		ID:               row.ID,
		FixtureID:        row.FixtureID,
		TeamID:           row.TeamID,
		LineupID:         nullInt64(row.LineupID),
		PlayerID:         nullInt64(row.PlayerID),
		UnregisteredName: row.UnregisteredName.String,
		Position:         row.Position,
		Grid:             row.Grid,
		Number:           nullInt(row.Number),
		Substitute:       row.Substitute,
	}
}

func eventWrite(item match.Event) fixtureEventWriteModel {
	return fixtureEventWriteModel{
		FixtureID:   item.FixtureID,
		Sequence:    item.Sequence,
		Elapsed:     item.Elapsed,
		Extra:       toNullInt(item.Extra),
		TeamID:      toNullInt64(item.TeamID),
		Type:        string(item.Type),
		Detail:      item.Detail,
		Comments:    toNullString(item.Comments),
		PlayerRefID: toNullInt64(item.PlayerRefID),
		AssistRefID: toNullInt64(item.AssistRefID),
	}
}

func eventFromRow(row fixtureEventTableModel) match.Event {
	return match.Event{
		ID:          row.ID,
		FixtureID:   row.FixtureID,
		Sequence:    row.Sequence,
		Elapsed:     row.Elapsed,
		Extra:       nullInt(row.Extra),
		TeamID:      nullInt64(row.TeamID),
		Type:        match.EventType(row.Type),
		Detail:      row.Detail,
		Comments:    nullString(row.Comments),
		PlayerRefID: nullInt64(row.PlayerRefID),
		AssistRefID: nullInt64(row.AssistRefID),
	}
}
