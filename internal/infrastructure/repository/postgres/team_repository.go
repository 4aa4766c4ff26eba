package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-sync/internal/domain/team"
	qb "github.com/riskibarqy/football-sync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db queryer
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Expr("id = ANY(?)", pq.Array(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by ids query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	query, args, err := qb.Select("t.*").From("teams t JOIN league_teams lt ON lt.team_id = t.id").
		Where(qb.Eq("lt.league_id", leagueID)).
		OrderBy("t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by league query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *TeamRepository) list(ctx context.Context, query string, args []any) ([]team.Team, error) {
	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) ListLeagueIDs(ctx context.Context, teamID int64) ([]int64, error) {
	query, args, err := qb.Select("league_id").From("league_teams").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("league_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league ids of team query: %w", err)
	}
	var ids []int64
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select league ids of team: %w", err)
	}
	return ids, nil
}

// Upsert keeps a stored display name override on conflict.
func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		ID:          item.ID,
		Name:        item.Name,
		DisplayName: toNullString(item.DisplayName),
		Logo:        item.Logo,
	}
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    logo = EXCLUDED.logo,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) LinkLeague(ctx context.Context, leagueID, teamID int64) error {
	query, args, err := qb.InsertInto("league_teams").
		Columns("league_id", "team_id").
		Values(leagueID, teamID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build link league team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("link league team: %w", err)
	}
	return nil
}

func (r *TeamRepository) UnlinkLeague(ctx context.Context, leagueID, teamID int64) error {
	query, args, err := qb.DeleteFrom("league_teams").
		Where(qb.Eq("league_id", leagueID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build unlink league team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unlink league team: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:          row.ID,
		Name:        row.Name,
		DisplayName: nullString(row.DisplayName),
		Logo:        row.Logo,
	}
}
