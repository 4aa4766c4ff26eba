package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-sync/internal/domain/fixture"
	qb "github.com/riskibarqy/football-sync/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db queryer
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}
	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) ListByLeague(ctx context.Context, leagueID int64) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by league query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *FixtureRepository) ListAvailable(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("available", true)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select available fixtures query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *FixtureRepository) list(ctx context.Context, query string, args []any) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}
	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) error {
	insertModel := fixtureInsertModel{
		ID:         item.ID,
		LeagueID:   item.LeagueID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		Referee:    item.Referee,
		Round:      item.Round,
		Timezone:   item.Timezone,
		KickoffAt:  utc(item.KickoffAt),
		Timestamp:  item.Timestamp,
		Available:  item.Available,
	}
	query, args, err := qb.InsertModel("fixtures", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    referee = EXCLUDED.referee,
    round = EXCLUDED.round,
    timezone = EXCLUDED.timezone,
    kickoff_at = EXCLUDED.kickoff_at,
    timestamp = EXCLUDED.timestamp,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) SetAvailable(ctx context.Context, id int64, available bool) error {
	query, args, err := qb.Update("fixtures").
		Set("available", available).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set fixture available query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set fixture available: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("set fixture available: fixture=%d does not exist", id)
	}
	return nil
}

func (r *FixtureRepository) GetLiveStatus(ctx context.Context, fixtureID int64) (fixture.LiveStatus, bool, error) {
	query, args, err := qb.Select("*").From("fixture_live_status").
		Where(qb.Eq("fixture_id", fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.LiveStatus{}, false, fmt.Errorf("build select live status query: %w", err)
	}

	var row liveStatusTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.LiveStatus{}, false, nil
		}
		return fixture.LiveStatus{}, false, fmt.Errorf("select live status: %w", err)
	}
	return fixture.LiveStatus{
		FixtureID:   row.FixtureID,
		LongStatus:  row.LongStatus,
		ShortStatus: row.ShortStatus,
		Elapsed:     nullInt(row.Elapsed),
		HomeScore:   row.HomeScore,
		AwayScore:   row.AwayScore,
	}, true, nil
}

func (r *FixtureRepository) UpsertLiveStatus(ctx context.Context, status fixture.LiveStatus) error {
	insertModel := liveStatusTableModel{
		FixtureID:   status.FixtureID,
		LongStatus:  status.LongStatus,
		ShortStatus: status.ShortStatus,
		Elapsed:     toNullInt(status.Elapsed),
		HomeScore:   status.HomeScore,
		AwayScore:   status.AwayScore,
	}
	query, args, err := qb.InsertModel("fixture_live_status", insertModel, `ON CONFLICT (fixture_id)
DO UPDATE SET
    long_status = EXCLUDED.long_status,
    short_status = EXCLUDED.short_status,
    elapsed = EXCLUDED.elapsed,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score`)
	if err != nil {
		return fmt.Errorf("build upsert live status query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert live status: %w", err)
	}
	return nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.ID,
		LeagueID:   row.LeagueID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		Referee:    row.Referee,
		Round:      row.Round,
		Timezone:   row.Timezone,
		KickoffAt:  row.KickoffAt,
		Timestamp:  row.Timestamp,
		Available:  row.Available,
	}
}
