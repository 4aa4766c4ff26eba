package postgres

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-sync/internal/domain/cachelog"
	"github.com/riskibarqy/football-sync/internal/domain/league"
	"github.com/riskibarqy/football-sync/internal/domain/match"
	"github.com/riskibarqy/football-sync/internal/domain/player"
	"github.com/riskibarqy/football-sync/internal/domain/team"
	"github.com/riskibarqy/football-sync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "postgres")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestLeagueRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeagueRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM leagues WHERE id = $1 LIMIT 1")).
		WithArgs(int64(39)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_name", "logo", "current_season", "created_at", "updated_at"}).
			AddRow(int64(39), "Premier League", "EPL", "pl.png", int64(2025), now, now))

	got, ok, err := repo.GetByID(context.Background(), 39)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Premier League", got.Name)
	require.NotNil(t, got.DisplayName)
	assert.Equal(t, "EPL", *got.DisplayName)
	require.NotNil(t, got.CurrentSeason)
	assert.Equal(t, 2025, *got.CurrentSeason)
}

func TestLeagueRepository_GetByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeagueRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM leagues WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, ok, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLeagueRepository_GetByIDsEmpty(t *testing.T) {
	db, _ := newMockDB(t)
	got, err := NewLeagueRepository(db).GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLeagueRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeagueRepository(db)
	season := 2025

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leagues (id, name, display_name, logo, current_season) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id)")).
		WithArgs(int64(39), "Premier League", nil, "pl.png", int64(2025)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), league.League{ID: 39, Name: "Premier League", Logo: "pl.png", CurrentSeason: &season})
	require.NoError(t, err)
}

// newRecordingDB accepts any statement and exposes the conflict clause of the
// last one executed.
func newRecordingDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func() string) {
	t.Helper()
	var last string
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherFunc(func(_, actual string) error {
		last = actual
		return nil
	})))
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "postgres")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock, func() string {
		_, clause, found := strings.Cut(last, "ON CONFLICT")
		require.True(t, found, "statement has no conflict clause: %s", last)
		return clause
	}
}

func TestPlayerRepository_UpsertKeepsCuration(t *testing.T) {
	db, mock, conflictClause := newRecordingDB(t)
	nickname := "Starboy"

	mock.ExpectExec("INSERT INTO players").
		WithArgs(int64(7), "Bukayo Saka", "Starboy", "saka.png", "F", nil, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewPlayerRepository(db).Upsert(context.Background(), player.Player{
		ID:            7,
		Name:          "Bukayo Saka",
		DisplayName:   &nickname,
		Photo:         "saka.png",
		Position:      "F",
		PreventUnlink: true,
	})
	require.NoError(t, err)

	clause := conflictClause()
	assert.Contains(t, clause, "name = EXCLUDED.name")
	assert.Contains(t, clause, "number = EXCLUDED.number")
	assert.NotContains(t, clause, "display_name")
	assert.NotContains(t, clause, "prevent_unlink")
}

func TestTeamAndLeagueRepository_UpsertKeepDisplayName(t *testing.T) {
	db, mock, conflictClause := newRecordingDB(t)

	mock.ExpectExec("INSERT INTO teams").
		WithArgs(int64(42), "Arsenal", nil, "ars.png").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, NewTeamRepository(db).Upsert(context.Background(), team.Team{ID: 42, Name: "Arsenal", Logo: "ars.png"}))
	assert.NotContains(t, conflictClause(), "display_name")

	mock.ExpectExec("INSERT INTO leagues").
		WithArgs(int64(39), "Premier League", nil, "pl.png", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, NewLeagueRepository(db).Upsert(context.Background(), league.League{ID: 39, Name: "Premier League", Logo: "pl.png"}))
	assert.NotContains(t, conflictClause(), "display_name")
}

func TestPlayerRepository_SetPreventUnlink(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE players SET prevent_unlink = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, NewPlayerRepository(db).SetPreventUnlink(context.Background(), 7, true))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE players SET prevent_unlink = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(false, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := NewPlayerRepository(db).SetPreventUnlink(context.Background(), 8, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player=8")
}

func TestFixtureRepository_SetAvailableMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE fixtures SET available = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(true, int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewFixtureRepository(db).SetAvailable(context.Background(), 77, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fixture=77")
}

func TestMatchRepository_FindPlayerByNamePrefersLineup(t *testing.T) {
	db, mock := newMockDB(t)
	lineupID := int64(5)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM match_players WHERE fixture_id = $1 AND team_id = $2 AND player_id IS NULL AND unregistered_name = $3 ORDER BY lineup_id IS NULL, id LIMIT 1")).
		WithArgs(int64(10), int64(42), "J. Smith").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fixture_id", "team_id", "lineup_id", "player_id", "unregistered_name", "position", "grid", "number", "substitute"}).
			AddRow(int64(3), int64(10), int64(42), lineupID, nil, "J. Smith", "M", "2:3", int64(8), false))

	got, ok, err := NewMatchRepository(db).FindPlayerByName(context.Background(), 10, 42, "  J. Smith ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), got.ID)
	assert.False(t, got.Disposable())
	assert.Nil(t, got.PlayerID)
	require.NotNil(t, got.Number)
	assert.Equal(t, 8, *got.Number)
}

func TestMatchRepository_CreateEventReturnsID(t *testing.T) {
	db, mock := newMockDB(t)
	teamID := int64(42)
	ref := int64(3)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fixture_events (fixture_id, sequence, elapsed, extra, team_id, type, detail, comments, player_match_player_id, assist_match_player_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id")).
		WithArgs(int64(10), 0, 23, nil, teamID, "GOAL", "Normal Goal", nil, ref, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(900)))

	got, err := NewMatchRepository(db).CreateEvent(context.Background(), match.Event{
		FixtureID:   10,
		Elapsed:     23,
		TeamID:      &teamID,
		Type:        match.EventGoal,
		Detail:      "Normal Goal",
		PlayerRefID: &ref,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(900), got.ID)
}

func TestMatchRepository_CountEventReferences(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM fixture_events WHERE (player_match_player_id = $1 OR assist_match_player_id = $2)")).
		WithArgs(int64(3), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := NewMatchRepository(db).CountEventReferences(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCacheLogRepository_SaveEncodesSortedParams(t *testing.T) {
	db, mock := newMockDB(t)
	at := time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cache_log (cache_type, params, cached_at) VALUES ($1, $2, $3) ON CONFLICT (cache_type, params)")).
		WithArgs("FIXTURES_OF_LEAGUE", []byte(`{"leagueId":39,"season":2025}`), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewCacheLogRepository(db).Save(context.Background(), cachelog.Entry{
		Type:     cachelog.TypeFixturesOfLeague,
		Params:   map[string]any{"season": 2025, "leagueId": 39},
		CachedAt: at,
	})
	require.NoError(t, err)
}

func TestCacheLogRepository_GetMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM cache_log WHERE cache_type = $1 AND params = $2::jsonb LIMIT 1")).
		WithArgs("TEAM", []byte(`{"teamId":42}`)).
		WillReturnRows(sqlmock.NewRows([]string{"cache_type", "params", "cached_at"}))

	_, ok, err := NewCacheLogRepository(db).Get(context.Background(), cachelog.TypeTeam, map[string]any{"teamId": 42})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_WithinTxCommits(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fixture_events WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewStore(db).WithinTx(context.Background(), func(ctx context.Context, repos usecase.Repositories) error {
		return repos.Matches.DeleteEvent(ctx, 1)
	})
	require.NoError(t, err)
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := NewStore(db).WithinTx(context.Background(), func(context.Context, usecase.Repositories) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}
