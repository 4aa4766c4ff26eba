package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq("league_id", int64(39)), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM teams WHERE league_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10", query)
	assert.Equal(t, []any{int64(39)}, args)
}

func TestSelectBuilder_InAndExpr(t *testing.T) {
	query, args, err := Select("*").
		From("fixture_events").
		Where(In("id", []int64{1, 2}), Expr("sequence >= ?", 3)).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM fixture_events WHERE id IN ($1, $2) AND sequence >= $3", query)
	assert.Equal(t, []any{int64(1), int64(2), 3}, args)
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("*").From("teams").Where(In("id", []int64{})).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM teams WHERE 1=0", query)
	assert.Empty(t, args)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("league_teams").
		Columns("league_id", "team_id").
		Values(int64(39), int64(50)).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO league_teams (league_id, team_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", query)
	assert.Equal(t, []any{int64(39), int64(50)}, args)
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("id", "name").Values(1).ToSQL()
	require.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		Set("name", "Arsenal").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(42))).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE teams SET name = $1, updated_at = NOW() WHERE id = $2", query)
	assert.Equal(t, []any{"Arsenal", int64(42)}, args)
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("team_players").
		Where(Eq("team_id", int64(1)), Eq("player_id", int64(2))).
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM team_players WHERE team_id = $1 AND player_id = $2", query)
	assert.Equal(t, []any{int64(1), int64(2)}, args)

	_, _, err = DeleteFrom("team_players").ToSQL()
	require.Error(t, err)
}

func TestUpdateModel(t *testing.T) {
	type row struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
		skip string
	}

	query, args, err := UpdateModel("teams", row{ID: 7, Name: "Chelsea", skip: "x"}, "id")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE teams SET name = $1 WHERE id = $2", query)
	assert.Equal(t, []any{"Chelsea", int64(7)}, args)

	_, _, err = UpdateModel("teams", row{ID: 7}, "missing")
	require.Error(t, err)
}
