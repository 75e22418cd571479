package querybuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	query, args, err := Select("public_id", "team_public_id").
		From("picks").
		Where(Eq("season_public_id", "2024/25"), Eq("user_id", "u-1"), IsNull("deleted_at")).
		OrderBy("gameweek_number ASC").
		Limit(38).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT public_id, team_public_id FROM picks WHERE season_public_id = $1 AND user_id = $2 AND deleted_at IS NULL ORDER BY gameweek_number ASC LIMIT 38", query)
	assert.Equal(t, []any{"2024/25", "u-1"}, args)

	_, _, err = Select().From("picks").ToSQL()
	assert.Error(t, err)
}

func TestBetweenAndIn(t *testing.T) {
	query, args, err := Select("public_id").
		From("picks").
		Where(Eq("user_id", "u-1"), Between("gameweek_number", 1, 19), In("team_public_id", []any{"ars", "che"})).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT public_id FROM picks WHERE user_id = $1 AND gameweek_number BETWEEN $2 AND $3 AND team_public_id IN ($4, $5)", query)
	assert.Equal(t, []any{"u-1", 1, 19, "ars", "che"}, args)
}

func TestIn_EmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("public_id").From("teams").Where(In("public_id", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT public_id FROM teams WHERE FALSE", query)
	assert.Empty(t, args)
}

func TestInsert(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("public_id", "name").
		Values("ars", "Arsenal").
		Suffix("ON CONFLICT (public_id) DO NOTHING").
		ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO teams (public_id, name) VALUES ($1, $2) ON CONFLICT (public_id) DO NOTHING", query)
	assert.Equal(t, []any{"ars", "Arsenal"}, args)

	_, _, err = InsertInto("teams").Columns("public_id", "name").Values("ars").ToSQL()
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	query, args, err := Update("gameweeks").
		Set("elimination_state", "PROCESSING").
		SetExpr("updated_at", "NOW()").
		Where(Eq("season_public_id", "2024/25"), Eq("number", 3)).
		Suffix("RETURNING number").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE gameweeks SET elimination_state = $1, updated_at = NOW() WHERE season_public_id = $2 AND number = $3 RETURNING number", query)
	assert.Equal(t, []any{"PROCESSING", "2024/25", 3}, args)

	_, _, err = Update("gameweeks").Set("elimination_count", 1).ToSQL()
	assert.Error(t, err, "unconditional update")
}

func TestDelete(t *testing.T) {
	query, args, err := DeleteFrom("picks").Where(Eq("public_id", "p1")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM picks WHERE public_id = $1", query)
	assert.Equal(t, []any{"p1"}, args)

	_, _, err = DeleteFrom("picks").ToSQL()
	assert.Error(t, err, "unconditional delete")
}

type pickRow struct {
	PublicID  string    `db:"public_id"`
	TeamID    string    `db:"team_public_id,omitempty"`
	CreatedAt time.Time `db:"created_at"`
	Skipped   string    `db:"-"`
	Untagged  string
	internal  string
}

func TestInsertModel(t *testing.T) {
	created := time.Date(2024, 8, 16, 9, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("picks", &pickRow{PublicID: "p1", TeamID: "ars", CreatedAt: created, internal: "x"}, "RETURNING id")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO picks (public_id, team_public_id, created_at) VALUES ($1, $2, $3) RETURNING id", query)
	assert.Equal(t, []any{"p1", "ars", created}, args)

	_, _, err = InsertModel("picks", (*pickRow)(nil), "")
	assert.Error(t, err)
	_, _, err = InsertModel("picks", 42, "")
	assert.Error(t, err)
}

func TestOrGroupsWithExpr(t *testing.T) {
	query, args, err := Update("gameweeks").
		Set("elimination_state", "PROCESSING").
		Where(
			Eq("number", 3),
			Or(
				Eq("elimination_state", "NOT_PROCESSED"),
				All(Eq("elimination_state", "PROCESSING"), Expr("elimination_claimed_at < NOW() - make_interval(secs => ?)", 600.0)),
			),
		).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE gameweeks SET elimination_state = $1 WHERE number = $2 AND (elimination_state = $3 OR (elimination_state = $4 AND elimination_claimed_at < NOW() - make_interval(secs => $5)))", query)
	assert.Equal(t, []any{"PROCESSING", 3, "NOT_PROCESSED", "PROCESSING", 600.0}, args)
}
