package postgres

import "time"

const picksSlotConstraint = "picks_user_season_gameweek_key"

type pickTableModel struct {
	PublicID       string    `db:"public_id"`
	UserID         string    `db:"user_id"`
	SeasonID       string    `db:"season_public_id"`
	GameweekNumber int       `db:"gameweek_number"`
	TeamID         string    `db:"team_public_id"`
	FixtureID      string    `db:"fixture_public_id"`
	Points         int       `db:"points"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	IsAutoAssigned bool      `db:"is_auto_assigned"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

var pickColumns = []string{
	"public_id",
	"user_id",
	"season_public_id",
	"gameweek_number",
	"team_public_id",
	"fixture_public_id",
	"points",
	"goals_for",
	"goals_against",
	"is_auto_assigned",
	"created_at",
	"updated_at",
}
