package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	PublicID       string        `db:"public_id"`
	SeasonID       string        `db:"season_public_id"`
	GameweekNumber int           `db:"gameweek_number"`
	HomeTeamID     string        `db:"home_team_public_id"`
	AwayTeamID     string        `db:"away_team_public_id"`
	HomeScore      sql.NullInt64 `db:"home_score"`
	AwayScore      sql.NullInt64 `db:"away_score"`
	KickoffAt      time.Time     `db:"kickoff_at"`
	Status         string        `db:"status"`
}

var fixtureColumns = []string{
	"public_id",
	"season_public_id",
	"gameweek_number",
	"home_team_public_id",
	"away_team_public_id",
	"home_score",
	"away_score",
	"kickoff_at",
	"status",
}
