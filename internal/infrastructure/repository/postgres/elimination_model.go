package postgres

import (
	"database/sql"
	"time"
)

const eliminationsUserSeasonConstraint = "user_eliminations_user_season_key"

type eliminationTableModel struct {
	PublicID       string         `db:"public_id"`
	UserID         string         `db:"user_id"`
	SeasonID       string         `db:"season_public_id"`
	GameweekNumber int            `db:"gameweek_number"`
	Position       int            `db:"position"`
	TotalPoints    int            `db:"total_points"`
	EliminatedBy   sql.NullString `db:"eliminated_by"`
	EliminatedAt   time.Time      `db:"eliminated_at"`
}

type participationTableModel struct {
	SeasonID    string `db:"season_public_id"`
	UserID      string `db:"user_id"`
	DisplayName string `db:"display_name"`
	IsApproved  bool   `db:"is_approved"`
}
