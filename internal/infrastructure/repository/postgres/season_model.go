package postgres

import (
	"database/sql"
	"time"
)

type seasonTableModel struct {
	PublicID   string       `db:"public_id"`
	StartDate  sql.NullTime `db:"start_date"`
	EndDate    sql.NullTime `db:"end_date"`
	IsActive   bool         `db:"is_active"`
	IsArchived bool         `db:"is_archived"`
}

type gameweekTableModel struct {
	SeasonID                string         `db:"season_public_id"`
	Number                  int            `db:"number"`
	Deadline                time.Time      `db:"deadline"`
	IsLocked                bool           `db:"is_locked"`
	EliminationCount        int            `db:"elimination_count"`
	EliminationState        string         `db:"elimination_state"`
	EliminationClaimedAt    sql.NullTime   `db:"elimination_claimed_at"`
	EliminationsProcessedAt sql.NullTime   `db:"eliminations_processed_at"`
	EliminationsProcessedBy sql.NullString `db:"eliminations_processed_by"`
}

type pickRuleTableModel struct {
	SeasonID                        string `db:"season_public_id"`
	Half                            int    `db:"half"`
	MaxTimesTeamCanBePicked         int    `db:"max_times_team_can_be_picked"`
	MaxTimesOppositionCanBeTargeted int    `db:"max_times_opposition_can_be_targeted"`
}

var gameweekColumns = []string{
	"season_public_id",
	"number",
	"deadline",
	"is_locked",
	"elimination_count",
	"elimination_state",
	"elimination_claimed_at",
	"eliminations_processed_at",
	"eliminations_processed_by",
}
