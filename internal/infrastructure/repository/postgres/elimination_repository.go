package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	qb "github.com/riskibarqy/last-man-standing/internal/platform/querybuilder"
)

type EliminationRepository struct {
	db *sqlx.DB
}

func NewEliminationRepository(db *sqlx.DB) *EliminationRepository {
	return &EliminationRepository{db: db}
}

func (r *EliminationRepository) ListBySeason(ctx context.Context, seasonID string) ([]elimination.UserElimination, error) {
	query, args, err := qb.Select(
		"public_id",
		"user_id",
		"season_public_id",
		"gameweek_number",
		"position",
		"total_points",
		"eliminated_by",
		"eliminated_at",
	).
		From("user_eliminations").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("gameweek_number", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select eliminations by season query: %w", err)
	}

	var rows []eliminationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select eliminations by season: %w", err)
	}

	out := make([]elimination.UserElimination, 0, len(rows))
	for _, row := range rows {
		out = append(out, elimination.UserElimination{
			ID:             row.PublicID,
			UserID:         row.UserID,
			SeasonID:       row.SeasonID,
			GameweekNumber: row.GameweekNumber,
			Position:       row.Position,
			TotalPoints:    row.TotalPoints,
			EliminatedBy:   stringPtr(row.EliminatedBy),
			EliminatedAt:   row.EliminatedAt,
		})
	}
	return out, nil
}

func (r *EliminationRepository) Create(ctx context.Context, item elimination.UserElimination) error {
	query, args, err := qb.InsertModel("user_eliminations", eliminationTableModel{
		PublicID:       item.ID,
		UserID:         item.UserID,
		SeasonID:       item.SeasonID,
		GameweekNumber: item.GameweekNumber,
		Position:       item.Position,
		TotalPoints:    item.TotalPoints,
		EliminatedBy:   nullString(item.EliminatedBy),
		EliminatedAt:   item.EliminatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert elimination query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == eliminationsUserSeasonConstraint {
			return fmt.Errorf("%w: user=%s season=%s", elimination.ErrAlreadyEliminated, item.UserID, item.SeasonID)
		}
		return fmt.Errorf("insert elimination: %w", err)
	}
	return nil
}
