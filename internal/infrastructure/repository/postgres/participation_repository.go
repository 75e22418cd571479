package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	qb "github.com/riskibarqy/last-man-standing/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) ListApproved(ctx context.Context, seasonID string) ([]participation.SeasonParticipation, error) {
	query, args, err := qb.Select("season_public_id", "user_id", "display_name", "is_approved").
		From("season_participations").
		Where(qb.Eq("season_public_id", seasonID), qb.Eq("is_approved", true)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select approved participations query: %w", err)
	}

	var rows []participationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select approved participations: %w", err)
	}

	out := make([]participation.SeasonParticipation, 0, len(rows))
	for _, row := range rows {
		out = append(out, participation.SeasonParticipation{
			SeasonID:    row.SeasonID,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			IsApproved:  row.IsApproved,
		})
	}
	return out, nil
}
