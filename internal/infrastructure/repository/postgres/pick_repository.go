package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	qb "github.com/riskibarqy/last-man-standing/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

// Create inserts the pick. When opts.NotAfter is set the deadline is compared
// against the database clock inside the insert transaction.
func (r *PickRepository) Create(ctx context.Context, p pick.Pick, opts pick.CreateOptions) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if opts.NotAfter != nil {
		var open bool
		if err := tx.GetContext(ctx, &open, `SELECT NOW() <= $1::timestamptz`, opts.NotAfter.UTC()); err != nil {
			return fmt.Errorf("check pick deadline: %w", err)
		}
		if !open {
			return fmt.Errorf("%w: deadline=%s", pick.ErrDeadlinePassed, opts.NotAfter.UTC().Format(time.RFC3339))
		}
	}

	query, args, err := qb.InsertModel("picks", pickTableModel{
		PublicID:       p.ID,
		UserID:         p.UserID,
		SeasonID:       p.SeasonID,
		GameweekNumber: p.GameweekNumber,
		TeamID:         p.TeamID,
		FixtureID:      p.FixtureID,
		Points:         p.Points,
		GoalsFor:       p.GoalsFor,
		GoalsAgainst:   p.GoalsAgainst,
		IsAutoAssigned: p.IsAutoAssigned,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == picksSlotConstraint {
			return fmt.Errorf("%w: user=%s season=%s week=%d", pick.ErrPickExists, p.UserID, p.SeasonID, p.GameweekNumber)
		}
		return fmt.Errorf("insert pick: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create pick tx: %w", err)
	}
	return nil
}

func (r *PickRepository) GetByUserGameweek(ctx context.Context, userID, seasonID string, week int) (pick.Pick, bool, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("season_public_id", seasonID),
			qb.Eq("gameweek_number", week),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build select pick by user gameweek query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("select pick by user gameweek: %w", err)
	}
	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListByUserWeeks(ctx context.Context, userID, seasonID string, fromWeek, toWeek int) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("season_public_id", seasonID),
			qb.Between("gameweek_number", fromWeek, toWeek),
		).
		OrderBy("gameweek_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by user weeks query: %w", err)
	}
	return r.list(ctx, "select picks by user weeks", query, args)
}

func (r *PickRepository) ListBySeason(ctx context.Context, seasonID string) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("gameweek_number", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by season query: %w", err)
	}
	return r.list(ctx, "select picks by season", query, args)
}

func (r *PickRepository) ListByGameweek(ctx context.Context, seasonID string, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(qb.Eq("season_public_id", seasonID), qb.Eq("gameweek_number", week)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by gameweek query: %w", err)
	}
	return r.list(ctx, "select picks by gameweek", query, args)
}

func (r *PickRepository) ListByFixture(ctx context.Context, fixtureID string) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(qb.Eq("fixture_public_id", fixtureID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by fixture query: %w", err)
	}
	return r.list(ctx, "select picks by fixture", query, args)
}

func (r *PickRepository) UpdateScores(ctx context.Context, scores []pick.Score, updatedAt time.Time) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update pick scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, score := range scores {
		query, args, err := qb.Update("picks").
			Set("points", score.Points).
			Set("goals_for", score.GoalsFor).
			Set("goals_against", score.GoalsAgainst).
			Set("updated_at", updatedAt).
			Where(qb.Eq("public_id", score.PickID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update pick score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update pick score pick=%s: %w", score.PickID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update pick scores tx: %w", err)
	}
	return nil
}

func (r *PickRepository) Delete(ctx context.Context, pickID string) error {
	query, args, err := qb.DeleteFrom("picks").
		Where(qb.Eq("public_id", pickID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pick query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete pick: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete pick: pick not found id=%s", pickID)
	}
	return nil
}

func (r *PickRepository) list(ctx context.Context, op, query string, args []any) ([]pick.Pick, error) {
	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:             row.PublicID,
		UserID:         row.UserID,
		SeasonID:       row.SeasonID,
		GameweekNumber: row.GameweekNumber,
		TeamID:         row.TeamID,
		FixtureID:      row.FixtureID,
		Points:         row.Points,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		IsAutoAssigned: row.IsAutoAssigned,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
