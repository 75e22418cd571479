package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	qb "github.com/riskibarqy/last-man-standing/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetSeason(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("public_id", "start_date", "end_date", "is_active", "is_archived").
		From("seasons").
		Where(qb.Eq("public_id", seasonID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season: %w", err)
	}
	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) ListActiveSeasons(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("public_id", "start_date", "end_date", "is_active", "is_archived").
		From("seasons").
		Where(qb.Eq("is_active", true), qb.Eq("is_archived", false)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetGameweek(ctx context.Context, seasonID string, week int) (season.Gameweek, bool, error) {
	query, args, err := qb.Select(gameweekColumns...).
		From("gameweeks").
		Where(qb.Eq("season_public_id", seasonID), qb.Eq("number", week)).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Gameweek{}, false, fmt.Errorf("build select gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Gameweek{}, false, nil
		}
		return season.Gameweek{}, false, fmt.Errorf("select gameweek: %w", err)
	}
	return gameweekFromRow(row), true, nil
}

func (r *SeasonRepository) ListGameweeks(ctx context.Context, seasonID string) ([]season.Gameweek, error) {
	query, args, err := qb.Select(gameweekColumns...).
		From("gameweeks").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select gameweeks: %w", err)
	}

	out := make([]season.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetPickRule(ctx context.Context, seasonID string, half int) (season.PickRule, bool, error) {
	query, args, err := qb.Select("season_public_id", "half", "max_times_team_can_be_picked", "max_times_opposition_can_be_targeted").
		From("season_pick_rules").
		Where(qb.Eq("season_public_id", seasonID), qb.Eq("half", half)).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.PickRule{}, false, fmt.Errorf("build select pick rule query: %w", err)
	}

	var row pickRuleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.PickRule{}, false, nil
		}
		return season.PickRule{}, false, fmt.Errorf("select pick rule: %w", err)
	}
	return season.PickRule{
		SeasonID:                        row.SeasonID,
		Half:                            row.Half,
		MaxTimesTeamCanBePicked:         row.MaxTimesTeamCanBePicked,
		MaxTimesOppositionCanBeTargeted: row.MaxTimesOppositionCanBeTargeted,
	}, true, nil
}

func (r *SeasonRepository) UpsertPickRule(ctx context.Context, rule season.PickRule) error {
	query, args, err := qb.InsertModel("season_pick_rules", pickRuleTableModel{
		SeasonID:                        rule.SeasonID,
		Half:                            rule.Half,
		MaxTimesTeamCanBePicked:         rule.MaxTimesTeamCanBePicked,
		MaxTimesOppositionCanBeTargeted: rule.MaxTimesOppositionCanBeTargeted,
	}, `ON CONFLICT (season_public_id, half)
DO UPDATE SET
    max_times_team_can_be_picked = EXCLUDED.max_times_team_can_be_picked,
    max_times_opposition_can_be_targeted = EXCLUDED.max_times_opposition_can_be_targeted,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert pick rule query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert pick rule: %w", err)
	}
	return nil
}

func (r *SeasonRepository) UpdateEliminationCounts(ctx context.Context, seasonID string, counts map[int]int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update elimination counts: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for week, count := range counts {
		query, args, err := qb.Update("gameweeks").
			Set("elimination_count", count).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("season_public_id", seasonID), qb.Eq("number", week)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update elimination count query: %w", err)
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update elimination count week=%d: %w", week, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected update elimination count: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("update elimination count: gameweek not found season=%s week=%d", seasonID, week)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update elimination counts tx: %w", err)
	}
	return nil
}

// ClaimEliminationProcessing compares claim age against the database clock; now is unused.
func (r *SeasonRepository) ClaimEliminationProcessing(ctx context.Context, seasonID string, week int, _ time.Time, lease time.Duration) (season.Gameweek, error) {
	claimable := qb.Eq("elimination_state", season.EliminationNotProcessed)
	if lease > 0 {
		claimable = qb.Or(
			claimable,
			qb.All(
				qb.Eq("elimination_state", season.EliminationProcessing),
				qb.Expr("(elimination_claimed_at IS NULL OR elimination_claimed_at < NOW() - make_interval(secs => ?))", lease.Seconds()),
			),
		)
	}

	query, args, err := qb.Update("gameweeks").
		Set("elimination_state", season.EliminationProcessing).
		SetExpr("elimination_claimed_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("number", week),
			claimable,
		).
		Suffix("RETURNING " + joinColumns(gameweekColumns)).
		ToSQL()
	if err != nil {
		return season.Gameweek{}, fmt.Errorf("build claim gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return season.Gameweek{}, fmt.Errorf("claim gameweek: %w", err)
		}
		current, exists, getErr := r.GetGameweek(ctx, seasonID, week)
		if getErr != nil {
			return season.Gameweek{}, getErr
		}
		if !exists {
			return season.Gameweek{}, fmt.Errorf("claim gameweek: not found season=%s week=%d", seasonID, week)
		}
		return current, season.ErrClaimConflict
	}
	return gameweekFromRow(row), nil
}

func (r *SeasonRepository) CompleteEliminationProcessing(ctx context.Context, seasonID string, week int, processedAt time.Time, processedBy *string) error {
	query, args, err := qb.Update("gameweeks").
		Set("elimination_state", season.EliminationProcessed).
		Set("eliminations_processed_at", processedAt).
		Set("eliminations_processed_by", nullString(processedBy)).
		SetExpr("elimination_claimed_at", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("number", week),
			qb.Eq("elimination_state", season.EliminationProcessing),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build complete gameweek query: %w", err)
	}
	return r.execTransition(ctx, "complete gameweek elimination", query, args)
}

func (r *SeasonRepository) ReleaseEliminationProcessing(ctx context.Context, seasonID string, week int) error {
	query, args, err := qb.Update("gameweeks").
		Set("elimination_state", season.EliminationNotProcessed).
		SetExpr("elimination_claimed_at", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("number", week),
			qb.Eq("elimination_state", season.EliminationProcessing),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release gameweek query: %w", err)
	}
	return r.execTransition(ctx, "release gameweek elimination", query, args)
}

func (r *SeasonRepository) execTransition(ctx context.Context, op, query string, args []any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected %s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, season.ErrClaimConflict)
	}
	return nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:         row.PublicID,
		StartDate:  row.StartDate.Time,
		EndDate:    row.EndDate.Time,
		IsActive:   row.IsActive,
		IsArchived: row.IsArchived,
	}
}

func gameweekFromRow(row gameweekTableModel) season.Gameweek {
	return season.Gameweek{
		SeasonID:                row.SeasonID,
		Number:                  row.Number,
		Deadline:                row.Deadline,
		IsLocked:                row.IsLocked,
		EliminationCount:        row.EliminationCount,
		EliminationState:        row.EliminationState,
		EliminationClaimedAt:    timePtr(row.EliminationClaimedAt),
		EliminationsProcessedAt: timePtr(row.EliminationsProcessedAt),
		EliminationsProcessedBy: stringPtr(row.EliminationsProcessedBy),
	}
}

func joinColumns(cols []string) string {
	out := ""
	for i, col := range cols {
		if i > 0 {
			out += ", "
		}
		out += col
	}
	return out
}
