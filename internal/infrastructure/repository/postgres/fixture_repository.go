package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	qb "github.com/riskibarqy/last-man-standing/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From("fixtures").
		Where(qb.Eq("public_id", fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}
	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, seasonID string, week int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From("fixtures").
		Where(qb.Eq("season_public_id", seasonID), qb.Eq("gameweek_number", week)).
		OrderBy("kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by gameweek query: %w", err)
	}
	return r.list(ctx, "select fixtures by gameweek", query, args)
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From("fixtures").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("gameweek_number", "kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by season query: %w", err)
	}
	return r.list(ctx, "select fixtures by season", query, args)
}

func (r *FixtureRepository) UpdateResult(ctx context.Context, fixtureID string, result fixture.Result) (fixture.Fixture, error) {
	query, args, err := qb.Update("fixtures").
		Set("status", fixture.NormalizeStatus(result.Status)).
		Set("home_score", nullInt(result.HomeScore)).
		Set("away_score", nullInt(result.AwayScore)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", fixtureID)).
		Suffix("RETURNING " + joinColumns(fixtureColumns)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("build update fixture result query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, fmt.Errorf("update fixture result: fixture not found id=%s", fixtureID)
		}
		return fixture.Fixture{}, fmt.Errorf("update fixture result: %w", err)
	}
	return fixtureFromRow(row), nil
}

func (r *FixtureRepository) list(ctx context.Context, op, query string, args []any) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:             row.PublicID,
		SeasonID:       row.SeasonID,
		GameweekNumber: row.GameweekNumber,
		HomeTeamID:     row.HomeTeamID,
		AwayTeamID:     row.AwayTeamID,
		HomeScore:      intPtr(row.HomeScore),
		AwayScore:      intPtr(row.AwayScore),
		KickoffAt:      row.KickoffAt,
		Status:         fixture.NormalizeStatus(row.Status),
	}
}
