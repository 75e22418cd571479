package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads ds into an empty database. It is a no-op once any season exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, ds memory.Dataset) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, query string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(query, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, s := range ds.Seasons {
		if err := exec("season "+s.ID, `
INSERT INTO seasons (public_id, start_date, end_date, is_active, is_archived)
VALUES (:public_id, :start_date, :end_date, :is_active, :is_archived)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":   s.ID,
			"start_date":  nullTime(s.StartDate),
			"end_date":    nullTime(s.EndDate),
			"is_active":   s.IsActive,
			"is_archived": s.IsArchived,
		}); err != nil {
			return err
		}
	}

	for _, g := range ds.Gameweeks {
		state := g.EliminationState
		if state == "" {
			state = season.EliminationNotProcessed
		}
		if err := exec(fmt.Sprintf("gameweek %s/%d", g.SeasonID, g.Number), `
INSERT INTO gameweeks (season_public_id, number, deadline, is_locked, elimination_count, elimination_state)
VALUES (:season_public_id, :number, :deadline, :is_locked, :elimination_count, :elimination_state)
ON CONFLICT (season_public_id, number) DO NOTHING`, map[string]any{
			"season_public_id":  g.SeasonID,
			"number":            g.Number,
			"deadline":          g.Deadline.UTC(),
			"is_locked":         g.IsLocked,
			"elimination_count": g.EliminationCount,
			"elimination_state": state,
		}); err != nil {
			return err
		}
	}

	for _, r := range ds.PickRules {
		if err := exec(fmt.Sprintf("pick rule %s/%d", r.SeasonID, r.Half), `
INSERT INTO season_pick_rules (season_public_id, half, max_times_team_can_be_picked, max_times_opposition_can_be_targeted)
VALUES (:season_public_id, :half, :max_team, :max_opposition)
ON CONFLICT (season_public_id, half) DO NOTHING`, map[string]any{
			"season_public_id": r.SeasonID,
			"half":             r.Half,
			"max_team":         r.MaxTimesTeamCanBePicked,
			"max_opposition":   r.MaxTimesOppositionCanBeTargeted,
		}); err != nil {
			return err
		}
	}

	for _, t := range ds.Teams {
		if err := exec("team "+t.ID, `
INSERT INTO teams (public_id, name, short_name, is_active)
VALUES (:public_id, :name, :short_name, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  t.ID,
			"name":       t.Name,
			"short_name": t.ShortName,
			"is_active":  t.IsActive,
		}); err != nil {
			return err
		}
	}

	for _, f := range ds.Fixtures {
		if err := exec("fixture "+f.ID, `
INSERT INTO fixtures (public_id, season_public_id, gameweek_number, home_team_public_id, away_team_public_id, home_score, away_score, kickoff_at, status)
VALUES (:public_id, :season_public_id, :gameweek_number, :home_team, :away_team, :home_score, :away_score, :kickoff_at, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        f.ID,
			"season_public_id": f.SeasonID,
			"gameweek_number":  f.GameweekNumber,
			"home_team":        f.HomeTeamID,
			"away_team":        f.AwayTeamID,
			"home_score":       nullInt(f.HomeScore),
			"away_score":       nullInt(f.AwayScore),
			"kickoff_at":       f.KickoffAt.UTC(),
			"status":           f.Status,
		}); err != nil {
			return err
		}
	}

	for _, p := range ds.Participations {
		if err := exec("participation "+p.UserID, `
INSERT INTO season_participations (season_public_id, user_id, display_name, is_approved)
VALUES (:season_public_id, :user_id, :display_name, :is_approved)
ON CONFLICT (season_public_id, user_id) DO NOTHING`, map[string]any{
			"season_public_id": p.SeasonID,
			"user_id":          p.UserID,
			"display_name":     p.DisplayName,
			"is_approved":      p.IsApproved,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
