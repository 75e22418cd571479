package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/team"
)

// pickEvaluator gathers what pick.Validate needs from storage.
type pickEvaluator struct {
	seasonRepo  season.Repository
	fixtureRepo fixture.Repository
	teamRepo    team.Repository
	pickRepo    pick.Repository
}

// pickOption is one team a user could pick in a gameweek.
type pickOption struct {
	team     team.Team
	fixture  fixture.Fixture
	opponent string
}

func (e pickEvaluator) loadGameweek(ctx context.Context, seasonID string, week int) (season.Season, season.Gameweek, error) {
	item, exists, err := e.seasonRepo.GetSeason(ctx, seasonID)
	if err != nil {
		return season.Season{}, season.Gameweek{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, season.Gameweek{}, fmt.Errorf("%w: season=%s", ErrSeasonNotFound, seasonID)
	}

	gw, exists, err := e.seasonRepo.GetGameweek(ctx, seasonID, week)
	if err != nil {
		return season.Season{}, season.Gameweek{}, fmt.Errorf("get gameweek: %w", err)
	}
	if !exists {
		return season.Season{}, season.Gameweek{}, fmt.Errorf("%w: season=%s week=%d", ErrGameweekNotFound, seasonID, week)
	}

	return item, gw, nil
}

// rule returns the configured pick rule for a half or the default one.
func (e pickEvaluator) rule(ctx context.Context, seasonID string, half int) (season.PickRule, error) {
	rule, exists, err := e.seasonRepo.GetPickRule(ctx, seasonID, half)
	if err != nil {
		return season.PickRule{}, fmt.Errorf("get pick rule: %w", err)
	}
	if !exists {
		return season.DefaultPickRule(seasonID, half), nil
	}
	return rule, nil
}

// priorInHalf resolves the user's other picks in the same half against their fixtures.
func (e pickEvaluator) priorInHalf(ctx context.Context, userID, seasonID string, week int) ([]pick.Prior, error) {
	from, to := season.WeekRange(season.HalfOf(week))
	picks, err := e.pickRepo.ListByUserWeeks(ctx, userID, seasonID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list picks in half: %w", err)
	}

	out := make([]pick.Prior, 0, len(picks))
	for _, item := range picks {
		if item.GameweekNumber == week {
			continue
		}
		prior := pick.Prior{GameweekNumber: item.GameweekNumber, TeamID: item.TeamID}
		f, exists, err := e.fixtureRepo.GetByID(ctx, item.FixtureID)
		if err != nil {
			return nil, fmt.Errorf("get fixture for pick %s: %w", item.ID, err)
		}
		if exists {
			prior.OpponentTeamID, _ = f.OpponentOf(item.TeamID)
		}
		out = append(out, prior)
	}
	return out, nil
}

// options lists teams playing in the gameweek, ordered by team id.
// Postponed and cancelled fixtures are skipped.
func (e pickEvaluator) options(ctx context.Context, seasonID string, week int) ([]pickOption, error) {
	fixtures, err := e.fixtureRepo.ListByGameweek(ctx, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("list gameweek fixtures: %w", err)
	}

	byTeam := make(map[string]pickOption, len(fixtures)*2)
	teamIDs := make([]string, 0, len(fixtures)*2)
	for _, f := range fixtures {
		if fixture.IsCancelledLikeStatus(f.Status) {
			continue
		}
		for _, side := range [2][2]string{{f.HomeTeamID, f.AwayTeamID}, {f.AwayTeamID, f.HomeTeamID}} {
			if _, dup := byTeam[side[0]]; dup {
				continue
			}
			byTeam[side[0]] = pickOption{fixture: f, opponent: side[1]}
			teamIDs = append(teamIDs, side[0])
		}
	}
	if len(teamIDs) == 0 {
		return nil, nil
	}

	teams, err := e.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list gameweek teams: %w", err)
	}

	out := make([]pickOption, 0, len(teams))
	for _, t := range teams {
		opt, ok := byTeam[t.ID]
		if !ok {
			continue
		}
		opt.team = t
		out = append(out, opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].team.ID < out[j].team.ID })
	return out, nil
}

func candidateFor(opt *pickOption, teamID string, gw season.Gameweek, rule season.PickRule, prior []pick.Prior, now time.Time, bypass bool) pick.Candidate {
	c := pick.Candidate{
		TeamID:         teamID,
		Deadline:       gw.Deadline,
		Now:            now,
		BypassDeadline: bypass,
		Rule:           rule,
		PriorInHalf:    prior,
	}
	if opt != nil {
		c.OpponentTeamID = opt.opponent
		c.TeamActive = opt.team.IsActive
		c.HasFixture = true
	}
	return c
}
