package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

type ScoringService struct {
	fixtureRepo fixture.Repository
	pickRepo    pick.Repository
	logger      *logging.Logger
	now         func() time.Time
}

type RecomputeResult struct {
	FixtureID      string
	Status         string
	Scored         bool
	PicksEvaluated int
	PicksUpdated   int
}

func NewScoringService(fixtureRepo fixture.Repository, pickRepo pick.Repository, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		fixtureRepo: fixtureRepo,
		pickRepo:    pickRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// RecomputeScoresForFixture rescores every pick linked to the fixture.
// Fixtures without a countable result leave picks unchanged.
func (s *ScoringService) RecomputeScoresForFixture(ctx context.Context, fixtureID string) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecomputeScoresForFixture")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return RecomputeResult{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	f, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return RecomputeResult{}, fmt.Errorf("%w: fixture=%s", ErrFixtureNotFound, fixtureID)
	}

	return s.recompute(ctx, f)
}

// ApplyFixtureResult stores a status or score update and rescores linked picks.
func (s *ScoringService) ApplyFixtureResult(ctx context.Context, fixtureID string, result fixture.Result) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ApplyFixtureResult")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return RecomputeResult{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	result.Status = fixture.NormalizeStatus(result.Status)
	if !fixture.ValidStatus(result.Status) {
		return RecomputeResult{}, fmt.Errorf("%w: unknown fixture status %q", ErrInvalidInput, result.Status)
	}
	if fixture.HasResult(result.Status) && (result.HomeScore == nil || result.AwayScore == nil) {
		return RecomputeResult{}, fmt.Errorf("%w: scores are required for status %s", ErrInvalidInput, result.Status)
	}
	if (result.HomeScore != nil && *result.HomeScore < 0) || (result.AwayScore != nil && *result.AwayScore < 0) {
		return RecomputeResult{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}

	if _, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID); err != nil {
		return RecomputeResult{}, fmt.Errorf("get fixture: %w", err)
	} else if !exists {
		return RecomputeResult{}, fmt.Errorf("%w: fixture=%s", ErrFixtureNotFound, fixtureID)
	}

	updated, err := s.fixtureRepo.UpdateResult(ctx, fixtureID, result)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("update fixture result: %w", err)
	}

	return s.recompute(ctx, updated)
}

func (s *ScoringService) recompute(ctx context.Context, f fixture.Fixture) (RecomputeResult, error) {
	result := RecomputeResult{
		FixtureID: f.ID,
		Status:    fixture.NormalizeStatus(f.Status),
		Scored:    fixture.HasResult(f.Status),
	}

	picks, err := s.pickRepo.ListByFixture(ctx, f.ID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list picks by fixture: %w", err)
	}
	result.PicksEvaluated = len(picks)
	if !result.Scored || len(picks) == 0 {
		return result, nil
	}

	scores := make([]pick.Score, 0, len(picks))
	for _, item := range picks {
		out, err := pick.Score(item.TeamID, f)
		if err != nil {
			s.logger.WarnContext(ctx, "skip pick not matching fixture",
				"pick_id", item.ID,
				"fixture_id", f.ID,
				"team_id", item.TeamID,
				"error", err,
			)
			continue
		}
		if !item.Apply(out) {
			continue
		}
		scores = append(scores, pick.Score{
			PickID:       item.ID,
			Points:       item.Points,
			GoalsFor:     item.GoalsFor,
			GoalsAgainst: item.GoalsAgainst,
		})
	}
	if len(scores) == 0 {
		return result, nil
	}

	if err := s.pickRepo.UpdateScores(ctx, scores, s.now()); err != nil {
		return RecomputeResult{}, fmt.Errorf("update pick scores: %w", err)
	}
	result.PicksUpdated = len(scores)

	s.logger.InfoContext(ctx, "pick scores recomputed",
		"fixture_id", f.ID,
		"status", result.Status,
		"evaluated", result.PicksEvaluated,
		"updated", result.PicksUpdated,
	)
	return result, nil
}
