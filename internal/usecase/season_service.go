package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

type SeasonService struct {
	seasonRepo season.Repository
	logger     *logging.Logger
}

func NewSeasonService(seasonRepo season.Repository, logger *logging.Logger) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{seasonRepo: seasonRepo, logger: logger}
}

func (s *SeasonService) ListGameweeks(ctx context.Context, seasonID string) ([]season.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListGameweeks")
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	items, err := s.seasonRepo.ListGameweeks(ctx, strings.TrimSpace(seasonID))
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}
	return items, nil
}

// GetPickRules returns the rules of both halves, falling back to the default.
func (s *SeasonService) GetPickRules(ctx context.Context, seasonID string) ([]season.PickRule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetPickRules")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return nil, err
	}

	out := make([]season.PickRule, 0, 2)
	for _, half := range []int{season.HalfFirst, season.HalfSecond} {
		rule, exists, err := s.seasonRepo.GetPickRule(ctx, seasonID, half)
		if err != nil {
			return nil, fmt.Errorf("get pick rule: %w", err)
		}
		if !exists {
			rule = season.DefaultPickRule(seasonID, half)
		}
		out = append(out, rule)
	}
	return out, nil
}

func (s *SeasonService) SetPickRule(ctx context.Context, rule season.PickRule) (season.PickRule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SetPickRule")
	defer span.End()

	rule.SeasonID = strings.TrimSpace(rule.SeasonID)
	if err := rule.Validate(); err != nil {
		return season.PickRule{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if err := s.ensureSeason(ctx, rule.SeasonID); err != nil {
		return season.PickRule{}, err
	}
	if err := s.seasonRepo.UpsertPickRule(ctx, rule); err != nil {
		return season.PickRule{}, fmt.Errorf("upsert pick rule: %w", err)
	}

	s.logger.InfoContext(ctx, "pick rule updated",
		"season_id", rule.SeasonID,
		"half", rule.Half,
		"max_team_picks", rule.MaxTimesTeamCanBePicked,
		"max_opposition_targets", rule.MaxTimesOppositionCanBeTargeted,
	)
	return rule, nil
}

func (s *SeasonService) ensureSeason(ctx context.Context, seasonID string) error {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	_, exists, err := s.seasonRepo.GetSeason(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%s", ErrSeasonNotFound, seasonID)
	}
	return nil
}
