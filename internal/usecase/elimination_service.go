package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/standing"
	"github.com/riskibarqy/last-man-standing/internal/platform/id"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

type EliminationService struct {
	seasonRepo        season.Repository
	participationRepo participation.Repository
	eliminationRepo   elimination.Repository
	standings         *StandingsService
	idGen             id.Generator
	logger            *logging.Logger
	now               func() time.Time
	claimLease        time.Duration
}

type EliminationResult struct {
	SeasonID          string
	GameweekNumber    int
	EliminationCount  int
	PlayersEliminated int
	Eliminated        []elimination.UserElimination
	// AlreadyProcessed is set when the gameweek had been finalized by an earlier run.
	AlreadyProcessed bool
}

type EliminationConfig struct {
	GameweekNumber   int
	Deadline         time.Time
	EliminationCount int
	State            string
	HasBeenProcessed bool
	EliminatedCount  int
	ProcessedAt      *time.Time
}

func NewEliminationService(
	seasonRepo season.Repository,
	participationRepo participation.Repository,
	eliminationRepo elimination.Repository,
	standings *StandingsService,
	idGen id.Generator,
	logger *logging.Logger,
) *EliminationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EliminationService{
		seasonRepo:        seasonRepo,
		participationRepo: participationRepo,
		eliminationRepo:   eliminationRepo,
		standings:         standings,
		idGen:             idGen,
		logger:            logger,
		now:               time.Now,
		claimLease:        season.DefaultEliminationClaimLease,
	}
}

// SetClaimLease sets how old a PROCESSING claim must be before a new run takes it over.
// Non-positive values keep the current lease.
func (s *EliminationService) SetClaimLease(lease time.Duration) {
	if lease > 0 {
		s.claimLease = lease
	}
}

// ProcessGameweekEliminations eliminates the lowest ranked remaining users of a gameweek.
// A gameweek is processed at most once; later calls report AlreadyProcessed.
func (s *EliminationService) ProcessGameweekEliminations(ctx context.Context, seasonID string, week int, adminID *string) (result EliminationResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EliminationService.ProcessGameweekEliminations")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return EliminationResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if !season.ValidWeek(week) {
		return EliminationResult{}, fmt.Errorf("%w: gameweek must be between %d and %d", ErrInvalidInput, season.MinWeek, season.MaxWeek)
	}
	if adminID != nil && strings.TrimSpace(*adminID) == "" {
		adminID = nil
	}

	if _, exists, err := s.seasonRepo.GetSeason(ctx, seasonID); err != nil {
		return EliminationResult{}, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return EliminationResult{}, fmt.Errorf("%w: season=%s", ErrSeasonNotFound, seasonID)
	}

	gw, exists, err := s.seasonRepo.GetGameweek(ctx, seasonID, week)
	if err != nil {
		return EliminationResult{}, fmt.Errorf("get gameweek: %w", err)
	}
	if !exists {
		return EliminationResult{}, fmt.Errorf("%w: season=%s week=%d", ErrGameweekNotFound, seasonID, week)
	}

	result = EliminationResult{
		SeasonID:         seasonID,
		GameweekNumber:   week,
		EliminationCount: gw.EliminationCount,
		Eliminated:       []elimination.UserElimination{},
	}
	if gw.EliminationsProcessed() {
		result.AlreadyProcessed = true
		return result, nil
	}

	now := s.now()
	claimed, err := s.seasonRepo.ClaimEliminationProcessing(ctx, seasonID, week, now, s.claimLease)
	if err != nil {
		if !errors.Is(err, season.ErrClaimConflict) {
			return EliminationResult{}, fmt.Errorf("claim gameweek elimination: %w", err)
		}
		if claimed.EliminationsProcessed() {
			result.AlreadyProcessed = true
			return result, nil
		}
		return EliminationResult{}, fmt.Errorf("%w: season=%s week=%d", ErrEliminationInProgress, seasonID, week)
	}
	result.EliminationCount = claimed.EliminationCount
	if gw.EliminationState == season.EliminationProcessing {
		s.logger.WarnContext(ctx, "took over stale elimination claim",
			"season_id", seasonID,
			"gameweek", week,
			"lease", s.claimLease.String(),
		)
	}

	defer func() {
		if err == nil {
			return
		}
		if releaseErr := s.seasonRepo.ReleaseEliminationProcessing(context.WithoutCancel(ctx), seasonID, week); releaseErr != nil {
			s.logger.ErrorContext(ctx, "release elimination claim failed",
				"season_id", seasonID,
				"gameweek", week,
				"error", releaseErr,
			)
		}
	}()

	if err := s.eliminate(ctx, claimed, adminID, &result); err != nil {
		return result, err
	}

	if err := s.seasonRepo.CompleteEliminationProcessing(ctx, seasonID, week, s.now(), adminID); err != nil {
		return result, fmt.Errorf("mark gameweek eliminations processed: %w", err)
	}

	s.logger.InfoContext(ctx, "gameweek eliminations processed",
		"season_id", seasonID,
		"gameweek", week,
		"elimination_count", result.EliminationCount,
		"eliminated", result.PlayersEliminated,
		"triggered_by", stringValue(adminID),
	)
	return result, nil
}

func (s *EliminationService) eliminate(ctx context.Context, gw season.Gameweek, adminID *string, result *EliminationResult) error {
	if gw.EliminationCount == 0 {
		return nil
	}

	participants, err := s.participationRepo.ListApproved(ctx, gw.SeasonID)
	if err != nil {
		return fmt.Errorf("list approved participants: %w", err)
	}
	entries, err := s.standings.ComputeStandings(ctx, gw.SeasonID, participants)
	if err != nil {
		return fmt.Errorf("compute standings: %w", err)
	}

	// Rows from an interrupted earlier run of this gameweek count toward its quota.
	already := 0
	for _, entry := range entries {
		if entry.IsEliminated && entry.EliminatedInGameweek != nil && *entry.EliminatedInGameweek == gw.Number {
			already++
		}
	}
	remaining := gw.EliminationCount - already
	active := standing.Active(entries)
	if remaining <= 0 || len(active) == 0 {
		return nil
	}
	if remaining > len(active) {
		remaining = len(active)
	}

	now := s.now()
	for _, entry := range active[len(active)-remaining:] {
		elimID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate elimination id: %w", err)
		}
		row := elimination.UserElimination{
			ID:             elimID,
			UserID:         entry.UserID,
			SeasonID:       gw.SeasonID,
			GameweekNumber: gw.Number,
			Position:       entry.Position,
			TotalPoints:    entry.TotalPoints,
			EliminatedBy:   adminID,
			EliminatedAt:   now,
		}
		if err := s.eliminationRepo.Create(ctx, row); err != nil {
			if errors.Is(err, elimination.ErrAlreadyEliminated) {
				s.logger.WarnContext(ctx, "user already eliminated, skipping",
					"season_id", gw.SeasonID,
					"gameweek", gw.Number,
					"user_id", entry.UserID,
				)
				continue
			}
			return fmt.Errorf("create elimination for user %s: %w", entry.UserID, err)
		}
		result.Eliminated = append(result.Eliminated, row)
		result.PlayersEliminated++
	}
	return nil
}

// BulkSetEliminationCounts updates elimination quotas for several gameweeks at once.
func (s *EliminationService) BulkSetEliminationCounts(ctx context.Context, seasonID string, counts map[int]int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EliminationService.BulkSetEliminationCounts")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if len(counts) == 0 {
		return fmt.Errorf("%w: at least one gameweek count is required", ErrInvalidInput)
	}
	for week, count := range counts {
		if !season.ValidWeek(week) {
			return fmt.Errorf("%w: gameweek %d out of range", ErrInvalidInput, week)
		}
		if count < 0 || count > season.MaxEliminationCount {
			return fmt.Errorf("%w: elimination count for gameweek %d must be between 0 and %d", ErrInvalidInput, week, season.MaxEliminationCount)
		}
	}

	if _, exists, err := s.seasonRepo.GetSeason(ctx, seasonID); err != nil {
		return fmt.Errorf("get season: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: season=%s", ErrSeasonNotFound, seasonID)
	}

	gameweeks, err := s.seasonRepo.ListGameweeks(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("list gameweeks: %w", err)
	}
	byNumber := make(map[int]season.Gameweek, len(gameweeks))
	for _, gw := range gameweeks {
		byNumber[gw.Number] = gw
	}
	for week := range counts {
		gw, ok := byNumber[week]
		if !ok {
			return fmt.Errorf("%w: season=%s week=%d", ErrGameweekNotFound, seasonID, week)
		}
		if gw.EliminationState != season.EliminationNotProcessed {
			return fmt.Errorf("%w: season=%s week=%d", ErrEliminationProcessed, seasonID, week)
		}
	}

	if err := s.seasonRepo.UpdateEliminationCounts(ctx, seasonID, counts); err != nil {
		return fmt.Errorf("update elimination counts: %w", err)
	}

	s.logger.InfoContext(ctx, "elimination counts updated", "season_id", seasonID, "gameweeks", len(counts))
	return nil
}

// GetEliminationConfig lists per-gameweek quotas and whether each was processed.
func (s *EliminationService) GetEliminationConfig(ctx context.Context, seasonID string) ([]EliminationConfig, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EliminationService.GetEliminationConfig")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if _, exists, err := s.seasonRepo.GetSeason(ctx, seasonID); err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrSeasonNotFound, seasonID)
	}

	gameweeks, err := s.seasonRepo.ListGameweeks(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}
	eliminations, err := s.eliminationRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list eliminations: %w", err)
	}
	perWeek := make(map[int]int, len(gameweeks))
	for _, item := range eliminations {
		perWeek[item.GameweekNumber]++
	}

	out := make([]EliminationConfig, 0, len(gameweeks))
	for _, gw := range gameweeks {
		out = append(out, EliminationConfig{
			GameweekNumber:   gw.Number,
			Deadline:         gw.Deadline,
			EliminationCount: gw.EliminationCount,
			State:            gw.EliminationState,
			HasBeenProcessed: gw.EliminationsProcessed(),
			EliminatedCount:  perWeek[gw.Number],
			ProcessedAt:      gw.EliminationsProcessedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameweekNumber < out[j].GameweekNumber })
	return out, nil
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
