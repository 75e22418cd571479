package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/standing"
)

type StandingsService struct {
	seasonRepo        season.Repository
	fixtureRepo       fixture.Repository
	pickRepo          pick.Repository
	participationRepo participation.Repository
	eliminationRepo   elimination.Repository
}

func NewStandingsService(
	seasonRepo season.Repository,
	fixtureRepo fixture.Repository,
	pickRepo pick.Repository,
	participationRepo participation.Repository,
	eliminationRepo elimination.Repository,
) *StandingsService {
	return &StandingsService{
		seasonRepo:        seasonRepo,
		fixtureRepo:       fixtureRepo,
		pickRepo:          pickRepo,
		participationRepo: participationRepo,
		eliminationRepo:   eliminationRepo,
	}
}

// GetStandings returns the current table for all approved participants of a season.
func (s *StandingsService) GetStandings(ctx context.Context, seasonID string) ([]standing.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetStandings")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasonRepo.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrSeasonNotFound, seasonID)
	}

	participants, err := s.participationRepo.ListApproved(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list approved participants: %w", err)
	}

	return s.ComputeStandings(ctx, seasonID, participants)
}

// ComputeStandings folds the season's picks into a ranked table for the given participants.
// The table is a snapshot and is never stored.
func (s *StandingsService) ComputeStandings(ctx context.Context, seasonID string, participants []participation.SeasonParticipation) ([]standing.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ComputeStandings")
	defer span.End()

	if len(participants) == 0 {
		return []standing.Entry{}, nil
	}

	in := standing.Input{Participants: participants}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		picks, err := s.pickRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list season picks: %w", err)
		}
		in.Picks = picks
		return nil
	})
	p.Go(func(ctx context.Context) error {
		fixtures, err := s.fixtureRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list season fixtures: %w", err)
		}
		byID := make(map[string]fixture.Fixture, len(fixtures))
		for _, f := range fixtures {
			byID[f.ID] = f
		}
		in.Fixtures = byID
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.eliminationRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list season eliminations: %w", err)
		}
		in.Eliminations = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return standing.Build(in), nil
}
