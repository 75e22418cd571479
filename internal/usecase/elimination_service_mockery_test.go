package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	eliminationmock "github.com/riskibarqy/last-man-standing/internal/mocks/domain/elimination"
	fixturemock "github.com/riskibarqy/last-man-standing/internal/mocks/domain/fixture"
	participationmock "github.com/riskibarqy/last-man-standing/internal/mocks/domain/participation"
	pickmock "github.com/riskibarqy/last-man-standing/internal/mocks/domain/pick"
	seasonmock "github.com/riskibarqy/last-man-standing/internal/mocks/domain/season"
	"github.com/stretchr/testify/mock"
)

func TestEliminationService_ClaimConflictUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	participationRepo := participationmock.NewRepository(t)
	eliminationRepo := eliminationmock.NewRepository(t)
	service := NewEliminationService(seasonRepo, participationRepo, eliminationRepo, nil, &sequenceIDGenerator{prefix: "e"}, nil)

	gw := season.Gameweek{SeasonID: testSeasonID, Number: 5, EliminationCount: 2, EliminationState: season.EliminationNotProcessed}
	seasonRepo.
		On("GetSeason", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), testSeasonID).
		Return(season.Season{ID: testSeasonID}, true, nil).
		Once()
	seasonRepo.
		On("GetGameweek", mock.Anything, testSeasonID, 5).
		Return(gw, true, nil).
		Once()

	// Another run finished between the read and the claim.
	processed := gw
	processed.EliminationState = season.EliminationProcessed
	seasonRepo.
		On("ClaimEliminationProcessing", mock.Anything, testSeasonID, 5, mock.AnythingOfType("time.Time"), season.DefaultEliminationClaimLease).
		Return(processed, season.ErrClaimConflict).
		Once()

	result, err := service.ProcessGameweekEliminations(ctx, testSeasonID, 5, nil)
	if err != nil {
		t.Fatalf("process eliminations: %v", err)
	}
	if !result.AlreadyProcessed || result.PlayersEliminated != 0 {
		t.Fatalf("expected already processed result, got %+v", result)
	}
}

func TestEliminationService_ReleasesClaimOnFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	participationRepo := participationmock.NewRepository(t)
	eliminationRepo := eliminationmock.NewRepository(t)
	service := NewEliminationService(seasonRepo, participationRepo, eliminationRepo, nil, &sequenceIDGenerator{prefix: "e"}, nil)

	gw := season.Gameweek{SeasonID: testSeasonID, Number: 5, EliminationCount: 1, EliminationState: season.EliminationNotProcessed}
	claimed := gw
	claimed.EliminationState = season.EliminationProcessing
	dbErr := errors.New("connection refused")

	seasonRepo.On("GetSeason", mock.Anything, testSeasonID).Return(season.Season{ID: testSeasonID}, true, nil).Once()
	seasonRepo.On("GetGameweek", mock.Anything, testSeasonID, 5).Return(gw, true, nil).Once()
	seasonRepo.On("ClaimEliminationProcessing", mock.Anything, testSeasonID, 5, mock.Anything, season.DefaultEliminationClaimLease).Return(claimed, nil).Once()
	participationRepo.On("ListApproved", mock.Anything, testSeasonID).Return(nil, dbErr).Once()
	seasonRepo.On("ReleaseEliminationProcessing", mock.Anything, testSeasonID, 5).Return(nil).Once()

	_, err := service.ProcessGameweekEliminations(ctx, testSeasonID, 5, nil)
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestScoringService_UpdateFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	pickRepo := pickmock.NewRepository(t)
	service := NewScoringService(fixtureRepo, pickRepo, nil)
	service.now = func() time.Time { return weekDeadline(1) }

	f := fixture.Fixture{
		ID: "gw1-home-away", SeasonID: testSeasonID, GameweekNumber: 1,
		HomeTeamID: "home", AwayTeamID: "away", Status: fixture.StatusFinished,
		HomeScore: intPtr(1), AwayScore: intPtr(1),
	}
	fixtureRepo.On("GetByID", mock.Anything, f.ID).Return(f, true, nil).Once()
	pickRepo.
		On("ListByFixture", mock.Anything, f.ID).
		Return([]pick.Pick{{ID: "p1", UserID: "alice", TeamID: "home", FixtureID: f.ID}}, nil).
		Once()
	pickRepo.
		On("UpdateScores", mock.Anything, mock.MatchedBy(func(scores []pick.Score) bool {
			return len(scores) == 1 && scores[0].PickID == "p1" && scores[0].Points == pick.PointsDraw
		}), weekDeadline(1)).
		Return(errors.New("deadlock detected")).
		Once()

	if _, err := service.RecomputeScoresForFixture(ctx, f.ID); err == nil {
		t.Fatalf("expected update failure to surface")
	}
}
