package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/team"
	"github.com/riskibarqy/last-man-standing/internal/platform/id"
	"github.com/riskibarqy/last-man-standing/internal/platform/keylock"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

type CreatePickInput struct {
	UserID         string
	SeasonID       string
	GameweekNumber int
	TeamID         string
}

// PickView is a pick together with the state of its fixture.
type PickView struct {
	Pick           pick.Pick
	OpponentTeamID string
	FixtureStatus  string
	Played         bool
}

type PickService struct {
	eval   pickEvaluator
	idGen  id.Generator
	locks  *keylock.Locker
	logger *logging.Logger
	now    func() time.Time
}

func NewPickService(
	seasonRepo season.Repository,
	fixtureRepo fixture.Repository,
	teamRepo team.Repository,
	pickRepo pick.Repository,
	idGen id.Generator,
	locks *keylock.Locker,
	logger *logging.Logger,
) *PickService {
	if locks == nil {
		locks = keylock.New()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PickService{
		eval: pickEvaluator{
			seasonRepo:  seasonRepo,
			fixtureRepo: fixtureRepo,
			teamRepo:    teamRepo,
			pickRepo:    pickRepo,
		},
		idGen:  idGen,
		locks:  locks,
		logger: logger,
		now:    time.Now,
	}
}

// ValidateAndCreatePick stores a user's pick if every rule accepts it.
// Resubmitting the same team returns the stored pick.
func (s *PickService) ValidateAndCreatePick(ctx context.Context, input CreatePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ValidateAndCreatePick")
	defer span.End()

	return s.createPick(ctx, input, false)
}

// CreatePickForUser is the admin override path. Only the deadline check is skipped.
func (s *PickService) CreatePickForUser(ctx context.Context, adminID string, input CreatePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.CreatePickForUser")
	defer span.End()

	if strings.TrimSpace(adminID) == "" {
		return pick.Pick{}, fmt.Errorf("%w: admin id is required", ErrUnauthorized)
	}
	out, err := s.createPick(ctx, input, true)
	if err != nil {
		return pick.Pick{}, err
	}
	s.logger.InfoContext(ctx, "pick created by admin override",
		"admin_id", adminID,
		"user_id", out.UserID,
		"season_id", out.SeasonID,
		"gameweek", out.GameweekNumber,
		"team_id", out.TeamID,
	)
	return out, nil
}

func (s *PickService) createPick(ctx context.Context, input CreatePickInput, bypassDeadline bool) (pick.Pick, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.SeasonID = strings.TrimSpace(input.SeasonID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	switch {
	case input.UserID == "":
		return pick.Pick{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case input.SeasonID == "":
		return pick.Pick{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	case !season.ValidWeek(input.GameweekNumber):
		return pick.Pick{}, fmt.Errorf("%w: gameweek must be between %d and %d", ErrInvalidInput, season.MinWeek, season.MaxWeek)
	case input.TeamID == "":
		return pick.Pick{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, gw, err := s.eval.loadGameweek(ctx, input.SeasonID, input.GameweekNumber)
	if err != nil {
		return pick.Pick{}, err
	}

	unlock := s.locks.Lock(userLockKey(input.UserID, input.SeasonID))
	defer unlock()

	existing, exists, err := s.eval.pickRepo.GetByUserGameweek(ctx, input.UserID, input.SeasonID, input.GameweekNumber)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get existing pick: %w", err)
	}
	if exists {
		return resolveDuplicate(existing, input.TeamID)
	}

	if _, found, err := s.eval.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		return pick.Pick{}, fmt.Errorf("get team: %w", err)
	} else if !found {
		return pick.Pick{}, fmt.Errorf("%w: team=%s", ErrTeamNotFound, input.TeamID)
	}

	options, err := s.eval.options(ctx, input.SeasonID, input.GameweekNumber)
	if err != nil {
		return pick.Pick{}, err
	}
	var chosen *pickOption
	for i := range options {
		if options[i].team.ID == input.TeamID {
			chosen = &options[i]
			break
		}
	}

	rule, err := s.eval.rule(ctx, input.SeasonID, gw.Half())
	if err != nil {
		return pick.Pick{}, err
	}
	prior, err := s.eval.priorInHalf(ctx, input.UserID, input.SeasonID, input.GameweekNumber)
	if err != nil {
		return pick.Pick{}, err
	}

	now := s.now()
	if gw.IsLocked && !bypassDeadline {
		return pick.Pick{}, fmt.Errorf("%w: gameweek %d is locked", pick.ErrDeadlinePassed, gw.Number)
	}
	if err := pick.Validate(candidateFor(chosen, input.TeamID, gw, rule, prior, now, bypassDeadline)); err != nil {
		return pick.Pick{}, err
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}
	item := pick.Pick{
		ID:             pickID,
		UserID:         input.UserID,
		SeasonID:       input.SeasonID,
		GameweekNumber: input.GameweekNumber,
		TeamID:         input.TeamID,
		FixtureID:      chosen.fixture.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if out, err := pick.Score(item.TeamID, chosen.fixture); err == nil {
		item.Apply(out)
	}

	opts := pick.CreateOptions{}
	if !bypassDeadline {
		deadline := gw.Deadline
		opts.NotAfter = &deadline
	}
	if err := s.eval.pickRepo.Create(ctx, item, opts); err != nil {
		if errors.Is(err, pick.ErrPickExists) {
			stored, found, getErr := s.eval.pickRepo.GetByUserGameweek(ctx, input.UserID, input.SeasonID, input.GameweekNumber)
			if getErr != nil {
				return pick.Pick{}, fmt.Errorf("get conflicting pick: %w", getErr)
			}
			if found {
				return resolveDuplicate(stored, input.TeamID)
			}
		}
		if errors.Is(err, pick.ErrDeadlinePassed) {
			return pick.Pick{}, err
		}
		return pick.Pick{}, fmt.Errorf("create pick: %w", err)
	}

	s.logger.InfoContext(ctx, "pick created",
		"pick_id", item.ID,
		"user_id", item.UserID,
		"season_id", item.SeasonID,
		"gameweek", item.GameweekNumber,
		"team_id", item.TeamID,
	)
	return item, nil
}

// DeletePick removes a pick while it is still editable.
func (s *PickService) DeletePick(ctx context.Context, userID, seasonID string, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.DeletePick")
	defer span.End()

	userID = strings.TrimSpace(userID)
	seasonID = strings.TrimSpace(seasonID)
	if userID == "" || seasonID == "" {
		return fmt.Errorf("%w: user id and season id are required", ErrInvalidInput)
	}

	_, gw, err := s.eval.loadGameweek(ctx, seasonID, week)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(userLockKey(userID, seasonID))
	defer unlock()

	item, exists, err := s.eval.pickRepo.GetByUserGameweek(ctx, userID, seasonID, week)
	if err != nil {
		return fmt.Errorf("get pick: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: user=%s season=%s week=%d", ErrPickNotFound, userID, seasonID, week)
	}
	if gw.IsLocked || gw.DeadlinePassed(s.now()) {
		return fmt.Errorf("%w: gameweek %d deadline passed", ErrPickLocked, week)
	}

	f, found, err := s.eval.fixtureRepo.GetByID(ctx, item.FixtureID)
	if err != nil {
		return fmt.Errorf("get fixture: %w", err)
	}
	if found && fixture.NormalizeStatus(f.Status) != fixture.StatusScheduled {
		return fmt.Errorf("%w: fixture %s is %s", ErrPickLocked, f.ID, f.Status)
	}

	if err := s.eval.pickRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}
	return nil
}

// ListUserPicks returns a user's picks for a season with fixture status attached.
func (s *PickService) ListUserPicks(ctx context.Context, userID, seasonID string) ([]PickView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListUserPicks")
	defer span.End()

	userID = strings.TrimSpace(userID)
	seasonID = strings.TrimSpace(seasonID)
	if userID == "" || seasonID == "" {
		return nil, fmt.Errorf("%w: user id and season id are required", ErrInvalidInput)
	}

	picks, err := s.eval.pickRepo.ListByUserWeeks(ctx, userID, seasonID, season.MinWeek, season.MaxWeek)
	if err != nil {
		return nil, fmt.Errorf("list user picks: %w", err)
	}

	out := make([]PickView, 0, len(picks))
	for _, item := range picks {
		view := PickView{Pick: item, FixtureStatus: fixture.StatusScheduled}
		f, found, err := s.eval.fixtureRepo.GetByID(ctx, item.FixtureID)
		if err != nil {
			return nil, fmt.Errorf("get fixture for pick %s: %w", item.ID, err)
		}
		if found {
			view.FixtureStatus = fixture.NormalizeStatus(f.Status)
			view.Played = fixture.HasResult(f.Status)
			view.OpponentTeamID, _ = f.OpponentOf(item.TeamID)
		}
		out = append(out, view)
	}
	return out, nil
}

func resolveDuplicate(existing pick.Pick, teamID string) (pick.Pick, error) {
	if existing.TeamID == teamID {
		return existing, nil
	}
	return pick.Pick{}, fmt.Errorf("%w: gameweek=%d team=%s", ErrDuplicatePick, existing.GameweekNumber, existing.TeamID)
}

func userLockKey(userID, seasonID string) string {
	return userID + "::" + seasonID
}
