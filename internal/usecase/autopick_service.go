package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/participation"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/team"
	"github.com/riskibarqy/last-man-standing/internal/platform/id"
	"github.com/riskibarqy/last-man-standing/internal/platform/keylock"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

const defaultAutoPickWorkers = 8

const (
	autoPickStatusAssigned      = "assigned"
	autoPickStatusAlreadyPicked = "already_picked"
	autoPickStatusFailed        = "failed"
	autoPickStatusSkipped       = "skipped"
)

// AutoPickNotifier is told about every auto-assigned pick so the user can be informed.
type AutoPickNotifier interface {
	NotifyAutoPick(ctx context.Context, assignment AutoPickAssignment) error
}

type AutoPickAssignment struct {
	UserID         string
	SeasonID       string
	GameweekNumber int
	TeamID         string
	PickID         string
}

type AutoPickFailure struct {
	UserID string
	Reason string
}

type AutoPickResult struct {
	SeasonID       string
	GameweekNumber int
	Candidates     int
	Assigned       int
	AlreadyPicked  int
	Failed         int
	Skipped        int
	Assignments    []AutoPickAssignment
	Failures       []AutoPickFailure
}

type AutoPickBatchResult struct {
	Gameweeks []AutoPickResult
	Assigned  int
	Failed    int
}

type AutoPickService struct {
	eval              pickEvaluator
	participationRepo participation.Repository
	eliminationRepo   elimination.Repository
	idGen             id.Generator
	locks             *keylock.Locker
	notifier          AutoPickNotifier
	logger            *logging.Logger
	maxWorkers        int
	now               func() time.Time
}

func NewAutoPickService(
	seasonRepo season.Repository,
	fixtureRepo fixture.Repository,
	teamRepo team.Repository,
	pickRepo pick.Repository,
	participationRepo participation.Repository,
	eliminationRepo elimination.Repository,
	idGen id.Generator,
	locks *keylock.Locker,
	notifier AutoPickNotifier,
	logger *logging.Logger,
	maxWorkers int,
) *AutoPickService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = keylock.New()
	}
	if notifier == nil {
		notifier = NewLoggingAutoPickNotifier(logger)
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultAutoPickWorkers
	}
	return &AutoPickService{
		eval: pickEvaluator{
			seasonRepo:  seasonRepo,
			fixtureRepo: fixtureRepo,
			teamRepo:    teamRepo,
			pickRepo:    pickRepo,
		},
		participationRepo: participationRepo,
		eliminationRepo:   eliminationRepo,
		idGen:             idGen,
		locks:             locks,
		notifier:          notifier,
		logger:            logger,
		maxWorkers:        maxWorkers,
		now:               time.Now,
	}
}

// AssignMissedPicks gives every eligible user without a pick the first legal team
// by team id. The gameweek deadline must have passed.
func (s *AutoPickService) AssignMissedPicks(ctx context.Context, seasonID string, week int) (AutoPickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoPickService.AssignMissedPicks")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return AutoPickResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if !season.ValidWeek(week) {
		return AutoPickResult{}, fmt.Errorf("%w: gameweek must be between %d and %d", ErrInvalidInput, season.MinWeek, season.MaxWeek)
	}

	_, gw, err := s.eval.loadGameweek(ctx, seasonID, week)
	if err != nil {
		return AutoPickResult{}, err
	}
	if !gw.DeadlinePassed(s.now()) {
		return AutoPickResult{}, fmt.Errorf("%w: season=%s week=%d deadline=%s", ErrDeadlineNotPassed, seasonID, week, gw.Deadline.UTC().Format(time.RFC3339))
	}

	return s.assign(ctx, gw)
}

// AssignAllMissedPicks runs AssignMissedPicks for every unlocked, deadline-passed
// gameweek of active seasons that still has fewer picks than eligible users.
func (s *AutoPickService) AssignAllMissedPicks(ctx context.Context) (AutoPickBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoPickService.AssignAllMissedPicks")
	defer span.End()

	seasons, err := s.eval.seasonRepo.ListActiveSeasons(ctx)
	if err != nil {
		return AutoPickBatchResult{}, fmt.Errorf("list active seasons: %w", err)
	}

	batch := AutoPickBatchResult{Gameweeks: []AutoPickResult{}}
	now := s.now()
	for _, item := range seasons {
		gameweeks, err := s.eval.seasonRepo.ListGameweeks(ctx, item.ID)
		if err != nil {
			return batch, fmt.Errorf("list gameweeks for season %s: %w", item.ID, err)
		}
		for _, gw := range gameweeks {
			if err := ctx.Err(); err != nil {
				return batch, fmt.Errorf("assign all missed picks: %w", err)
			}
			if gw.IsLocked || !gw.DeadlinePassed(now) {
				continue
			}
			covered, err := s.fullyCovered(ctx, gw)
			if err != nil {
				return batch, err
			}
			if covered {
				continue
			}

			result, err := s.assign(ctx, gw)
			if err != nil {
				return batch, err
			}
			batch.Gameweeks = append(batch.Gameweeks, result)
			batch.Assigned += result.Assigned
			batch.Failed += result.Failed
		}
	}
	return batch, nil
}

func (s *AutoPickService) fullyCovered(ctx context.Context, gw season.Gameweek) (bool, error) {
	eligible, err := s.eligibleUsers(ctx, gw.SeasonID)
	if err != nil {
		return false, err
	}
	picks, err := s.eval.pickRepo.ListByGameweek(ctx, gw.SeasonID, gw.Number)
	if err != nil {
		return false, fmt.Errorf("list gameweek picks: %w", err)
	}
	picked := make(map[string]struct{}, len(picks))
	for _, item := range picks {
		picked[item.UserID] = struct{}{}
	}
	for _, userID := range eligible {
		if _, ok := picked[userID]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (s *AutoPickService) eligibleUsers(ctx context.Context, seasonID string) ([]string, error) {
	participants, err := s.participationRepo.ListApproved(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list approved participants: %w", err)
	}
	eliminations, err := s.eliminationRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list eliminations: %w", err)
	}
	eliminated := make(map[string]struct{}, len(eliminations))
	for _, item := range eliminations {
		eliminated[item.UserID] = struct{}{}
	}

	out := make([]string, 0, len(participants))
	for _, p := range participants {
		if _, ok := eliminated[p.UserID]; ok {
			continue
		}
		out = append(out, p.UserID)
	}
	sort.Strings(out)
	return out, nil
}

func (s *AutoPickService) assign(ctx context.Context, gw season.Gameweek) (AutoPickResult, error) {
	result := AutoPickResult{
		SeasonID:       gw.SeasonID,
		GameweekNumber: gw.Number,
		Assignments:    []AutoPickAssignment{},
		Failures:       []AutoPickFailure{},
	}

	eligible, err := s.eligibleUsers(ctx, gw.SeasonID)
	if err != nil {
		return AutoPickResult{}, err
	}
	picks, err := s.eval.pickRepo.ListByGameweek(ctx, gw.SeasonID, gw.Number)
	if err != nil {
		return AutoPickResult{}, fmt.Errorf("list gameweek picks: %w", err)
	}
	picked := make(map[string]struct{}, len(picks))
	for _, item := range picks {
		picked[item.UserID] = struct{}{}
	}
	missing := make([]string, 0, len(eligible))
	for _, userID := range eligible {
		if _, ok := picked[userID]; !ok {
			missing = append(missing, userID)
		}
	}
	result.Candidates = len(missing)
	if len(missing) == 0 {
		return result, nil
	}

	options, err := s.eval.options(ctx, gw.SeasonID, gw.Number)
	if err != nil {
		return AutoPickResult{}, err
	}
	rule, err := s.eval.rule(ctx, gw.SeasonID, gw.Half())
	if err != nil {
		return AutoPickResult{}, err
	}

	workerCount := s.maxWorkers
	if workerCount > len(missing) {
		workerCount = len(missing)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return AutoPickResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu            sync.Mutex
		workers       sync.WaitGroup
		assigned      atomic.Int32
		alreadyPicked atomic.Int32
		failed        atomic.Int32
		skipped       atomic.Int32
	)
	for _, userID := range missing {
		userID := userID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if ctx.Err() != nil {
				skipped.Add(1)
				return
			}

			status, assignment, reason := s.assignUser(ctx, gw, rule, options, userID)
			switch status {
			case autoPickStatusAssigned:
				assigned.Add(1)
				mu.Lock()
				result.Assignments = append(result.Assignments, assignment)
				mu.Unlock()
			case autoPickStatusAlreadyPicked:
				alreadyPicked.Add(1)
			case autoPickStatusSkipped:
				skipped.Add(1)
			default:
				failed.Add(1)
				mu.Lock()
				result.Failures = append(result.Failures, AutoPickFailure{UserID: userID, Reason: reason})
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			skipped.Add(1)
			s.logger.WarnContext(ctx, "submit auto pick task failed", "user_id", userID, "error", err)
		}
	}
	workers.Wait()

	sort.Slice(result.Assignments, func(i, j int) bool { return result.Assignments[i].UserID < result.Assignments[j].UserID })
	sort.Slice(result.Failures, func(i, j int) bool { return result.Failures[i].UserID < result.Failures[j].UserID })
	result.Assigned = int(assigned.Load())
	result.AlreadyPicked = int(alreadyPicked.Load())
	result.Failed = int(failed.Load())
	result.Skipped = int(skipped.Load())

	s.logger.InfoContext(ctx, "missed picks assigned",
		"season_id", gw.SeasonID,
		"gameweek", gw.Number,
		"candidates", result.Candidates,
		"assigned", result.Assigned,
		"already_picked", result.AlreadyPicked,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("assign missed picks: %w", err)
	}
	return result, nil
}

func (s *AutoPickService) assignUser(
	ctx context.Context,
	gw season.Gameweek,
	rule season.PickRule,
	options []pickOption,
	userID string,
) (string, AutoPickAssignment, string) {
	unlock := s.locks.Lock(userLockKey(userID, gw.SeasonID))
	defer unlock()

	if ctx.Err() != nil {
		return autoPickStatusSkipped, AutoPickAssignment{}, ""
	}

	_, exists, err := s.eval.pickRepo.GetByUserGameweek(ctx, userID, gw.SeasonID, gw.Number)
	if err != nil {
		return autoPickStatusFailed, AutoPickAssignment{}, fmt.Sprintf("get existing pick: %v", err)
	}
	if exists {
		return autoPickStatusAlreadyPicked, AutoPickAssignment{}, ""
	}

	prior, err := s.eval.priorInHalf(ctx, userID, gw.SeasonID, gw.Number)
	if err != nil {
		return autoPickStatusFailed, AutoPickAssignment{}, err.Error()
	}

	now := s.now()
	var chosen *pickOption
	for i := range options {
		if err := pick.Validate(candidateFor(&options[i], options[i].team.ID, gw, rule, prior, now, true)); err == nil {
			chosen = &options[i]
			break
		}
	}
	if chosen == nil {
		return autoPickStatusFailed, AutoPickAssignment{}, "no legal team available"
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return autoPickStatusFailed, AutoPickAssignment{}, fmt.Sprintf("generate pick id: %v", err)
	}
	item := pick.Pick{
		ID:             pickID,
		UserID:         userID,
		SeasonID:       gw.SeasonID,
		GameweekNumber: gw.Number,
		TeamID:         chosen.team.ID,
		FixtureID:      chosen.fixture.ID,
		IsAutoAssigned: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if out, err := pick.Score(item.TeamID, chosen.fixture); err == nil {
		item.Apply(out)
	}

	if err := s.eval.pickRepo.Create(ctx, item, pick.CreateOptions{}); err != nil {
		if errors.Is(err, pick.ErrPickExists) {
			return autoPickStatusAlreadyPicked, AutoPickAssignment{}, ""
		}
		return autoPickStatusFailed, AutoPickAssignment{}, fmt.Sprintf("create pick: %v", err)
	}

	assignment := AutoPickAssignment{
		UserID:         userID,
		SeasonID:       gw.SeasonID,
		GameweekNumber: gw.Number,
		TeamID:         item.TeamID,
		PickID:         item.ID,
	}
	if err := s.notifier.NotifyAutoPick(ctx, assignment); err != nil {
		s.logger.WarnContext(ctx, "auto pick notification failed", "user_id", userID, "error", err)
	}
	return autoPickStatusAssigned, assignment, ""
}

type LoggingAutoPickNotifier struct {
	logger *logging.Logger
}

func NewLoggingAutoPickNotifier(logger *logging.Logger) *LoggingAutoPickNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoggingAutoPickNotifier{logger: logger}
}

func (n *LoggingAutoPickNotifier) NotifyAutoPick(ctx context.Context, assignment AutoPickAssignment) error {
	n.logger.InfoContext(ctx, "pick auto assigned",
		"user_id", assignment.UserID,
		"season_id", assignment.SeasonID,
		"gameweek", assignment.GameweekNumber,
		"team_id", assignment.TeamID,
		"pick_id", assignment.PickID,
	)
	return nil
}
