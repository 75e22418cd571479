package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/last-man-standing/internal/domain/elimination"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/domain/standing"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
)

type Handler struct {
	pickService        *usecase.PickService
	scoringService     *usecase.ScoringService
	standingsService   *usecase.StandingsService
	eliminationService *usecase.EliminationService
	autoPickService    *usecase.AutoPickService
	seasonService      *usecase.SeasonService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	pickService *usecase.PickService,
	scoringService *usecase.ScoringService,
	standingsService *usecase.StandingsService,
	eliminationService *usecase.EliminationService,
	autoPickService *usecase.AutoPickService,
	seasonService *usecase.SeasonService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		pickService:        pickService,
		scoringService:     scoringService,
		standingsService:   standingsService,
		eliminationService: eliminationService,
		autoPickService:    autoPickService,
		seasonService:      seasonService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func seasonIDFromPath(r *http.Request) (string, error) {
	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	if seasonID == "" {
		return "", fmt.Errorf("%w: season id is required", usecase.ErrInvalidInput)
	}
	return seasonID, nil
}

func weekFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil || !season.ValidWeek(week) {
		return 0, fmt.Errorf("%w: gameweek must be a number between %d and %d, got %q", usecase.ErrInvalidInput, season.MinWeek, season.MaxWeek, raw)
	}
	return week, nil
}

func seasonWeekFromPath(r *http.Request) (string, int, error) {
	seasonID, err := seasonIDFromPath(r)
	if err != nil {
		return "", 0, err
	}
	week, err := weekFromPath(r)
	if err != nil {
		return "", 0, err
	}
	return seasonID, week, nil
}

type createPickRequest struct {
	TeamID string `json:"team_id" validate:"required,max=64"`
}

type adminCreatePickRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	TeamID string `json:"team_id" validate:"required,max=64"`
}

type eliminationCountsRequest struct {
	Counts map[string]int `json:"counts" validate:"required,min=1,dive,keys,required,endkeys,gte=0,lte=100"`
}

type pickRuleRequest struct {
	MaxTimesTeamCanBePicked         int `json:"max_times_team_can_be_picked" validate:"required,min=1"`
	MaxTimesOppositionCanBeTargeted int `json:"max_times_opposition_can_be_targeted" validate:"required,min=1"`
}

type fixtureResultRequest struct {
	Status    string `json:"status" validate:"required"`
	HomeScore *int   `json:"home_score" validate:"omitempty,min=0"`
	AwayScore *int   `json:"away_score" validate:"omitempty,min=0"`
}

type pickDTO struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	SeasonID       string `json:"season_id"`
	GameweekNumber int    `json:"gameweek_number"`
	TeamID         string `json:"team_id"`
	FixtureID      string `json:"fixture_id"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	IsAutoAssigned bool   `json:"is_auto_assigned"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

type pickViewDTO struct {
	pickDTO
	OpponentTeamID string `json:"opponent_team_id,omitempty"`
	FixtureStatus  string `json:"fixture_status,omitempty"`
	Played         bool   `json:"played"`
}

type standingDTO struct {
	Position             int    `json:"position"`
	UserID               string `json:"user_id"`
	DisplayName          string `json:"display_name"`
	TotalPoints          int    `json:"total_points"`
	PicksMade            int    `json:"picks_made"`
	Played               int    `json:"played"`
	Wins                 int    `json:"wins"`
	Draws                int    `json:"draws"`
	Losses               int    `json:"losses"`
	GoalsFor             int    `json:"goals_for"`
	GoalsAgainst         int    `json:"goals_against"`
	GoalDifference       int    `json:"goal_difference"`
	IsEliminated         bool   `json:"is_eliminated"`
	EliminatedInGameweek *int   `json:"eliminated_in_gameweek,omitempty"`
	EliminationPosition  *int   `json:"elimination_position,omitempty"`
}

type gameweekDTO struct {
	GameweekNumber          int    `json:"gameweek_number"`
	Half                    int    `json:"half"`
	Deadline                string `json:"deadline"`
	IsLocked                bool   `json:"is_locked"`
	EliminationCount        int    `json:"elimination_count"`
	EliminationState        string `json:"elimination_state"`
	EliminationsProcessedAt string `json:"eliminations_processed_at,omitempty"`
}

type pickRuleDTO struct {
	SeasonID                        string `json:"season_id"`
	Half                            int    `json:"half"`
	MaxTimesTeamCanBePicked         int    `json:"max_times_team_can_be_picked"`
	MaxTimesOppositionCanBeTargeted int    `json:"max_times_opposition_can_be_targeted"`
}

type eliminatedUserDTO struct {
	UserID         string `json:"user_id"`
	GameweekNumber int    `json:"gameweek_number"`
	Position       int    `json:"position"`
	TotalPoints    int    `json:"total_points"`
	EliminatedAt   string `json:"eliminated_at"`
}

type eliminationResultDTO struct {
	SeasonID          string              `json:"season_id"`
	GameweekNumber    int                 `json:"gameweek_number"`
	EliminationCount  int                 `json:"elimination_count"`
	PlayersEliminated int                 `json:"players_eliminated"`
	AlreadyProcessed  bool                `json:"already_processed"`
	Eliminated        []eliminatedUserDTO `json:"eliminated"`
}

type eliminationConfigDTO struct {
	GameweekNumber   int    `json:"gameweek_number"`
	Deadline         string `json:"deadline"`
	EliminationCount int    `json:"elimination_count"`
	State            string `json:"state"`
	HasBeenProcessed bool   `json:"has_been_processed"`
	EliminatedCount  int    `json:"eliminated_count"`
	ProcessedAt      string `json:"processed_at,omitempty"`
}

type recomputeResultDTO struct {
	FixtureID      string `json:"fixture_id"`
	Status         string `json:"status"`
	Scored         bool   `json:"scored"`
	PicksEvaluated int    `json:"picks_evaluated"`
	PicksUpdated   int    `json:"picks_updated"`
}

type autoPickAssignmentDTO struct {
	UserID string `json:"user_id"`
	TeamID string `json:"team_id"`
	PickID string `json:"pick_id"`
}

type autoPickFailureDTO struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

type autoPickResultDTO struct {
	SeasonID       string                  `json:"season_id"`
	GameweekNumber int                     `json:"gameweek_number"`
	Candidates     int                     `json:"candidates"`
	Assigned       int                     `json:"assigned"`
	AlreadyPicked  int                     `json:"already_picked"`
	Failed         int                     `json:"failed"`
	Skipped        int                     `json:"skipped"`
	Assignments    []autoPickAssignmentDTO `json:"assignments"`
	Failures       []autoPickFailureDTO    `json:"failures"`
}

type autoPickBatchDTO struct {
	Assigned  int                 `json:"assigned"`
	Failed    int                 `json:"failed"`
	Gameweeks []autoPickResultDTO `json:"gameweeks"`
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		SeasonID:       p.SeasonID,
		GameweekNumber: p.GameweekNumber,
		TeamID:         p.TeamID,
		FixtureID:      p.FixtureID,
		Points:         p.Points,
		GoalsFor:       p.GoalsFor,
		GoalsAgainst:   p.GoalsAgainst,
		IsAutoAssigned: p.IsAutoAssigned,
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
}

func pickViewToDTO(v usecase.PickView) pickViewDTO {
	return pickViewDTO{
		pickDTO:        pickToDTO(v.Pick),
		OpponentTeamID: v.OpponentTeamID,
		FixtureStatus:  v.FixtureStatus,
		Played:         v.Played,
	}
}

func standingToDTO(e standing.Entry) standingDTO {
	return standingDTO{
		Position:             e.Position,
		UserID:               e.UserID,
		DisplayName:          e.DisplayName,
		TotalPoints:          e.TotalPoints,
		PicksMade:            e.PicksMade,
		Played:               e.Played,
		Wins:                 e.Wins,
		Draws:                e.Draws,
		Losses:               e.Losses,
		GoalsFor:             e.GoalsFor,
		GoalsAgainst:         e.GoalsAgainst,
		GoalDifference:       e.GoalDifference(),
		IsEliminated:         e.IsEliminated,
		EliminatedInGameweek: e.EliminatedInGameweek,
		EliminationPosition:  e.EliminationPosition,
	}
}

func gameweekToDTO(g season.Gameweek) gameweekDTO {
	return gameweekDTO{
		GameweekNumber:          g.Number,
		Half:                    g.Half(),
		Deadline:                formatTime(g.Deadline),
		IsLocked:                g.IsLocked,
		EliminationCount:        g.EliminationCount,
		EliminationState:        g.EliminationState,
		EliminationsProcessedAt: formatOptionalTime(g.EliminationsProcessedAt),
	}
}

func pickRuleToDTO(r season.PickRule) pickRuleDTO {
	return pickRuleDTO{
		SeasonID:                        r.SeasonID,
		Half:                            r.Half,
		MaxTimesTeamCanBePicked:         r.MaxTimesTeamCanBePicked,
		MaxTimesOppositionCanBeTargeted: r.MaxTimesOppositionCanBeTargeted,
	}
}

func eliminationResultToDTO(res usecase.EliminationResult) eliminationResultDTO {
	out := eliminationResultDTO{
		SeasonID:          res.SeasonID,
		GameweekNumber:    res.GameweekNumber,
		EliminationCount:  res.EliminationCount,
		PlayersEliminated: res.PlayersEliminated,
		AlreadyProcessed:  res.AlreadyProcessed,
		Eliminated:        make([]eliminatedUserDTO, 0, len(res.Eliminated)),
	}
	for _, item := range res.Eliminated {
		out.Eliminated = append(out.Eliminated, eliminatedUserToDTO(item))
	}
	return out
}

func eliminatedUserToDTO(item elimination.UserElimination) eliminatedUserDTO {
	return eliminatedUserDTO{
		UserID:         item.UserID,
		GameweekNumber: item.GameweekNumber,
		Position:       item.Position,
		TotalPoints:    item.TotalPoints,
		EliminatedAt:   formatTime(item.EliminatedAt),
	}
}

func eliminationConfigToDTO(c usecase.EliminationConfig) eliminationConfigDTO {
	return eliminationConfigDTO{
		GameweekNumber:   c.GameweekNumber,
		Deadline:         formatTime(c.Deadline),
		EliminationCount: c.EliminationCount,
		State:            c.State,
		HasBeenProcessed: c.HasBeenProcessed,
		EliminatedCount:  c.EliminatedCount,
		ProcessedAt:      formatOptionalTime(c.ProcessedAt),
	}
}

func recomputeResultToDTO(res usecase.RecomputeResult) recomputeResultDTO {
	return recomputeResultDTO{
		FixtureID:      res.FixtureID,
		Status:         res.Status,
		Scored:         res.Scored,
		PicksEvaluated: res.PicksEvaluated,
		PicksUpdated:   res.PicksUpdated,
	}
}

func autoPickResultToDTO(res usecase.AutoPickResult) autoPickResultDTO {
	out := autoPickResultDTO{
		SeasonID:       res.SeasonID,
		GameweekNumber: res.GameweekNumber,
		Candidates:     res.Candidates,
		Assigned:       res.Assigned,
		AlreadyPicked:  res.AlreadyPicked,
		Failed:         res.Failed,
		Skipped:        res.Skipped,
		Assignments:    make([]autoPickAssignmentDTO, 0, len(res.Assignments)),
		Failures:       make([]autoPickFailureDTO, 0, len(res.Failures)),
	}
	for _, item := range res.Assignments {
		out.Assignments = append(out.Assignments, autoPickAssignmentDTO{
			UserID: item.UserID,
			TeamID: item.TeamID,
			PickID: item.PickID,
		})
	}
	for _, item := range res.Failures {
		out.Failures = append(out.Failures, autoPickFailureDTO{UserID: item.UserID, Reason: item.Reason})
	}
	return out
}

// parseEliminationCounts turns JSON object keys into gameweek numbers.
func parseEliminationCounts(raw map[string]int) (map[int]int, error) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[int]int, len(raw))
	for _, key := range keys {
		week, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("%w: gameweek key %q is not a number", usecase.ErrInvalidInput, key)
		}
		if _, dup := out[week]; dup {
			return nil, fmt.Errorf("%w: gameweek %d given more than once", usecase.ErrInvalidInput, week)
		}
		out[week] = raw[key]
	}
	return out, nil
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
