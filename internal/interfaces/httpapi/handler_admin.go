package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/last-man-standing/internal/domain/fixture"
	"github.com/riskibarqy/last-man-standing/internal/domain/season"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
)

func (h *Handler) AdminCreatePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreatePick")
	defer span.End()

	adminID, ok := adminIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: %s header is required for pick overrides", usecase.ErrUnauthorized, headerAdminID))
		return
	}
	seasonID, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req adminCreatePickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.pickService.CreatePickForUser(ctx, adminID, usecase.CreatePickInput{
		UserID:         req.UserID,
		SeasonID:       seasonID,
		GameweekNumber: week,
		TeamID:         req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin create pick failed",
			"admin_id", adminID,
			"user_id", req.UserID,
			"season_id", seasonID,
			"gameweek", week,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickToDTO(created))
}

func (h *Handler) ProcessEliminations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProcessEliminations")
	defer span.End()

	seasonID, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var processedBy *string
	if adminID, ok := adminIDFromContext(ctx); ok {
		processedBy = &adminID
	}

	result, err := h.eliminationService.ProcessGameweekEliminations(ctx, seasonID, week, processedBy)
	if err != nil {
		// Rows written before the failure stay committed; record them for the operator.
		eliminatedIDs := make([]string, 0, len(result.Eliminated))
		for _, item := range result.Eliminated {
			eliminatedIDs = append(eliminatedIDs, item.UserID)
		}
		h.logger.ErrorContext(ctx, "process eliminations failed",
			"season_id", seasonID,
			"gameweek", week,
			"players_eliminated", result.PlayersEliminated,
			"eliminated_user_ids", eliminatedIDs,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eliminationResultToDTO(result))
}

func (h *Handler) SetEliminationCounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetEliminationCounts")
	defer span.End()

	seasonID, err := seasonIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req eliminationCountsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	counts, err := parseEliminationCounts(req.Counts)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.eliminationService.BulkSetEliminationCounts(ctx, seasonID, counts); err != nil {
		h.logger.WarnContext(ctx, "set elimination counts failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"updated": true})
}

func (h *Handler) GetEliminationConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEliminationConfig")
	defer span.End()

	seasonID, err := seasonIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	configs, err := h.eliminationService.GetEliminationConfig(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get elimination config failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eliminationConfigDTO, 0, len(configs))
	for _, item := range configs {
		items = append(items, eliminationConfigToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetPickRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPickRule")
	defer span.End()

	seasonID, err := seasonIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	half, err := strconv.Atoi(strings.TrimSpace(r.PathValue("half")))
	if err != nil || !season.ValidHalf(half) {
		writeError(ctx, w, fmt.Errorf("%w: half must be %d or %d", usecase.ErrInvalidInput, season.HalfFirst, season.HalfSecond))
		return
	}

	var req pickRuleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rule, err := h.seasonService.SetPickRule(ctx, season.PickRule{
		SeasonID:                        seasonID,
		Half:                            half,
		MaxTimesTeamCanBePicked:         req.MaxTimesTeamCanBePicked,
		MaxTimesOppositionCanBeTargeted: req.MaxTimesOppositionCanBeTargeted,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set pick rule failed", "season_id", seasonID, "half", half, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickRuleToDTO(rule))
}

func (h *Handler) ApplyFixtureResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyFixtureResult")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	var req fixtureResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ApplyFixtureResult(ctx, fixtureID, fixture.Result{
		Status:    req.Status,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "apply fixture result failed", "fixture_id", fixtureID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeResultToDTO(result))
}

func (h *Handler) RecomputeFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeFixture")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	result, err := h.scoringService.RecomputeScoresForFixture(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeResultToDTO(result))
}

func (h *Handler) AssignMissedPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignMissedPicks")
	defer span.End()

	seasonID, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.autoPickService.AssignMissedPicks(ctx, seasonID, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "assign missed picks failed", "season_id", seasonID, "gameweek", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, autoPickResultToDTO(result))
}

// RunAutoPickJob is the scheduler entrypoint covering every active season.
func (h *Handler) RunAutoPickJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAutoPickJob")
	defer span.End()

	batch, err := h.autoPickService.AssignAllMissedPicks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "auto pick job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := autoPickBatchDTO{
		Assigned:  batch.Assigned,
		Failed:    batch.Failed,
		Gameweeks: make([]autoPickResultDTO, 0, len(batch.Gameweeks)),
	}
	for _, item := range batch.Gameweeks {
		out.Gameweeks = append(out.Gameweeks, autoPickResultToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
