package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/last-man-standing/internal/usecase"
)

func (h *Handler) CreatePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePick")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	seasonID, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createPickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.pickService.ValidateAndCreatePick(ctx, usecase.CreatePickInput{
		UserID:         userID,
		SeasonID:       seasonID,
		GameweekNumber: week,
		TeamID:         req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create pick failed",
			"user_id", userID,
			"season_id", seasonID,
			"gameweek", week,
			"team_id", req.TeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickToDTO(created))
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	seasonID, err := seasonIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.pickService.ListUserPicks(ctx, userID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list user picks failed", "user_id", userID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickViewDTO, 0, len(views))
	for _, view := range views {
		items = append(items, pickViewToDTO(view))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteMyPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMyPick")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized))
		return
	}
	seasonID, week, err := seasonWeekFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.pickService.DeletePick(ctx, userID, seasonID, week); err != nil {
		h.logger.WarnContext(ctx, "delete pick failed", "user_id", userID, "season_id", seasonID, "gameweek", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"deleted": true})
}
