package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/last-man-standing/internal/domain/pick"
	"github.com/riskibarqy/last-man-standing/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "last-man-standing"
	pickRuleDomain   = errorDomain + ".pickRules"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	// RuleReason names the violated pick rule, empty for other errors.
	RuleReason string
}

var internalMapping = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorMappings is checked in order; the first sentinel matched wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}},
	{usecase.ErrConflict, mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ABORTED"}},
}

var pickRuleReasons = []struct {
	target error
	reason string
}{
	{pick.ErrDeadlinePassed, "deadlinePassed"},
	{pick.ErrTeamInactive, "teamInactive"},
	{pick.ErrTeamNotPlaying, "teamNotPlaying"},
	{pick.ErrTeamReuseExceeded, "teamReuseExceeded"},
	{pick.ErrOppositionReuseExceeded, "oppositionReuseExceeded"},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError renders err in the Google JSON style. Messages of 5xx errors are not exposed.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus >= http.StatusInternalServerError && mapped.HTTPStatus != http.StatusServiceUnavailable {
		message = internalMessage
	}

	body := &googleErrorBody{
		Code:    mapped.HTTPStatus,
		Message: message,
		Status:  mapped.Status,
		Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
	}
	if mapped.RuleReason != "" {
		body.Errors = append(body.Errors, googleErrorItem{Domain: pickRuleDomain, Reason: mapped.RuleReason, Message: message})
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{APIVersion: googleAPIVersion, Error: body})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalMessage))
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	if pick.IsViolation(err) {
		mapped := mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "pickRuleViolation", Status: "FAILED_PRECONDITION"}
		for _, r := range pickRuleReasons {
			if errors.Is(err, r.target) {
				mapped.RuleReason = r.reason
				break
			}
		}
		return mapped
	}
	return internalMapping
}
