package api

import (
	"context"
	"errors"
	"net/http"

	"ranked-survey/internal/domain/survey"
	"ranked-survey/internal/domain/tally"
	"ranked-survey/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slogLogger.Error("request failed", "error", appErr.Code, "cause", appErr.Err)
	}
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	switch {
	case errors.Is(err, survey.ErrUnknownSurvey):
		return apperr.NotFound("survey_not_found", "survey not found", err)
	case errors.Is(err, survey.ErrSurveyExpired):
		return apperr.Forbidden("survey_expired", "survey has ended", err)
	case errors.Is(err, survey.ErrInvalidBallot):
		return apperr.BadRequest("invalid_ballot", err.Error(), err)
	case errors.Is(err, survey.ErrInvalidSurvey):
		return apperr.BadRequest("invalid_survey", err.Error(), err)
	case errors.Is(err, tally.ErrInvariant):
		return apperr.Internal("tally_failed", "results could not be computed", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperr.Internal("request_aborted", "request was aborted", err)
	default:
		return apperr.FromError(err)
	}
}

// ballotOutcome labels a rejected submission for metrics.
func ballotOutcome(err error) string {
	switch {
	case errors.Is(err, survey.ErrUnknownSurvey):
		return "not_found"
	case errors.Is(err, survey.ErrSurveyExpired):
		return "expired"
	case errors.Is(err, survey.ErrInvalidBallot):
		return "invalid"
	default:
		return "error"
	}
}
