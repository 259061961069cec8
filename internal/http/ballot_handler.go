package api

import (
	"net/http"
	"time"

	"ranked-survey/internal/metrics"
	"ranked-survey/internal/platform/apperr"
	"ranked-survey/internal/worker"
)

// @Summary     Submit ballot
// @Description Body is the ranking: a JSON array of choice labels, most preferred first.
// @Tags        surveys
// @Accept      json
// @Param       id       path      int       true  "Survey ID"
// @Param       request  body      []string  true  "Ranking"
// @Success     200
// @Failure     400      {object}  map[string]string  "malformed body or unknown label"
// @Failure     403      {object}  map[string]string  "survey has ended"
// @Failure     404      {object}  map[string]string  "unknown survey"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Router      /poll/{id}/submit [post]
func (h *Handler) handleSubmitBallot(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		metrics.IncBallot("not_found")
		errorResponse(w, apperr.NotFound("survey_not_found", "survey not found", err))
		return
	}

	var ranking *[]string
	if err := decodeJSON(r, &ranking); err != nil || ranking == nil {
		metrics.IncBallot("invalid")
		errorResponse(w, apperr.BadRequest("invalid_ballot", "body must be a JSON array of choice labels", err))
		return
	}

	if err := h.surveySvc.Submit(r.Context(), id, *ranking); err != nil {
		metrics.IncBallot(ballotOutcome(err))
		errorResponse(w, err)
		return
	}
	metrics.IncBallot("accepted")

	if h.ballotCh != nil {
		select {
		case h.ballotCh <- worker.BallotEvent{SurveyID: id, Ranking: *ranking, At: time.Now()}:
		default:
			slogLogger.Warn("ballot event dropped", "survey_id", id)
		}
	}

	w.WriteHeader(http.StatusOK)
}
