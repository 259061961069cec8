package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"ranked-survey/internal/domain/survey"
	"ranked-survey/internal/domain/tally"
	"ranked-survey/internal/metrics"
	"ranked-survey/internal/platform/apperr"
)

// maxDurationSeconds is the largest duration_seconds that fits a time.Duration.
var maxDurationSeconds = float64(math.MaxInt64) / float64(time.Second)

type createSurveyRequest struct {
	Title           string   `json:"title"`
	Choices         []string `json:"choices"`
	DurationSeconds *float64 `json:"duration_seconds"`
}

type createSurveyResponse struct {
	ID uint64 `json:"id"`
}

type resultsResponse struct {
	Title      string                `json:"title"`
	Choices    []string              `json:"choices"`
	Votes      [][]breakdownResponse `json:"votes"`
	RankFields []string              `json:"rank_fields"`
}

// breakdownResponse renders as {"title": ..., "top choice": n, "2nd choice": n, ...}
// with keys in rank order.
type breakdownResponse struct {
	Title  string
	Fields []string
	Counts []int
}

func (b breakdownResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	title, err := json.Marshal(b.Title)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"title":`)
	buf.Write(title)
	for i, field := range b.Fields {
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		n := 0
		if i < len(b.Counts) {
			n = b.Counts[i]
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(n))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// @Summary     Create survey
// @Description Body is optional; omitted fields use the configured defaults.
// @Tags        surveys
// @Accept      json
// @Produce     json
// @Param       request  body      createSurveyRequest   false  "Survey definition"
// @Success     200      {object}  createSurveyResponse
// @Failure     400      {object}  map[string]string  "invalid body"
// @Router      /create [post]
func (h *Handler) handleCreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req createSurveyRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		errorResponse(w, apperr.BadRequest("invalid_survey", "invalid body", err))
		return
	}

	in := survey.CreateInput{Title: req.Title, Choices: req.Choices}
	if req.DurationSeconds != nil {
		secs := *req.DurationSeconds
		if secs >= maxDurationSeconds {
			errorResponse(w, apperr.BadRequest("invalid_survey", "duration_seconds is too large", nil))
			return
		}
		in.Duration = time.Duration(secs * float64(time.Second))
		if in.Duration <= 0 {
			errorResponse(w, apperr.BadRequest("invalid_survey", "duration_seconds must be positive", nil))
			return
		}
	}

	id, err := h.surveySvc.Create(r.Context(), in)
	if err != nil {
		errorResponse(w, err)
		return
	}
	metrics.IncSurveyCreated()
	writeJSON(w, http.StatusOK, createSurveyResponse{ID: id})
}

// @Summary     Survey results
// @Description Instant-runoff rounds over every ballot stored so far.
// @Tags        surveys
// @Produce     json
// @Param       id   path      int  true  "Survey ID"
// @Success     200  {object}  resultsResponse
// @Failure     404  {object}  map[string]string  "unknown survey"
// @Failure     500  {object}  map[string]string  "tally failed"
// @Router      /poll/{id}/results [get]
func (h *Handler) handleSurveyResults(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, apperr.NotFound("survey_not_found", "survey not found", err))
		return
	}

	start := time.Now()
	report, err := h.surveySvc.Results(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	metrics.ObserveTally(len(report.Rounds), time.Since(start))

	writeJSON(w, http.StatusOK, toResultsResponse(report))
}

func toResultsResponse(report *survey.Report) resultsResponse {
	resp := resultsResponse{
		Title:      report.Title,
		Choices:    report.Choices,
		Votes:      make([][]breakdownResponse, 0, len(report.Rounds)),
		RankFields: report.RankFields,
	}
	if resp.Choices == nil {
		resp.Choices = []string{}
	}
	if resp.RankFields == nil {
		resp.RankFields = []string{}
	}
	for _, round := range report.Rounds {
		resp.Votes = append(resp.Votes, toRoundResponse(round, report.RankFields))
	}
	return resp
}

func toRoundResponse(round tally.Round, fields []string) []breakdownResponse {
	out := make([]breakdownResponse, 0, len(round))
	for _, b := range round {
		out = append(out, breakdownResponse{Title: b.Title, Fields: fields, Counts: b.Counts})
	}
	return out
}
