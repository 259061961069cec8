package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"ranked-survey/internal/domain/survey"
	"ranked-survey/internal/worker"
)

type Handler struct {
	surveySvc *survey.Service
	ballotCh  chan<- worker.BallotEvent
}

// Limits configures the per-IP limiter on ballot submission. A zero Rate
// turns it off.
type Limits struct {
	Rate  rate.Limit
	Burst int
}

func NewRouter(
	surveySvc *survey.Service,
	ballotCh chan<- worker.BallotEvent,
	limits Limits,
) http.Handler {
	h := &Handler{
		surveySvc: surveySvc,
		ballotCh:  ballotCh,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/json", h.handleProbe)
	r.Post("/create", h.handleCreateSurvey)
	r.With(RateLimitBallots(limits.Rate, limits.Burst)).Post("/poll/{id}/submit", h.handleSubmitBallot)
	r.Get("/poll/{id}/results", h.handleSurveyResults)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeJSON reads exactly one JSON value from the request body. An empty
// body yields io.EOF.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, "Not found\n")
}

func parseIDParam(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, name), 10, 64)
}

// @Summary     Liveness probe
// @Tags        misc
// @Produce     json
// @Success     200  {object}  map[string]int
// @Router      /json [get]
func (h *Handler) handleProbe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"data": 42})
}
