package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	surveysCreated    prometheus.Counter
	ballotsTotal      *prometheus.CounterVec
	ballotLength      prometheus.Histogram
	tallyRounds       prometheus.Histogram
	tallyDuration     prometheus.Histogram
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the survey API.",
		}, []string{"method", "path", "status"})

		surveysCreated = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "survey",
			Name:      "created_total",
			Help:      "Surveys created since process start.",
		})

		ballotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "survey",
			Name:      "ballots_total",
			Help:      "Ballot submissions by outcome.",
		}, []string{"outcome"})

		ballotLength = promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "survey",
			Name:      "ballot_length",
			Help:      "Number of ranked entries in accepted ballots.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		})

		tallyRounds = promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "survey",
			Name:      "tally_rounds",
			Help:      "Elimination rounds produced per results request.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		})

		tallyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "survey",
			Name:      "tally_duration_seconds",
			Help:      "Time spent computing instant-runoff results.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncSurveyCreated() {
	if surveysCreated == nil {
		return
	}
	surveysCreated.Inc()
}

// IncBallot counts one submission by outcome (accepted, expired, invalid, not_found, rate_limited).
func IncBallot(outcome string) {
	if ballotsTotal == nil {
		return
	}
	ballotsTotal.WithLabelValues(outcome).Inc()
}

func ObserveBallotLength(n int) {
	if ballotLength == nil {
		return
	}
	ballotLength.Observe(float64(n))
}

func ObserveTally(rounds int, took time.Duration) {
	if tallyRounds == nil {
		return
	}
	tallyRounds.Observe(float64(rounds))
	tallyDuration.Observe(took.Seconds())
}
