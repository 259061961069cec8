package worker

import (
	"context"
	"log/slog"
	"time"

	"ranked-survey/internal/metrics"
)

type BallotEvent struct {
	SurveyID uint64
	Ranking  []string
	At       time.Time
}

// BallotWorker drains accepted-ballot events off the request path.
type BallotWorker struct {
	Ch     <-chan BallotEvent
	logger *slog.Logger
}

func NewBallotWorker(ch <-chan BallotEvent, logger *slog.Logger) *BallotWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &BallotWorker{Ch: ch, logger: logger}
}

// Run processes events until ctx is done or the channel is closed.
func (w *BallotWorker) Run(ctx context.Context) {
	w.logger.Info("ballot worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("ballot worker stopped")
			return
		case ev, ok := <-w.Ch:
			if !ok {
				w.logger.Info("ballot worker stopped", "reason", "channel closed")
				return
			}
			w.handle(ctx, ev)
		}
	}
}

func (w *BallotWorker) handle(ctx context.Context, ev BallotEvent) {
	metrics.ObserveBallotLength(len(ev.Ranking))
	w.logger.DebugContext(ctx, "processing ballot event",
		"survey_id", ev.SurveyID,
		"entries", len(ev.Ranking),
		"lag_ms", time.Since(ev.At).Milliseconds(),
	)
}
