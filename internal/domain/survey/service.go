package survey

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ranked-survey/internal/domain/tally"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Defaults fill in whatever a create request leaves out.
type Defaults struct {
	Title    string
	Choices  []string
	Duration time.Duration
}

// CreateInput carries the optional fields of a create request. Zero values
// select the matching default; a nil Choices does, an empty non-nil one does not.
type CreateInput struct {
	Title    string
	Choices  []string
	Duration time.Duration
}

// Report is a results snapshot together with the survey metadata it belongs to.
type Report struct {
	ID         uint64
	Title      string
	Choices    []string
	EndsAt     time.Time
	Ballots    int
	RankFields []string
	Rounds     []tally.Round
}

type Service struct {
	registry *Registry
	defaults Defaults
	clock    Clock
	logger   *slog.Logger
}

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(registry *Registry, defaults Defaults, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		defaults: defaults,
		clock:    systemClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, in CreateInput) (uint64, error) {
	title := in.Title
	if title == "" {
		title = s.defaults.Title
	}
	choices := in.Choices
	if choices == nil {
		choices = s.defaults.Choices
	}
	d := in.Duration
	if d == 0 {
		d = s.defaults.Duration
	}

	sv, err := New(title, choices, s.clock.Now(), d)
	if err != nil {
		return 0, err
	}
	id := s.registry.Create(sv)

	s.logger.InfoContext(ctx, "survey created",
		"survey_id", id,
		"title", sv.Title,
		"choices", len(sv.Choices),
		"ends_at", sv.EndsAt,
		"surveys", s.registry.Len(),
	)
	return id, nil
}

// Submit records one ranking of choice labels against survey id.
func (s *Service) Submit(ctx context.Context, id uint64, labels []string) error {
	sv, err := s.registry.Get(id)
	if err != nil {
		return err
	}

	b, err := sv.Submit(s.clock.Now(), labels)
	if err != nil {
		s.logger.DebugContext(ctx, "ballot rejected", "survey_id", id, "error", err)
		return err
	}
	s.logger.DebugContext(ctx, "ballot accepted", "survey_id", id, "ranking", []int(b), "ballots", sv.BallotCount())
	return nil
}

// Results tallies a snapshot of the ballots stored so far. Ballots submitted
// while the tally runs are not included. Results stay available after the
// survey ends.
func (s *Service) Results(ctx context.Context, id uint64) (*Report, error) {
	sv, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ballots := sv.Snapshot()
	res, err := tally.Run(sv.Choices, ballots)
	if err != nil {
		if errors.Is(err, tally.ErrInvariant) {
			s.logger.ErrorContext(ctx, "tally failed", "survey_id", id, "ballots", len(ballots), "error", err)
		}
		return nil, err
	}

	s.logger.DebugContext(ctx, "results computed", "survey_id", id, "ballots", len(ballots), "rounds", len(res.Rounds))
	return &Report{
		ID:         sv.ID,
		Title:      sv.Title,
		Choices:    append([]string(nil), sv.Choices...),
		EndsAt:     sv.EndsAt,
		Ballots:    len(ballots),
		RankFields: tally.RankFields(res.Width),
		Rounds:     res.Rounds,
	}, nil
}
