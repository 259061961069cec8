package survey

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"ranked-survey/internal/domain/tally"
)

var (
	ErrUnknownSurvey = errors.New("survey not found")
	ErrSurveyExpired = errors.New("survey has ended")
	ErrInvalidBallot = errors.New("invalid ballot")
	ErrInvalidSurvey = errors.New("invalid survey")
)

// Ballot is a ranking of option indices into the survey's ChoiceSet.
type Ballot = tally.Ballot

// ChoiceSet is the ordered list of option labels. Labels are not required to
// be unique; Index resolves to the first occurrence, so a duplicated label can
// never receive votes under its later position.
type ChoiceSet []string

// Index returns the position of the first option equal to label.
func (c ChoiceSet) Index(label string) (int, bool) {
	for i, choice := range c {
		if choice == label {
			return i, true
		}
	}
	return -1, false
}

// Resolve maps a ranking of labels to a Ballot. Any unknown label rejects the
// whole ranking.
func (c ChoiceSet) Resolve(labels []string) (Ballot, error) {
	b := make(Ballot, 0, len(labels))
	for _, label := range labels {
		idx, ok := c.Index(label)
		if !ok {
			return nil, fmt.Errorf("%w: unknown choice %q", ErrInvalidBallot, label)
		}
		b = append(b, idx)
	}
	return b, nil
}

// Survey is one poll: immutable metadata plus an append-only ballot list
// guarded by its own mutex.
type Survey struct {
	ID        uint64
	Title     string
	CreatedAt time.Time
	EndsAt    time.Time
	Choices   ChoiceSet

	mu      sync.Mutex
	ballots []Ballot
}

// New builds a survey open for d starting at now. The choice labels are copied.
func New(title string, choices []string, now time.Time, d time.Duration) (*Survey, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %s", ErrInvalidSurvey, d)
	}
	cs := make(ChoiceSet, len(choices))
	copy(cs, choices)
	return &Survey{
		Title:     title,
		CreatedAt: now,
		EndsAt:    now.Add(d),
		Choices:   cs,
	}, nil
}

// Expired reports whether now is strictly after the end of the voting window.
func (s *Survey) Expired(now time.Time) bool {
	return now.After(s.EndsAt)
}

// Submit validates labels against the survey and appends the resulting ballot.
// Validation runs before the ballot lock is taken; on error nothing is stored.
func (s *Survey) Submit(now time.Time, labels []string) (Ballot, error) {
	if s.Expired(now) {
		return nil, ErrSurveyExpired
	}
	b, err := s.Choices.Resolve(labels)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.ballots = append(s.ballots, b)
	s.mu.Unlock()
	return b, nil
}

// Snapshot copies out the ballots stored so far. Stored ballots are never
// mutated, so the copy shares their backing arrays.
func (s *Survey) Snapshot() []Ballot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Ballot, len(s.ballots))
	copy(out, s.ballots)
	return out
}

func (s *Survey) BallotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ballots)
}
