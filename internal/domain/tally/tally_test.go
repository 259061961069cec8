package tally

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(r Round) []string {
	out := make([]string, 0, len(r))
	for _, b := range r {
		out = append(out, b.Title)
	}
	return out
}

func TestRunEliminatesLowestIndexOnTie(t *testing.T) {
	choices := []string{"A", "B", "C"}
	ballots := []Ballot{
		{0, 1, 2},
		{0, 1, 2},
		{1, 2, 0},
		{2, 0, 1},
	}

	res, err := Run(choices, ballots)
	require.NoError(t, err)
	require.Len(t, res.Rounds, 2)
	assert.Equal(t, 3, res.Width)

	first := res.Rounds[0]
	assert.Equal(t, []string{"A", "B", "C"}, titles(first))
	assert.Equal(t, []int{2, 0, 0}, first[0].Counts)
	assert.Equal(t, []int{1, 0, 0}, first[1].Counts)
	assert.Equal(t, []int{1, 0, 0}, first[2].Counts)

	second := res.Rounds[1]
	assert.Equal(t, []string{"A", "C"}, titles(second))
	assert.Equal(t, 2, second[0].Votes())
	assert.Equal(t, 2, second[1].Votes())
	// the B-first ballot now reaches C at its second scan position
	assert.Equal(t, []int{1, 1, 0}, second[1].Counts)
}

func TestRunComparesDeeperPositionsOnTie(t *testing.T) {
	choices := []string{"A", "B", "C", "D"}
	ballots := []Ballot{
		{0}, {0}, {0},
		{1}, {1},
		{2}, {2},
		{3, 2},
	}

	res, err := Run(choices, ballots)
	require.NoError(t, err)
	require.Len(t, res.Rounds, 3)

	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(res.Rounds[0]))
	assert.Equal(t, []string{"A", "B", "C"}, titles(res.Rounds[1]))
	// B [2,0,..] sorts below C [2,1,..], so B goes even though it has the lower index
	assert.Equal(t, []string{"A", "C"}, titles(res.Rounds[2]))
	assert.Equal(t, []int{2, 1, 0, 0}, res.Rounds[2][1].Counts)
}

func TestRunDegenerateInputs(t *testing.T) {
	tests := []struct {
		name    string
		choices []string
		ballots []Ballot
		rounds  int
		first   []string
	}{
		{name: "no ballots", choices: []string{"A", "B", "C"}, ballots: nil, rounds: 1, first: []string{}},
		{name: "no choices", choices: nil, ballots: nil, rounds: 1, first: []string{}},
		{name: "single choice", choices: []string{"A"}, ballots: []Ballot{{0}, {0, 0}}, rounds: 1, first: []string{"A"}},
		{name: "identical ballots", choices: []string{"A", "B", "C", "D"}, ballots: []Ballot{{0, 1, 2, 3}, {0, 1, 2, 3}}, rounds: 1, first: []string{"A"}},
		{name: "empty ballots", choices: []string{"A", "B", "C"}, ballots: []Ballot{{}, {}}, rounds: 1, first: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(tt.choices, tt.ballots)
			require.NoError(t, err)
			assert.Len(t, res.Rounds, tt.rounds)
			assert.Equal(t, tt.first, titles(res.Rounds[0]))
		})
	}
}

func TestRunExhaustedBallotsDropOut(t *testing.T) {
	choices := []string{"A", "B", "C"}
	ballots := []Ballot{{0}, {0}, {1}, {1}, {2}}

	res, err := Run(choices, ballots)
	require.NoError(t, err)
	require.Len(t, res.Rounds, 2)
	assert.Equal(t, []string{"A", "B"}, titles(res.Rounds[1]))

	total := 0
	for _, b := range res.Rounds[1] {
		total += b.Votes()
	}
	assert.Equal(t, 4, total)
}

func TestRunWidthFollowsLongestBallot(t *testing.T) {
	choices := []string{"A", "B"}
	ballots := []Ballot{{0, 0, 1, 1, 0}, {1}}

	res, err := Run(choices, ballots)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Width)
	for _, b := range res.Rounds[0] {
		assert.Len(t, b.Counts, 5)
	}
}

func TestRunRejectsOutOfRangeIndex(t *testing.T) {
	_, err := Run([]string{"A", "B"}, []Ballot{{0}, {7}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariant))
}

func TestRunRoundCountBound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n <= 7; n++ {
		choices := make([]string, n)
		for i := range choices {
			choices[i] = string(rune('A' + i))
		}
		for trial := 0; trial < 50; trial++ {
			ballots := make([]Ballot, rng.Intn(30))
			for i := range ballots {
				if n == 0 {
					continue
				}
				b := make(Ballot, rng.Intn(n+2))
				for j := range b {
					b[j] = rng.Intn(n)
				}
				ballots[i] = b
			}

			res, err := Run(choices, ballots)
			require.NoError(t, err)

			limit := n - 1
			if limit < 1 {
				limit = 1
			}
			assert.LessOrEqual(t, len(res.Rounds), limit, "n=%d trial=%d", n, trial)
		}
	}
}

func TestRunNeverEliminatesLeader(t *testing.T) {
	choices := []string{"A", "B", "C", "D"}
	ballots := []Ballot{
		{3}, {3}, {3}, {3},
		{0}, {0},
		{1}, {1}, {1},
		{2},
	}

	res, err := Run(choices, ballots)
	require.NoError(t, err)
	for _, round := range res.Rounds {
		assert.Contains(t, titles(round), "D")
	}
}

func TestRunDoesNotModifyBallots(t *testing.T) {
	ballots := []Ballot{{0, 1}, {1, 0}, {2, 1}}
	before := make([]Ballot, len(ballots))
	for i, b := range ballots {
		before[i] = append(Ballot(nil), b...)
	}

	_, err := Run([]string{"A", "B", "C"}, ballots)
	require.NoError(t, err)
	assert.Equal(t, before, ballots)
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		pos  int
		want string
	}{
		{1, "top"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{10, "10th"},
		{11, "11st"},
		{12, "12nd"},
		{13, "13rd"},
		{21, "21st"},
		{22, "22nd"},
		{101, "101st"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ordinal(tt.pos), "pos %d", tt.pos)
	}
}

func TestRankFields(t *testing.T) {
	assert.Equal(t, []string{"top choice", "2nd choice", "3rd choice"}, RankFields(3))
	assert.Empty(t, RankFields(0))
}
