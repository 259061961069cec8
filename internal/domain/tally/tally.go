// Package tally reduces ranked ballots to instant-runoff elimination rounds.
package tally

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvariant reports a broken internal invariant. Callers must not treat a
// result that came with this error as a tally.
var ErrInvariant = errors.New("tally invariant violated")

// Ballot is one ranking: option indices in preference order. Indices may
// repeat and need not cover every option.
type Ballot []int

// Breakdown is one option's standing in a round. Counts[k] is the number of
// ballots whose first surviving entry sits at scan position k+1 and names
// this option.
type Breakdown struct {
	Option int
	Title  string
	Counts []int
}

// Votes sums the breakdown over every rank position.
func (b Breakdown) Votes() int {
	total := 0
	for _, c := range b.Counts {
		total += c
	}
	return total
}

// Round lists the surviving options that received at least one vote, in
// choice order.
type Round []Breakdown

// Result is the full elimination sequence. Width is the number of rank
// positions carried by every breakdown.
type Result struct {
	Width  int
	Rounds []Round
}

// Run tallies ballots against choices. Each round credits every ballot to its
// first entry that has not been eliminated, emits the standings, and stops
// once two or fewer options hold votes. Otherwise the option with the
// lexicographically smallest count vector is eliminated; ties go to the lowest
// choice index.
//
// ballots is read but never retained or modified.
func Run(choices []string, ballots []Ballot) (Result, error) {
	n := len(choices)
	width := n
	for _, b := range ballots {
		if len(b) > width {
			width = len(b)
		}
	}

	eliminated := make([]bool, n)
	res := Result{Width: width}

	for {
		counts, hasVotes, err := countRound(n, width, ballots, eliminated)
		if err != nil {
			return Result{}, err
		}

		round := Round{}
		contenders := 0
		for i := 0; i < n; i++ {
			if !hasVotes[i] {
				continue
			}
			contenders++
			round = append(round, Breakdown{Option: i, Title: choices[i], Counts: counts[i]})
		}
		res.Rounds = append(res.Rounds, round)

		if contenders <= 2 {
			return res, nil
		}

		loser := lowest(counts, hasVotes)
		if loser < 0 {
			return Result{}, fmt.Errorf("%w: no option to eliminate among %d contenders", ErrInvariant, contenders)
		}
		if eliminated[loser] {
			return Result{}, fmt.Errorf("%w: option %d eliminated twice", ErrInvariant, loser)
		}
		eliminated[loser] = true
	}
}

func countRound(n, width int, ballots []Ballot, eliminated []bool) ([][]int, []bool, error) {
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, width)
	}
	hasVotes := make([]bool, n)

	for bi, b := range ballots {
		for pos, opt := range b {
			if opt < 0 || opt >= n {
				return nil, nil, fmt.Errorf("%w: ballot %d references option %d of %d", ErrInvariant, bi, opt, n)
			}
			if eliminated[opt] {
				continue
			}
			counts[opt][pos]++
			hasVotes[opt] = true
			break
		}
	}
	return counts, hasVotes, nil
}

// lowest scans options in ascending index order and keeps the first minimum.
func lowest(counts [][]int, hasVotes []bool) int {
	loser := -1
	for i := range counts {
		if !hasVotes[i] {
			continue
		}
		if loser < 0 || slices.Compare(counts[i], counts[loser]) < 0 {
			loser = i
		}
	}
	return loser
}
