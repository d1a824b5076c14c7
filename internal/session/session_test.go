package session

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"quizkit/internal/question"
)

func records(n int) []question.Record {
	out := make([]question.Record, n)
	for i := range out {
		out[i] = question.Record{
			Prompt:  fmt.Sprintf("q%d", i),
			Options: []string{"a", "b", "c"},
			Correct: i % 3,
		}
	}
	return out
}

// TestNewIsBijection verifies every record appears exactly once.
func TestNewIsBijection(t *testing.T) {
	for n := 2; n <= 12; n++ {
		state := New(records(n), NewRand(uint64(n)))
		if state.Len() != n {
			t.Fatalf("expected %d entries, got %d", n, state.Len())
		}
		seen := make([]bool, n)
		for position := 0; position < n; position++ {
			entry := state.Entry(position)
			if seen[entry.Original] {
				t.Fatalf("record %d appears twice", entry.Original)
			}
			seen[entry.Original] = true
			if entry.Record.Prompt != fmt.Sprintf("q%d", entry.Original) {
				t.Fatalf("entry record does not match original index %d", entry.Original)
			}
			if state.Selection(position) != Unanswered {
				t.Fatalf("expected position %d unanswered", position)
			}
		}
	}
}

// TestShuffleFairness verifies each permutation of three items is about equally likely.
func TestShuffleFairness(t *testing.T) {
	const trials = 60000
	rng := NewRand(42)
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		items := []int{0, 1, 2}
		Shuffle(items, rng)
		counts[fmt.Sprint(items)]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected 6 permutations, got %d", len(counts))
	}
	expected := float64(trials) / 6
	for perm, count := range counts {
		if math.Abs(float64(count)-expected) > expected*0.05 {
			t.Fatalf("permutation %s occurred %d times, expected about %.0f", perm, count, expected)
		}
	}
}

// TestSeededOrderIsDeterministic verifies a fixed seed reproduces the order.
func TestSeededOrderIsDeterministic(t *testing.T) {
	first := New(records(8), NewRand(7))
	second := New(records(8), NewRand(7))
	for position := 0; position < first.Len(); position++ {
		if first.Entry(position).Original != second.Entry(position).Original {
			t.Fatalf("orders differ at %d", position)
		}
	}
	if first.ID() == second.ID() {
		t.Fatalf("expected distinct session ids")
	}
}

// TestSelectLastWriteWins verifies reselection keeps only the latest choice.
func TestSelectLastWriteWins(t *testing.T) {
	state := New(records(3), NewRand(1))
	if err := state.Select(1, 0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := state.Select(1, 2); err != nil {
		t.Fatalf("reselect: %v", err)
	}
	if got := state.Selection(1); got != 2 {
		t.Fatalf("expected selection 2, got %d", got)
	}
	if state.Answered() != 1 {
		t.Fatalf("expected one answered position, got %d", state.Answered())
	}
}

// TestSelectRejectsOutOfRange verifies invalid input leaves state unchanged.
func TestSelectRejectsOutOfRange(t *testing.T) {
	state := New(records(2), NewRand(1))
	if err := state.Select(5, 0); !errors.Is(err, ErrPosition) {
		t.Fatalf("expected ErrPosition, got %v", err)
	}
	if err := state.Select(0, 3); !errors.Is(err, ErrOption) {
		t.Fatalf("expected ErrOption, got %v", err)
	}
	if err := state.Select(0, -1); !errors.Is(err, ErrOption) {
		t.Fatalf("expected ErrOption for negative option, got %v", err)
	}
	if state.Answered() != 0 {
		t.Fatalf("expected no selections")
	}
}

// TestSubmitRequiresAllAnswers verifies the precondition leaves state untouched.
func TestSubmitRequiresAllAnswers(t *testing.T) {
	state := New(records(3), NewRand(1))
	_ = state.Select(0, 1)
	_ = state.Select(2, 0)
	before := state.Selections()

	_, err := state.Submit()
	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteError, got %v", err)
	}
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete")
	}
	if !slices.Equal(incomplete.Unanswered, []int{1}) {
		t.Fatalf("expected position 1 unanswered, got %v", incomplete.Unanswered)
	}
	if state.Locked() {
		t.Fatalf("session must not lock on incomplete submit")
	}
	if !slices.Equal(before, state.Selections()) {
		t.Fatalf("selections changed on incomplete submit")
	}
	if err := state.Select(1, 1); err != nil {
		t.Fatalf("expected selection to remain possible: %v", err)
	}
}

// TestSubmitLocksSelections verifies selections are immutable after submit.
func TestSubmitLocksSelections(t *testing.T) {
	state := New(records(2), NewRand(1))
	_ = state.Select(0, 1)
	_ = state.Select(1, 2)
	final, err := state.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !state.Locked() {
		t.Fatalf("expected locked session")
	}
	if err := state.Select(0, 0); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if !slices.Equal(final, state.Selections()) {
		t.Fatalf("selections changed after lock")
	}
	if _, err := state.Submit(); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected second submit to fail with ErrLocked, got %v", err)
	}
}

// TestRetakeStartsFresh verifies retake keeps the record set and clears answers.
func TestRetakeStartsFresh(t *testing.T) {
	state := New(records(6), NewRand(3))
	for position := 0; position < state.Len(); position++ {
		_ = state.Select(position, 0)
	}
	if _, err := state.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	next := state.Retake(NewRand(4))
	if next.Locked() {
		t.Fatalf("retake must not be locked")
	}
	if next.Answered() != 0 {
		t.Fatalf("retake must start unanswered")
	}
	originals := make([]int, 0, next.Len())
	for _, entry := range next.Entries() {
		originals = append(originals, entry.Original)
	}
	slices.Sort(originals)
	if !slices.Equal(originals, []int{0, 1, 2, 3, 4, 5}) {
		t.Fatalf("retake changed record set: %v", originals)
	}
}
