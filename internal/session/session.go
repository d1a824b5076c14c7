// Package session owns the presentation order and answer selections for one
// quiz attempt.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"quizkit/internal/question"
)

// Unanswered marks a position with no selection.
const Unanswered = -1

var (
	// ErrLocked means the session was submitted and takes no more changes.
	ErrLocked = errors.New("session is locked")
	// ErrPosition means a position outside the session.
	ErrPosition = errors.New("position out of range")
	// ErrOption means an option index outside the question's options.
	ErrOption = errors.New("option out of range")
	// ErrIncomplete means a submit with unanswered questions.
	ErrIncomplete = errors.New("not all questions are answered")
)

// IncompleteError lists the positions still unanswered at submit time.
type IncompleteError struct {
	Unanswered []int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%v: %d unanswered", ErrIncomplete, len(e.Unanswered))
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}

// Entry is a record placed at a presentation position. Original is the
// record's index in the extracted data and is only used for diagnostics.
type Entry struct {
	Record   question.Record
	Original int
}

// State is the mutable state of one quiz attempt. It is not safe for
// concurrent use; hosts drive it from a single event loop.
type State struct {
	id         string
	records    []question.Record
	order      []Entry
	selections []int
	locked     bool
}

// New builds a session over records in a uniformly random order.
func New(records []question.Record, rng *rand.Rand) *State {
	order := make([]Entry, len(records))
	for i, record := range records {
		order[i] = Entry{Record: record, Original: i}
	}
	Shuffle(order, rng)

	selections := make([]int, len(order))
	for i := range selections {
		selections[i] = Unanswered
	}
	return &State{
		id:         uuid.NewString(),
		records:    append([]question.Record(nil), records...),
		order:      order,
		selections: selections,
	}
}

// Retake returns a fresh session over the same records with a new order.
func (s *State) Retake(rng *rand.Rand) *State {
	return New(s.records, rng)
}

// ID identifies the session in logs.
func (s *State) ID() string {
	return s.id
}

// Len returns the number of presentation positions.
func (s *State) Len() int {
	return len(s.order)
}

// Entry returns the entry at a presentation position.
func (s *State) Entry(position int) Entry {
	return s.order[position]
}

// Entries returns a copy of the presentation order.
func (s *State) Entries() []Entry {
	return append([]Entry(nil), s.order...)
}

// Selection returns the chosen option at a position, or Unanswered.
func (s *State) Selection(position int) int {
	return s.selections[position]
}

// Selections returns a copy of all selections.
func (s *State) Selections() []int {
	return append([]int(nil), s.selections...)
}

// Locked reports whether the session has been submitted.
func (s *State) Locked() bool {
	return s.locked
}

// Answered returns how many positions have a selection.
func (s *State) Answered() int {
	count := 0
	for _, selection := range s.selections {
		if selection != Unanswered {
			count++
		}
	}
	return count
}

// Select records option as the answer at position. The last write wins.
func (s *State) Select(position, option int) error {
	if s.locked {
		return ErrLocked
	}
	if position < 0 || position >= len(s.order) {
		return fmt.Errorf("%w: %d", ErrPosition, position)
	}
	if option < 0 || option >= len(s.order[position].Record.Options) {
		return fmt.Errorf("%w: %d", ErrOption, option)
	}
	s.selections[position] = option
	return nil
}

// Submit locks the session when every position is answered and returns the
// final selections. An incomplete session is left untouched.
func (s *State) Submit() ([]int, error) {
	if s.locked {
		return nil, ErrLocked
	}
	var unanswered []int
	for position, selection := range s.selections {
		if selection == Unanswered {
			unanswered = append(unanswered, position)
		}
	}
	if len(unanswered) > 0 {
		return nil, &IncompleteError{Unanswered: unanswered}
	}
	s.locked = true
	return s.Selections(), nil
}
