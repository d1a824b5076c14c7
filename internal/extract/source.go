// Package extract locates quiz question data in a host environment.
//
// The environment may expose an already-structured value under a recognized
// name, or script blocks holding a textual assignment of one. Sources are
// tried in order and the first one that yields records wins.
package extract

import (
	"errors"
	"fmt"

	"quizkit/internal/question"
)

// Names recognized for question data, in lookup order.
var Names = []string{"questionsData", "questions"}

var (
	// ErrNotFound is returned when no source yields records.
	ErrNotFound = errors.New("question data not found")
	// ErrNoMatch means a source holds nothing that looks like question data.
	ErrNoMatch = errors.New("no question data assignment")
	// ErrStrictParse means the captured text is not valid JSON.
	ErrStrictParse = errors.New("strict parse failed")
	// ErrPermissiveParse means the captured text failed the permissive parser too.
	ErrPermissiveParse = errors.New("permissive parse failed")
	// ErrShape means the parsed value is not a record array.
	ErrShape = errors.New("value is not a question record array")
	// ErrEmpty means the record array holds no records.
	ErrEmpty = errors.New("question record array is empty")
	// ErrRejected means the records failed load-time validation.
	ErrRejected = errors.New("question records rejected by validation")
)

// Environment is the ambient input the extractor inspects.
type Environment struct {
	// Globals holds structured values keyed by name.
	Globals map[string]any
	// Blocks holds script texts in document order.
	Blocks []string
}

// Source is one candidate location for question data.
type Source interface {
	Name() string
	Resolve(env Environment) ([]question.Record, error)
}

// Failure records why a single source did not yield records.
type Failure struct {
	Source string
	Err    error
}

// Error returns a readable failure message.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Source, f.Err)
}

// Unwrap exposes the underlying failure kind.
func (f *Failure) Unwrap() error {
	return f.Err
}

// NotFoundError is returned when every source failed.
type NotFoundError struct {
	Attempts []*Failure
}

// Error returns a readable message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v after %d attempts", ErrNotFound, len(e.Attempts))
}

// Unwrap lets callers test with errors.Is(err, ErrNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
