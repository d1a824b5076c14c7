package extract

import (
	"fmt"

	"quizkit/internal/question"
)

// GlobalSource reads an already-structured value exposed under a name.
type GlobalSource struct {
	Key string
}

// Name identifies the source in diagnostics.
func (s GlobalSource) Name() string {
	return "global " + s.Key
}

// Resolve converts the named global into records.
func (s GlobalSource) Resolve(env Environment) ([]question.Record, error) {
	value, ok := env.Globals[s.Key]
	if !ok || value == nil {
		return nil, ErrNoMatch
	}
	return decodeRecords(value)
}

// BlockSource scans one script block for a textual assignment.
type BlockSource struct {
	Index  int
	Parser Parser
}

// Name identifies the source in diagnostics.
func (s BlockSource) Name() string {
	return fmt.Sprintf("script block %d", s.Index)
}

// Resolve matches the assignment pattern and parses the captured array.
func (s BlockSource) Resolve(env Environment) ([]question.Record, error) {
	if s.Index < 0 || s.Index >= len(env.Blocks) {
		return nil, ErrNoMatch
	}
	text, ok := FindAssignment(env.Blocks[s.Index])
	if !ok {
		return nil, ErrNoMatch
	}
	value, err := s.Parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return decodeRecords(value)
}

// decodeRecords requires a non-empty array and converts it into records.
func decodeRecords(value any) ([]question.Record, error) {
	var items []any
	switch typed := value.(type) {
	case []question.Record:
		if len(typed) == 0 {
			return nil, ErrEmpty
		}
		return append([]question.Record(nil), typed...), nil
	case []any:
		items = typed
	default:
		return nil, fmt.Errorf("%w: got %T", ErrShape, value)
	}
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	records, err := question.Decode(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	return records, nil
}
