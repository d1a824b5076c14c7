package question

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadFileYAML verifies YAML question files load with a questions key.
func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yml")
	payload := `questions:
  - question: "What is 2+2?"
    options: ["4", "5"]
    correct: 0
    explanation: Arithmetic.
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	record := records[0]
	if record.Prompt != "What is 2+2?" {
		t.Fatalf("unexpected prompt %q", record.Prompt)
	}
	if len(record.Options) != 2 || record.Correct != 0 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Explanation != "Arithmetic." {
		t.Fatalf("unexpected explanation %q", record.Explanation)
	}
}

// TestLoadFileJSONArray verifies a bare JSON array is accepted.
func TestLoadFileJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	payload := `[{"question": "Pick b", "options": ["a", "b", "c"], "correct": 1}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(records) != 1 || records[0].Correct != 1 {
		t.Fatalf("unexpected records: %+v", records)
	}
	if got := records[0].ExplanationOr(""); got != DefaultExplanation {
		t.Fatalf("expected placeholder explanation, got %q", got)
	}
}

// TestLoadFileRejectsWrongShape verifies shape errors surface as validation errors.
func TestLoadFileRejectsWrongShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	payload := `[{"question": "Missing options", "correct": "first"}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	_, err := LoadFile(path)
	if err == nil {
		t.Fatalf("expected shape error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Issues) < 2 {
		t.Fatalf("expected issues for options and correct, got %+v", validationErr.Issues)
	}
}

// TestLoadFileRejectsMultipleDocuments verifies only one YAML document is accepted.
func TestLoadFileRejectsMultipleDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")
	payload := "- question: a\n  options: [x, y]\n  correct: 0\n---\n- question: b\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected multiple document error")
	}
}

// TestValidateReportsUnanswerableRecords verifies semantic checks.
func TestValidateReportsUnanswerableRecords(t *testing.T) {
	records := []Record{
		{Prompt: "ok", Options: []string{"a", "b"}, Correct: 1},
		{Prompt: " ", Options: []string{"only"}, Correct: 3},
	}
	err := Validate(records)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"questions[1].question", "questions[1].options", "questions[1].correct"} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %+v", want, validationErr.Issues)
		}
	}
	if fields["questions[0].correct"] {
		t.Fatalf("did not expect issue for valid record")
	}
}

// TestValidateAcceptsWellFormedRecords verifies no error for valid input.
func TestValidateAcceptsWellFormedRecords(t *testing.T) {
	records := []Record{{Prompt: "q", Options: []string{"a", "b"}, Correct: 0}}
	if err := Validate(records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
