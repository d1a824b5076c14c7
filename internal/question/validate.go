package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question set.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate checks records for problems that would make a question unanswerable
// or unreadable. The records themselves are not modified.
func Validate(records []Record) error {
	collector := &issueCollector{}
	if len(records) == 0 {
		collector.add("questions", "must include at least one entry")
	}
	for i, record := range records {
		prefix := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(record.Prompt) == "" {
			collector.add(prefix+".question", "is required")
		}
		if len(record.Options) < 2 {
			collector.add(prefix+".options", "must include at least two entries")
		}
		for optionIndex, option := range record.Options {
			if strings.TrimSpace(option) == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, optionIndex), "is empty")
			}
		}
		if !record.HasValidCorrect() {
			collector.add(prefix+".correct", fmt.Sprintf("index %d is out of range for %d options", record.Correct, len(record.Options)))
		}
	}
	return collector.result()
}
