package cli

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"quizkit/internal/config"
	"quizkit/internal/dom"
	"quizkit/internal/extract"
	"quizkit/internal/question"
)

// quizSource is the question data behind one input path.
type quizSource struct {
	doc     *dom.Document
	records []question.Record
	origin  string
	issues  error
	missing *extract.NotFoundError
}

// found reports whether question data was located.
func (s quizSource) found() bool {
	return s.missing == nil
}

// openPage parses an HTML page and resolves its question data. A page
// without data is not an error; the result reports it through missing.
func openPage(path, globalsPath string, cfg config.Config, policy extract.ValidationPolicy, logger *zap.Logger) (quizSource, error) {
	doc, err := dom.ParseFile(path)
	if err != nil {
		return quizSource{}, err
	}
	globals, islandErrs := doc.DataIslands(extract.Names)
	for _, islandErr := range islandErrs {
		logger.Warn("ignoring data island", zap.Error(islandErr))
	}
	if globalsPath != "" {
		sidecar, err := loadGlobals(globalsPath)
		if err != nil {
			return quizSource{}, err
		}
		for name, value := range sidecar {
			globals[name] = value
		}
	}

	resolver := extract.NewResolver(extract.Options{
		Permissive: cfg.Extract.Permissive,
		Validation: policy,
		Logger:     logger,
	})
	result, err := resolver.Resolve(extract.Environment{Globals: globals, Blocks: doc.Blocks()})
	if err != nil {
		var missing *extract.NotFoundError
		if errors.As(err, &missing) {
			return quizSource{doc: doc, missing: missing}, nil
		}
		return quizSource{}, err
	}
	source := quizSource{doc: doc, records: result.Records, origin: result.Source}
	if result.Issues != nil {
		source.issues = result.Issues
	}
	return source, nil
}

// openQuestions loads a question file and applies the validation policy.
func openQuestions(path string, policy extract.ValidationPolicy, logger *zap.Logger) (quizSource, error) {
	records, err := question.LoadFile(path)
	if err != nil {
		return quizSource{}, err
	}
	source := quizSource{records: records, origin: path}
	if policy == extract.ValidationOff {
		return source, nil
	}
	if err := question.Validate(records); err != nil {
		if policy == extract.ValidationReject {
			return quizSource{}, fmt.Errorf("%w: %w", extract.ErrRejected, err)
		}
		logger.Warn("question data has problems", zap.String("source", path), zap.Error(err))
		source.issues = err
	}
	return source, nil
}

// loadGlobals reads a JSON or YAML mapping of global names to values.
func loadGlobals(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read globals: %w", err)
	}
	var globals map[string]any
	if err := yaml.Unmarshal(data, &globals); err != nil {
		return nil, fmt.Errorf("parse globals: %w", err)
	}
	if globals == nil {
		globals = map[string]any{}
	}
	return globals, nil
}

// describeMissing renders the attempts of a failed resolution.
func describeMissing(missing *extract.NotFoundError) string {
	text := "no question data found"
	for _, attempt := range missing.Attempts {
		if errors.Is(attempt.Err, extract.ErrNoMatch) {
			continue
		}
		text += fmt.Sprintf("\n  %s: %v", attempt.Source, attempt.Err)
	}
	return text
}
