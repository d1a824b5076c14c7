package extract

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"quizkit/internal/question"
)

// ValidationPolicy controls what happens when extracted records fail
// load-time validation.
type ValidationPolicy string

const (
	ValidationWarn   ValidationPolicy = "warn"
	ValidationReject ValidationPolicy = "reject"
	ValidationOff    ValidationPolicy = "off"
)

// Options configures a Resolver.
type Options struct {
	Permissive bool
	Validation ValidationPolicy
	Logger     *zap.Logger
}

// Result holds the records from the winning source.
type Result struct {
	Records []question.Record
	Source  string
	// Issues is set when validation found problems under the warn policy.
	Issues *question.ValidationError
}

// Resolver walks candidate sources in order until one yields records.
type Resolver struct {
	parser     Parser
	validation ValidationPolicy
	logger     *zap.Logger
}

// NewResolver builds a resolver from options.
func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validation := opts.Validation
	if validation == "" {
		validation = ValidationWarn
	}
	return &Resolver{
		parser:     Parser{Permissive: opts.Permissive},
		validation: validation,
		logger:     logger,
	}
}

// Sources returns the ordered chain for an environment: every recognized
// global first, then every script block in document order.
func (r *Resolver) Sources(env Environment) []Source {
	sources := make([]Source, 0, len(Names)+len(env.Blocks))
	for _, name := range Names {
		sources = append(sources, GlobalSource{Key: name})
	}
	for i := range env.Blocks {
		sources = append(sources, BlockSource{Index: i, Parser: r.parser})
	}
	return sources
}

// Resolve returns the first records found, or a *NotFoundError.
func (r *Resolver) Resolve(env Environment) (Result, error) {
	return r.ResolveChain(env, r.Sources(env))
}

// ResolveChain tries the given sources in order.
func (r *Resolver) ResolveChain(env Environment, sources []Source) (Result, error) {
	var attempts []*Failure
	for _, source := range sources {
		records, err := r.try(env, source)
		if err != nil {
			failure := &Failure{Source: source.Name(), Err: err}
			attempts = append(attempts, failure)
			if !errors.Is(err, ErrNoMatch) {
				r.logger.Debug("skipping candidate source", zap.String("source", source.Name()), zap.Error(err))
			}
			continue
		}
		result := Result{Records: records, Source: source.Name()}
		if r.validation == ValidationWarn {
			if issues := asValidationError(question.Validate(records)); issues != nil {
				result.Issues = issues
				r.logger.Warn("question data has problems", zap.String("source", source.Name()), zap.Error(issues))
			}
		}
		r.logger.Debug("question data resolved", zap.String("source", source.Name()), zap.Int("records", len(records)))
		return result, nil
	}
	return Result{}, &NotFoundError{Attempts: attempts}
}

// try resolves one source and applies the reject policy.
func (r *Resolver) try(env Environment, source Source) (records []question.Record, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			records = nil
			err = fmt.Errorf("%w: %v", ErrShape, recovered)
		}
	}()
	records, err = source.Resolve(env)
	if err != nil {
		return nil, err
	}
	if r.validation == ValidationReject {
		if verr := question.Validate(records); verr != nil {
			return nil, fmt.Errorf("%w: %w", ErrRejected, verr)
		}
	}
	return records, nil
}

func asValidationError(err error) *question.ValidationError {
	var verr *question.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}
