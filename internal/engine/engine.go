// Package engine runs a quiz on a view.Surface: it resolves the render
// targets, owns the current session, and reacts to option, submit, retake
// and back activations.
package engine

import (
	"errors"
	"math/rand/v2"

	"go.uber.org/zap"

	"quizkit/internal/question"
	"quizkit/internal/scoring"
	"quizkit/internal/session"
	"quizkit/internal/view"
)

// IncompleteNotice is shown when submitting with unanswered questions.
const IncompleteNotice = "Please answer all questions before submitting."

// DefaultBackHref is the navigation target of the back action.
const DefaultBackHref = "../index.html"

// Options configures an Engine.
type Options struct {
	BackHref    string
	Placeholder string
	Rand        *rand.Rand
	Logger      *zap.Logger
	// OnResult is called after every successful submission.
	OnResult func(scoring.Result)
}

// Engine drives one quiz on one surface.
type Engine struct {
	surface view.Surface
	records []question.Record
	opts    Options
	logger  *zap.Logger

	state        *session.State
	questions    []view.QuestionView
	container    view.Handle
	submit       view.Handle
	submitAnchor view.Handle
	results      view.Handle
	result       *scoring.Result
}

// New prepares an engine; nothing is rendered until Start.
func New(surface view.Surface, records []question.Record, opts Options) *Engine {
	if opts.BackHref == "" {
		opts.BackHref = DefaultBackHref
	}
	if opts.Placeholder == "" {
		opts.Placeholder = question.DefaultExplanation
	}
	if opts.Rand == nil {
		opts.Rand = session.NewRand(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		surface: surface,
		records: append([]question.Record(nil), records...),
		opts:    opts,
		logger:  logger,
	}
}

// Start resolves render targets, creates a session and renders it.
func (e *Engine) Start() {
	e.resolveTargets()
	e.state = session.New(e.records, e.opts.Rand)
	e.render()
	e.surface.OnActivate(e.submit, func() { _, _ = e.Submit() })
}

// State returns the current session.
func (e *Engine) State() *session.State {
	return e.state
}

// Questions returns the rendered question views in presentation order.
func (e *Engine) Questions() []view.QuestionView {
	return append([]view.QuestionView(nil), e.questions...)
}

// SubmitControl returns the submit control handle.
func (e *Engine) SubmitControl() view.Handle {
	return e.submit
}

// Result returns the last submission result, if any.
func (e *Engine) Result() (scoring.Result, bool) {
	if e.result == nil {
		return scoring.Result{}, false
	}
	return *e.result, true
}

// Choose selects option at position as if the option had been activated.
func (e *Engine) Choose(position, option int) error {
	if err := e.state.Select(position, option); err != nil {
		return err
	}
	e.questions[position].MarkSelected(option)
	return nil
}

// Submit grades the session. With unanswered questions it shows a notice
// and changes nothing.
func (e *Engine) Submit() (scoring.Result, error) {
	selections, err := e.state.Submit()
	if err != nil {
		if errors.Is(err, session.ErrIncomplete) {
			e.surface.Notify(IncompleteNotice)
		}
		e.logger.Debug("submit refused", zap.String("session", e.state.ID()), zap.Error(err))
		return scoring.Result{}, err
	}

	result := scoring.Evaluate(e.state.Entries(), selections)
	for position, qv := range e.questions {
		qv.Reveal(selections[position], e.state.Entry(position).Record.Correct)
	}
	e.showResults(result)
	e.surface.SetDisabled(e.submit, true)
	e.result = &result

	e.logger.Info("quiz submitted",
		zap.String("session", e.state.ID()),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Int("percentage", result.Percentage),
		zap.String("tier", result.Tier.Name),
	)
	if e.opts.OnResult != nil {
		e.opts.OnResult(result)
	}
	return result, nil
}

// Retake discards the session and renders a fresh one in a new order.
func (e *Engine) Retake() {
	previous := e.state.ID()
	e.state = e.state.Retake(e.opts.Rand)
	e.result = nil
	e.surface.Clear(e.container)
	e.render()
	if e.results != nil {
		e.surface.SetClass(e.results, view.ClassShow, false)
	}
	e.surface.SetDisabled(e.submit, false)
	e.logger.Info("quiz restarted", zap.String("previous", previous), zap.String("session", e.state.ID()))
}

// Back leaves the quiz.
func (e *Engine) Back() {
	e.surface.Navigate(e.opts.BackHref)
}

// resolveTargets finds or creates the container and submit control.
func (e *Engine) resolveTargets() {
	if e.container != nil {
		return
	}
	if handle, ok := e.surface.Lookup(view.ContainerID); ok {
		e.container = handle
	} else if handle, ok := e.surface.Lookup(view.AltContainerID); ok {
		e.container = handle
	} else {
		wrapper := e.surface.Mount(view.AnchorBodyStart, nil, view.ContainerElement())
		e.container, _ = e.surface.Lookup(view.ContainerID)
		if e.container == nil {
			e.container = wrapper
		}
	}

	if handle, ok := e.surface.Lookup(view.SubmitID); ok {
		e.submit = handle
		e.submitAnchor = e.containerSibling(handle)
		if e.submitAnchor == nil {
			e.submitAnchor = e.container
		}
		return
	}
	e.submitAnchor = e.surface.Mount(view.AnchorAfter, e.container, view.SubmitElement())
	e.submit, _ = e.surface.Lookup(view.SubmitID)
}

// containerSibling returns h or the ancestor of h that shares the
// container's parent, or nil when h lives elsewhere.
func (e *Engine) containerSibling(h view.Handle) view.Handle {
	parent, ok := e.surface.Parent(e.container)
	if !ok {
		return nil
	}
	for current := h; ; {
		up, ok := e.surface.Parent(current)
		if !ok {
			return nil
		}
		if up == parent {
			return current
		}
		current = up
	}
}

// render builds every question of the current session.
func (e *Engine) render() {
	total := e.state.Len()
	e.questions = make([]view.QuestionView, 0, total)
	for position := 0; position < total; position++ {
		position := position
		qv := view.BuildQuestion(e.surface, e.container, e.state.Entry(position), position, total, e.opts.Placeholder,
			func(option int) bool {
				if err := e.state.Select(position, option); err != nil {
					e.logger.Debug("selection ignored", zap.Int("position", position), zap.Int("option", option), zap.Error(err))
					return false
				}
				return true
			})
		e.questions = append(e.questions, qv)
	}
	e.logger.Info("quiz rendered", zap.String("session", e.state.ID()), zap.Int("questions", total))
}

// showResults fills the results area, creating it on first use.
func (e *Engine) showResults(result scoring.Result) {
	if e.results == nil {
		if handle, ok := e.surface.Lookup(view.ResultsID); ok {
			e.results = handle
		} else {
			e.results = e.surface.Mount(view.AnchorAfter, e.submitAnchor, view.ResultsElement())
		}
		if retake, ok := e.surface.Lookup(view.RetakeID); ok {
			e.surface.OnActivate(retake, e.Retake)
		}
		if back, ok := e.surface.Lookup(view.BackID); ok {
			e.surface.OnActivate(back, e.Back)
		}
	}
	if score, ok := e.surface.Lookup(view.ScoreID); ok {
		e.surface.SetText(score, result.Summary())
	}
	if feedback, ok := e.surface.Lookup(view.FeedbackID); ok {
		e.surface.SetText(feedback, result.Tier.Message)
	}
	e.surface.SetClass(e.results, view.ClassShow, true)
}
