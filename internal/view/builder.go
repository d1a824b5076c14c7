package view

import (
	"fmt"
	"html"
	"strconv"

	"quizkit/internal/session"
)

// Class names shared by every surface.
const (
	ClassQuestion    = "question"
	ClassNumber      = "question-number"
	ClassText        = "question-text"
	ClassOptions     = "options"
	ClassOption      = "option"
	ClassExplanation = "explanation"
	ClassSelected    = "selected"
	ClassCorrect     = "correct"
	ClassIncorrect   = "incorrect"
	ClassShow        = "show"
)

// QuestionView holds the handles of one rendered question.
type QuestionView struct {
	Position    int
	Container   Handle
	Options     []Handle
	Explanation Handle
	surface     Surface
}

// QuestionID returns the element id of the question at position.
func QuestionID(position int) string {
	return fmt.Sprintf("question-%d", position)
}

// ExplanationID returns the element id of the explanation at position.
func ExplanationID(position int) string {
	return fmt.Sprintf("explanation-%d", position)
}

// BuildQuestion renders the entry at position under parent. Options keep the
// record's own order. onSelect is called with the option index on activation
// and reports whether the selection was accepted; only accepted selections
// are marked.
func BuildQuestion(surface Surface, parent Handle, entry session.Entry, position, total int, placeholder string, onSelect func(option int) bool) QuestionView {
	container := surface.Render(parent, Element{
		Tag:     "div",
		ID:      QuestionID(position),
		Classes: []string{ClassQuestion},
		Attrs:   map[string]string{"data-original": strconv.Itoa(entry.Original)},
	})
	surface.Render(container, Element{
		Tag:     "div",
		Classes: []string{ClassNumber},
		Text:    fmt.Sprintf("Question %d of %d", position+1, total),
	})
	surface.Render(container, Element{
		Tag:     "div",
		Classes: []string{ClassText},
		Markup:  entry.Record.Prompt,
	})
	optionsBox := surface.Render(container, Element{Tag: "div", Classes: []string{ClassOptions}})

	qv := QuestionView{Position: position, Container: container, surface: surface}
	for index, option := range entry.Record.Options {
		handle := surface.Render(optionsBox, Element{
			Tag:     "div",
			Classes: []string{ClassOption},
			Attrs: map[string]string{
				"data-question": strconv.Itoa(position),
				"data-option":   strconv.Itoa(index),
			},
			Markup: option,
		})
		qv.Options = append(qv.Options, handle)
		optionIndex := index
		surface.OnActivate(handle, func() {
			if onSelect != nil && onSelect(optionIndex) {
				qv.MarkSelected(optionIndex)
			}
		})
	}

	qv.Explanation = surface.Render(container, Element{
		Tag:     "div",
		ID:      ExplanationID(position),
		Classes: []string{ClassExplanation},
		Markup:  "<strong>Explanation:</strong> " + explanationMarkup(entry, placeholder),
	})
	return qv
}

// MarkSelected makes option the only selected option of the question.
func (qv QuestionView) MarkSelected(option int) {
	for index, handle := range qv.Options {
		qv.surface.SetClass(handle, ClassSelected, index == option)
	}
}

// Reveal marks the correct option, marks a differing selection incorrect,
// disables every option and shows the explanation.
func (qv QuestionView) Reveal(selected, correct int) {
	for index, handle := range qv.Options {
		qv.surface.OnActivate(handle, nil)
		qv.surface.SetDisabled(handle, true)
		if index == correct {
			qv.surface.SetClass(handle, ClassCorrect, true)
		} else if index == selected {
			qv.surface.SetClass(handle, ClassIncorrect, true)
		}
	}
	qv.surface.SetClass(qv.Explanation, ClassShow, true)
}

func explanationMarkup(entry session.Entry, placeholder string) string {
	if entry.Record.Explanation != "" {
		return entry.Record.Explanation
	}
	return html.EscapeString(entry.Record.ExplanationOr(placeholder))
}
