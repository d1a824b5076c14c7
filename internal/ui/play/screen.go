// Package play hosts a quiz in the terminal. The engine renders into a
// view.Tree; this package turns the tree into screen lines and maps keys or
// typed commands onto activations.
package play

import (
	"strconv"
	"strings"

	"quizkit/internal/dom"
	"quizkit/internal/view"
)

// Line is one visible element of the screen.
type Line struct {
	Node  *view.Node
	Depth int
	Text  string
}

// Focusable reports whether the line can receive focus.
func (l Line) Focusable() bool {
	return l.Node.Activatable()
}

// Option returns the option index of an option line.
func (l Line) Option() (int, bool) {
	if !l.Node.HasClass(view.ClassOption) {
		return 0, false
	}
	index, err := strconv.Atoi(l.Node.Attrs["data-option"])
	if err != nil {
		return 0, false
	}
	return index, true
}

// Lines lists the visible elements of the tree that carry text or can be
// activated, in document order.
func Lines(tree *view.Tree) []Line {
	return linesUnder(tree.Root, 0, nil)
}

// QuestionLines lists the visible lines of the question at position.
func QuestionLines(tree *view.Tree, position int) []Line {
	node := tree.Node(view.QuestionID(position))
	if node == nil {
		return nil
	}
	return linesUnder(node, 0, nil)
}

func linesUnder(node *view.Node, depth int, lines []Line) []Line {
	for _, child := range node.Children {
		if !shown(child) {
			continue
		}
		text := nodeText(child)
		if text != "" || child.Activatable() {
			lines = append(lines, Line{Node: child, Depth: depth, Text: text})
		}
		lines = linesUnder(child, depth+1, lines)
	}
	return lines
}

// shown applies the visibility the page stylesheet gives explanations and
// the results area.
func shown(node *view.Node) bool {
	if node.HasClass(view.ClassExplanation) || node.ID == view.ResultsID {
		return node.HasClass(view.ClassShow)
	}
	return true
}

func nodeText(node *view.Node) string {
	if node.Markup != "" {
		return dom.PlainText(node.Markup)
	}
	return strings.Join(strings.Fields(node.Text), " ")
}

// marker returns the state glyph of an option line.
func marker(node *view.Node) string {
	switch {
	case node.HasClass(view.ClassCorrect):
		return "[✓]"
	case node.HasClass(view.ClassIncorrect):
		return "[✗]"
	case node.HasClass(view.ClassSelected):
		return "[•]"
	default:
		return "[ ]"
	}
}

// plainLine formats a line without styling. numbered prefixes options with
// their 1-based index for typed selection.
func plainLine(line Line, numbered bool) string {
	indent := strings.Repeat("  ", line.Depth)
	if option, ok := line.Option(); ok {
		prefix := marker(line.Node) + " "
		if numbered {
			prefix = strconv.Itoa(option+1) + ") " + prefix
		}
		return indent + prefix + line.Text
	}
	if line.Node.Tag == "button" {
		label := "< " + line.Text + " >"
		if line.Node.Disabled {
			label += " (disabled)"
		}
		return indent + label
	}
	return indent + line.Text
}

// Text renders the whole screen without styling.
func Text(tree *view.Tree) string {
	var b strings.Builder
	for _, line := range Lines(tree) {
		b.WriteString(plainLine(line, false))
		b.WriteByte('\n')
	}
	return b.String()
}
