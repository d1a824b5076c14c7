package play

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizkit/internal/view"
)

// renderLines renders the screen body, highlighting the focused element.
func renderLines(lines []Line, focus *view.Node, noColor bool) string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		text := plainLine(line, false)
		if line.Node == focus {
			text = "> " + text
		} else {
			text = "  " + text
		}
		rendered = append(rendered, stylize(text, noColor, lineStyle(line, line.Node == focus)))
	}
	return strings.Join(rendered, "\n")
}

// lineStyle picks the style of a line from its classes.
func lineStyle(line Line, focused bool) lipgloss.Style {
	node := line.Node
	style := lipgloss.NewStyle()
	switch {
	case node.HasClass(view.ClassCorrect):
		style = style.Foreground(lipgloss.Color("42"))
	case node.HasClass(view.ClassIncorrect):
		style = style.Foreground(lipgloss.Color("196"))
	case node.HasClass(view.ClassSelected):
		style = style.Foreground(lipgloss.Color("33"))
	case node.HasClass(view.ClassNumber):
		style = style.Foreground(lipgloss.Color("242"))
	case node.HasClass(view.ClassText), node.ID == view.ScoreID:
		style = style.Bold(true)
	case node.HasClass(view.ClassExplanation):
		style = style.Foreground(lipgloss.Color("244"))
	case node.Disabled:
		style = style.Foreground(lipgloss.Color("240"))
	}
	if focused {
		style = style.Reverse(true)
	}
	return style
}

// renderNotice renders a notice line.
func renderNotice(text string, noColor bool) string {
	return stylize("! "+text, noColor, lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true))
}

// stylize applies optional styling.
func stylize(text string, noColor bool, style lipgloss.Style) string {
	if noColor {
		return text
	}
	return style.Render(text)
}
