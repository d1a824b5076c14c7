package play

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"quizkit/internal/engine"
	"quizkit/internal/question"
	"quizkit/internal/session"
	"quizkit/internal/view"
)

func startQuiz(t *testing.T) (*engine.Engine, *view.Tree) {
	t.Helper()
	tree := view.NewTree()
	records := []question.Record{
		{Prompt: "What is <b>2+2</b>?", Options: []string{"3", "4"}, Correct: 1, Explanation: "Arithmetic."},
		{Prompt: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo"}, Correct: 0},
		{Prompt: "Pick b", Options: []string{"a", "b"}, Correct: 1},
	}
	eng := engine.New(tree, records, engine.Options{Rand: session.NewRand(5)})
	eng.Start()
	return eng, tree
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m, cmd
}

func answerAll(t *testing.T, eng *engine.Engine) {
	t.Helper()
	for position := range eng.State().Len() {
		if err := eng.Choose(position, 0); err != nil {
			t.Fatalf("choose %d: %v", position, err)
		}
	}
}

// TestLinesHideExplanationsUntilReveal verifies hidden areas stay off screen.
func TestLinesHideExplanationsUntilReveal(t *testing.T) {
	eng, tree := startQuiz(t)
	screen := Text(tree)
	if strings.Contains(screen, "Explanation:") || strings.Contains(screen, "Retake Quiz") {
		t.Fatalf("expected explanations and results hidden, got:\n%s", screen)
	}
	if !strings.Contains(screen, "Question 1 of 3") || !strings.Contains(screen, "< Submit Quiz >") {
		t.Fatalf("expected question and submit lines, got:\n%s", screen)
	}
	answerAll(t, eng)
	if _, err := eng.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	screen = Text(tree)
	for _, want := range []string{"Explanation: Arithmetic.", "Explanation: No explanation provided.", "[✓]", "< Retake Quiz >", "< Submit Quiz > (disabled)"} {
		if !strings.Contains(screen, want) {
			t.Fatalf("expected %q on screen, got:\n%s", want, screen)
		}
	}
}

// TestQuestionLinesStripMarkup verifies prompts are shown as plain text.
func TestQuestionLinesStripMarkup(t *testing.T) {
	eng, tree := startQuiz(t)
	for position := range eng.State().Len() {
		if eng.State().Entry(position).Original != 0 {
			continue
		}
		lines := QuestionLines(tree, position)
		if len(lines) != 4 {
			t.Fatalf("expected number, prompt and two options, got %d lines", len(lines))
		}
		if lines[1].Text != "What is 2+2?" {
			t.Fatalf("unexpected prompt %q", lines[1].Text)
		}
		if got := plainLine(lines[3], true); !strings.HasSuffix(got, "2) [ ] 4") {
			t.Fatalf("unexpected option line %q", got)
		}
		return
	}
	t.Fatalf("first record not rendered")
}

// TestModelSelectsFocusedOption verifies enter selects the focused option.
func TestModelSelectsFocusedOption(t *testing.T) {
	eng, tree := startQuiz(t)
	m := NewModel(eng, tree, Options{NoColor: true})
	first := m.Focus()
	if first == nil || !first.HasClass(view.ClassOption) {
		t.Fatalf("expected initial focus on an option")
	}
	m, _ = press(t, m, "down", "enter")
	if first.HasClass(view.ClassSelected) {
		t.Fatalf("first option must not be selected")
	}
	if !m.Focus().HasClass(view.ClassSelected) {
		t.Fatalf("expected focused option to be selected")
	}
	if eng.State().Selection(0) != 1 {
		t.Fatalf("expected selection 1, got %d", eng.State().Selection(0))
	}
	m, _ = press(t, m, "up")
	if m.Focus() != first {
		t.Fatalf("expected focus back on first option")
	}
}

// TestModelIncompleteSubmitShowsNotice verifies the notice reaches the screen.
func TestModelIncompleteSubmitShowsNotice(t *testing.T) {
	eng, tree := startQuiz(t)
	m := NewModel(eng, tree, Options{NoColor: true})
	m, _ = press(t, m, "s")
	if !strings.Contains(m.View(), "! "+engine.IncompleteNotice) {
		t.Fatalf("expected notice in view, got:\n%s", m.View())
	}
	if eng.State().Locked() {
		t.Fatalf("incomplete submit must not lock")
	}
	m, _ = press(t, m, "down")
	if strings.Contains(m.View(), engine.IncompleteNotice) {
		t.Fatalf("expected notice cleared on next key")
	}
}

// TestModelSubmitRetakeAndBack verifies the results actions.
func TestModelSubmitRetakeAndBack(t *testing.T) {
	eng, tree := startQuiz(t)
	m := NewModel(eng, tree, Options{NoColor: true})
	answerAll(t, eng)
	m, _ = press(t, m, "s")
	if !eng.State().Locked() {
		t.Fatalf("expected locked session")
	}
	if m.Focus() == nil || m.Focus().ID != view.RetakeID {
		t.Fatalf("expected focus on retake, got %+v", m.Focus())
	}
	m, _ = press(t, m, "r")
	if eng.State().Locked() || eng.State().Answered() != 0 {
		t.Fatalf("expected fresh session after retake")
	}
	if _, cmd := press(t, m, "b"); cmd != nil {
		t.Fatalf("back must be ignored before submission")
	}

	answerAll(t, eng)
	m, _ = press(t, m, "s")
	m, cmd := press(t, m, "b")
	if m.Navigated() != engine.DefaultBackHref || cmd == nil {
		t.Fatalf("expected navigation and quit, got %q", m.Navigated())
	}
}

// TestRunPlain verifies the line-driven session.
func TestRunPlain(t *testing.T) {
	eng, tree := startQuiz(t)
	input := strings.Join([]string{"s", "9", "1", "1", "1", "s", "r", "q"}, "\n") + "\n"
	var out bytes.Buffer
	if err := RunPlain(strings.NewReader(input), &out, eng, tree); err != nil {
		t.Fatalf("run plain: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"! " + engine.IncompleteNotice,
		"no option 9",
		"all questions answered; s submits",
		"/3 (",
		"Explanation:",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if eng.State().Locked() {
		t.Fatalf("expected retake to unlock")
	}
	if strings.Count(text, "Question 1 of 3") < 2 {
		t.Fatalf("expected first question shown again after retake:\n%s", text)
	}
}

// TestRunPlainBack verifies leaving the quiz ends the session.
func TestRunPlainBack(t *testing.T) {
	eng, tree := startQuiz(t)
	var out bytes.Buffer
	if err := RunPlain(strings.NewReader("b\n1\n1\n1\ns\nb\n1\n"), &out, eng, tree); err != nil {
		t.Fatalf("run plain: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "submit before leaving") || !strings.Contains(text, "leaving quiz for ../index.html") {
		t.Fatalf("unexpected output:\n%s", text)
	}
	if len(tree.Navigations()) != 1 {
		t.Fatalf("expected one navigation, got %v", tree.Navigations())
	}
}
