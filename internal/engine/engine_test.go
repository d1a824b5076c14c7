package engine

import (
	"errors"
	"slices"
	"testing"

	"quizkit/internal/question"
	"quizkit/internal/scoring"
	"quizkit/internal/session"
	"quizkit/internal/view"
)

func quizRecords() []question.Record {
	return []question.Record{
		{Prompt: "first", Options: []string{"a", "b", "c"}, Correct: 0},
		{Prompt: "second", Options: []string{"a", "b", "c"}, Correct: 2},
		{Prompt: "third", Options: []string{"a", "b", "c"}, Correct: 2, Explanation: "Because."},
	}
}

func startEngine(t *testing.T, tree *view.Tree, opts Options) *Engine {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = session.NewRand(11)
	}
	e := New(tree, quizRecords(), opts)
	e.Start()
	return e
}

// answerAll activates the given option of every question through the surface.
func answerAll(t *testing.T, tree *view.Tree, e *Engine, pick func(entry session.Entry) int) {
	t.Helper()
	for position, qv := range e.Questions() {
		option := pick(e.State().Entry(position))
		if !tree.Activate(qv.Options[option]) {
			t.Fatalf("activation of option %d at %d was refused", option, position)
		}
	}
}

// TestStartCreatesTargets verifies the wrapper, container and submit control are created.
func TestStartCreatesTargets(t *testing.T) {
	tree := view.NewTree()
	e := startEngine(t, tree, Options{})

	wrapper := tree.Root.Children[0]
	if !wrapper.HasClass("quiz-wrapper") {
		t.Fatalf("expected wrapper at body start, got %+v", wrapper)
	}
	container := tree.Node(view.ContainerID)
	if container == nil || container.Parent != wrapper {
		t.Fatalf("expected container inside wrapper")
	}
	if len(container.Children) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(container.Children))
	}
	submit := tree.Node(view.SubmitID)
	if submit == nil || submit.Text != "Submit Quiz" {
		t.Fatalf("expected created submit control")
	}
	if len(wrapper.Children) != 2 || wrapper.Children[1] != submit.Parent {
		t.Fatalf("expected submit container right after the container")
	}
	if e.State().Len() != 3 {
		t.Fatalf("expected session of 3")
	}
}

// TestStartUsesExistingTargets verifies host elements are reused.
func TestStartUsesExistingTargets(t *testing.T) {
	tree := view.NewTree()
	tree.Render(nil, view.Element{Tag: "h1", Text: "Module quiz"})
	tree.Render(nil, view.Element{Tag: "div", ID: view.AltContainerID})
	tree.Render(nil, view.Element{Tag: "button", ID: view.SubmitID, Text: "Done"})
	startEngine(t, tree, Options{})

	if len(tree.Root.Children) != 3 {
		t.Fatalf("expected no new top-level elements, got %d", len(tree.Root.Children))
	}
	if got := len(tree.Node(view.AltContainerID).Children); got != 3 {
		t.Fatalf("expected questions in alternate container, got %d", got)
	}
}

// TestResultsFollowExistingSubmitContainer verifies results are placed next
// to the container level element holding an existing submit button.
func TestResultsFollowExistingSubmitContainer(t *testing.T) {
	tree := view.NewTree()
	page := tree.Render(nil, view.Element{Tag: "main"})
	tree.Render(page, view.Element{Tag: "div", ID: view.ContainerID})
	box := tree.Render(page, view.Element{
		Tag:     "div",
		Classes: []string{"submit-container"},
		Children: []view.Element{
			{Tag: "button", ID: view.SubmitID, Text: "Submit"},
		},
	})
	tree.Render(page, view.Element{Tag: "footer"})
	e := startEngine(t, tree, Options{})

	answerAll(t, tree, e, func(entry session.Entry) int { return entry.Record.Correct })
	if _, err := e.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	results := tree.Node(view.ResultsID)
	if results == nil {
		t.Fatalf("expected results")
	}
	if results.Parent != page.(*view.Node) {
		t.Fatalf("expected results beside the submit container, got parent %+v", results.Parent)
	}
	siblings := page.(*view.Node).Children
	index := slices.Index(siblings, box.(*view.Node))
	if index+1 >= len(siblings) || siblings[index+1] != results {
		t.Fatalf("expected results right after the submit container")
	}
	if len(box.(*view.Node).Children) != 1 {
		t.Fatalf("submit container must only hold the button")
	}
}

// TestSubmitIncompleteShowsNotice verifies the precondition blocks grading.
func TestSubmitIncompleteShowsNotice(t *testing.T) {
	tree := view.NewTree()
	e := startEngine(t, tree, Options{})
	tree.Activate(e.Questions()[0].Options[1])

	if !tree.ActivateID(view.SubmitID) {
		t.Fatalf("expected submit to be activatable")
	}
	if notices := tree.Notices(); len(notices) != 1 || notices[0] != IncompleteNotice {
		t.Fatalf("unexpected notices: %v", notices)
	}
	if e.State().Locked() {
		t.Fatalf("session must stay unlocked")
	}
	if tree.Node(view.ResultsID) != nil {
		t.Fatalf("results must not be created")
	}
	if _, ok := e.Result(); ok {
		t.Fatalf("expected no result")
	}
}

// TestSubmitRevealsAndScores verifies grading, reveal marks and results text.
func TestSubmitRevealsAndScores(t *testing.T) {
	tree := view.NewTree()
	var reported []scoring.Result
	e := startEngine(t, tree, Options{OnResult: func(r scoring.Result) { reported = append(reported, r) }})

	// Answer "second" wrong, the rest right.
	answerAll(t, tree, e, func(entry session.Entry) int {
		if entry.Record.Prompt == "second" {
			return 1
		}
		return entry.Record.Correct
	})
	result, err := e.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Summary() != "2/3 (67%)" || result.Tier.Name != "fair" {
		t.Fatalf("unexpected result %s %q", result.Summary(), result.Tier.Name)
	}
	if len(reported) != 1 {
		t.Fatalf("expected OnResult once, got %d", len(reported))
	}

	for position, qv := range e.Questions() {
		entry := e.State().Entry(position)
		correct := qv.Options[entry.Record.Correct].(*view.Node)
		if !correct.HasClass(view.ClassCorrect) {
			t.Fatalf("position %d: correct option not marked", position)
		}
		if entry.Record.Prompt == "second" {
			if !qv.Options[1].(*view.Node).HasClass(view.ClassIncorrect) {
				t.Fatalf("wrong choice not marked incorrect")
			}
		} else if correct.HasClass(view.ClassIncorrect) {
			t.Fatalf("right choice must not be marked incorrect")
		}
		if !qv.Explanation.(*view.Node).HasClass(view.ClassShow) {
			t.Fatalf("explanation %d not shown", position)
		}
	}

	if got := tree.Node(view.ScoreID).Text; got != "2/3 (67%)" {
		t.Fatalf("unexpected score text %q", got)
	}
	if got := tree.Node(view.FeedbackID).Text; got != "Fair performance." {
		t.Fatalf("unexpected feedback %q", got)
	}
	results := tree.Node(view.ResultsID)
	submitBox := tree.Node(view.SubmitID).Parent
	siblings := submitBox.Parent.Children
	index := slices.Index(siblings, submitBox)
	if index+1 >= len(siblings) || siblings[index+1] != results || !results.HasClass(view.ClassShow) {
		t.Fatalf("expected visible results right after submit container")
	}
	if !tree.Node(view.SubmitID).Disabled {
		t.Fatalf("expected submit disabled")
	}
	if tree.ActivateID(view.SubmitID) {
		t.Fatalf("disabled submit must not activate")
	}
}

// TestLockedOptionsAreInert verifies activations after submit change nothing.
func TestLockedOptionsAreInert(t *testing.T) {
	tree := view.NewTree()
	e := startEngine(t, tree, Options{})
	answerAll(t, tree, e, func(session.Entry) int { return 0 })
	if _, err := e.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := e.State().Selections()

	for _, qv := range e.Questions() {
		for _, handle := range qv.Options {
			if tree.Activate(handle) {
				t.Fatalf("option activation should be refused after submit")
			}
		}
		if qv.Options[1].(*view.Node).HasClass(view.ClassSelected) {
			t.Fatalf("selection mark moved after submit")
		}
	}
	if err := e.Choose(0, 1); !errors.Is(err, session.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if !slices.Equal(before, e.State().Selections()) {
		t.Fatalf("selections changed after submit")
	}
	if _, err := e.Submit(); !errors.Is(err, session.ErrLocked) {
		t.Fatalf("expected second submit to fail, got %v", err)
	}
}

// TestRetakeRendersFreshSession verifies retake resets answers, results and submit.
func TestRetakeRendersFreshSession(t *testing.T) {
	tree := view.NewTree()
	e := startEngine(t, tree, Options{})
	first := e.State().ID()
	answerAll(t, tree, e, func(session.Entry) int { return 2 })
	if _, err := e.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !tree.ActivateID(view.RetakeID) {
		t.Fatalf("expected retake to be wired")
	}
	if e.State().ID() == first {
		t.Fatalf("expected a new session")
	}
	if e.State().Locked() || e.State().Answered() != 0 {
		t.Fatalf("expected unlocked, unanswered session")
	}
	if got := len(tree.Node(view.ContainerID).Children); got != 3 {
		t.Fatalf("expected 3 freshly rendered questions, got %d", got)
	}
	if tree.Node(view.ResultsID).HasClass(view.ClassShow) {
		t.Fatalf("expected results hidden")
	}
	if tree.Node(view.SubmitID).Disabled {
		t.Fatalf("expected submit enabled")
	}
	if err := e.Choose(0, 1); err != nil {
		t.Fatalf("choose after retake: %v", err)
	}
	if !e.Questions()[0].Options[1].(*view.Node).HasClass(view.ClassSelected) {
		t.Fatalf("expected programmatic choice to be marked")
	}
}

// TestBackNavigates verifies the back action uses the configured target.
func TestBackNavigates(t *testing.T) {
	tree := view.NewTree()
	e := startEngine(t, tree, Options{})
	answerAll(t, tree, e, func(session.Entry) int { return 0 })
	if _, err := e.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	tree.ActivateID(view.BackID)
	if got := tree.Navigations(); len(got) != 1 || got[0] != DefaultBackHref {
		t.Fatalf("unexpected navigations %v", got)
	}
}
