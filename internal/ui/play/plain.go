package play

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizkit/internal/engine"
	"quizkit/internal/session"
	"quizkit/internal/view"
)

const plainHelp = "commands: <n> choose option, n next, p previous, s submit, r retake, b back, q quit"

// RunPlain drives the engine from line input. It returns when input ends,
// the user quits, or the quiz navigates away.
func RunPlain(in io.Reader, out io.Writer, eng *engine.Engine, tree *view.Tree) error {
	p := &plainSession{out: out, engine: eng, tree: tree}
	tree.OnNotify(func(message string) { fmt.Fprintln(out, "! "+message) })
	defer tree.OnNotify(nil)

	fmt.Fprintln(out, plainHelp)
	p.showQuestion()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if done := p.handle(strings.TrimSpace(scanner.Text())); done {
			return nil
		}
	}
}

type plainSession struct {
	out     io.Writer
	engine  *engine.Engine
	tree    *view.Tree
	current int
}

// handle runs one command and reports whether the session ended.
func (p *plainSession) handle(command string) bool {
	state := p.engine.State()
	switch command {
	case "":
		return false
	case "q":
		return true
	case "n":
		p.move(1)
	case "p":
		p.move(-1)
	case "s":
		if _, err := p.engine.Submit(); err != nil {
			if errors.Is(err, session.ErrLocked) {
				fmt.Fprintln(p.out, "quiz already submitted; r retakes")
			}
			return false
		}
		fmt.Fprint(p.out, Text(p.tree))
	case "r":
		if !state.Locked() {
			fmt.Fprintln(p.out, "submit before retaking")
			return false
		}
		p.engine.Retake()
		p.current = 0
		p.showQuestion()
	case "b":
		if !state.Locked() {
			fmt.Fprintln(p.out, "submit before leaving")
			return false
		}
		p.engine.Back()
		if navigations := p.tree.Navigations(); len(navigations) > 0 {
			fmt.Fprintln(p.out, "leaving quiz for "+navigations[len(navigations)-1])
		}
		return true
	default:
		p.choose(command)
	}
	return false
}

func (p *plainSession) choose(command string) {
	number, err := strconv.Atoi(command)
	if err != nil {
		fmt.Fprintln(p.out, plainHelp)
		return
	}
	if err := p.engine.Choose(p.current, number-1); err != nil {
		switch {
		case errors.Is(err, session.ErrLocked):
			fmt.Fprintln(p.out, "quiz already submitted; r retakes")
		default:
			fmt.Fprintf(p.out, "no option %d\n", number)
		}
		return
	}
	state := p.engine.State()
	for offset := 1; offset < state.Len(); offset++ {
		next := (p.current + offset) % state.Len()
		if state.Selection(next) == session.Unanswered {
			p.current = next
			p.showQuestion()
			return
		}
	}
	p.showQuestion()
	fmt.Fprintln(p.out, "all questions answered; s submits")
}

func (p *plainSession) move(direction int) {
	total := p.engine.State().Len()
	if total == 0 {
		return
	}
	p.current = (p.current + direction + total) % total
	p.showQuestion()
}

func (p *plainSession) showQuestion() {
	for _, line := range QuestionLines(p.tree, p.current) {
		fmt.Fprintln(p.out, plainLine(line, true))
	}
}
