package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures whether play uses the live screen.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a stream is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode decides between the live screen and line-driven play. Live
// play needs both ends of the terminal; verbose logging would tear the live
// screen, so it forces plain play.
func resolveUIMode(mode string, verbose bool, stdin io.Reader, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	tty := isTerminal(stdout) && isTerminal(stdin)
	switch normalized {
	case "auto":
		return uiModeDecision{useLive: tty && !verbose}, nil
	case "live":
		if verbose {
			return uiModeDecision{warning: "Live UI disabled by --verbose; using plain play."}, nil
		}
		if tty {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{warning: "Live UI requested but the terminal is not a TTY; using plain play."}, nil
	case "plain":
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects a stream for TTY support.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
