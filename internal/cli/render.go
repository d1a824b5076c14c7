package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"quizkit/internal/engine"
	"quizkit/internal/extract"
	"quizkit/internal/legacy"
	"quizkit/internal/session"
)

// runRender builds the handler for the render command.
func runRender(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		var common commonFlags
		common.register(flags)
		outPath := flags.String("o", "", "Write the page to this file instead of stdout")
		answers := flags.String("answers", "", "Comma-separated option index per question, in data order")
		submit := flags.Bool("submit", false, "Submit after applying answers")
		globalsPath := flags.String("globals", "", "JSON or YAML file of page globals")
		seed := flags.Uint64("seed", 0, "Shuffle seed (default: config session.seed, 0 = random)")
		pagePath, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}

		picks, err := parseAnswers(*answers)
		if err != nil {
			fmt.Fprintf(stderr, "invalid --answers: %v\n", err)
			return ExitUsage
		}
		cfg, logger, err := setup(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Render failed:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = logger.Sync() }()
		if *seed != 0 {
			cfg.Session.Seed = *seed
		}

		source, err := openPage(pagePath, *globalsPath, cfg, extract.ValidationPolicy(cfg.Extract.Validation), logger)
		if err != nil {
			fmt.Fprintf(stderr, "Render failed:\n%v\n", err)
			return ExitError
		}
		report := neutralizeLegacy(source, cfg.Legacy.Disable, logger)
		if !source.found() {
			logger.Warn(describeMissing(source.missing), zap.String("page", pagePath))
			return writePage(source, *outPath, stdout, stderr)
		}

		eng := engine.New(source.doc, source.records, engine.Options{
			BackHref:    cfg.Render.BackHref,
			Placeholder: cfg.Render.ExplanationPlaceholder,
			Rand:        session.NewRand(cfg.Session.Seed),
			Logger:      logger,
		})
		eng.Start()
		if report != nil && !report.RestartPreserved {
			source.doc.Define(legacy.RestartCallback, eng.Retake)
		}

		if err := applyAnswers(eng, picks); err != nil {
			fmt.Fprintf(stderr, "Render failed:\n%v\n", err)
			return ExitError
		}
		if *submit {
			result, err := eng.Submit()
			if err != nil {
				fmt.Fprintf(stderr, "%s\n%v\n", engine.IncompleteNotice, err)
				return ExitError
			}
			fmt.Fprintf(stderr, "Score: %s %s\n", result.Summary(), result.Tier.Message)
		}
		return writePage(source, *outPath, stdout, stderr)
	}
}

// neutralizeLegacy hides the paged quiz chrome of the page and serializes
// callback stubs. It runs whether or not question data was found and
// returns nil when disabled.
func neutralizeLegacy(source quizSource, disabled bool, logger *zap.Logger) *legacy.Report {
	if disabled {
		return nil
	}
	report := legacy.Neutralize(source.doc, source.doc, nil, logger)
	restart := ""
	if !report.RestartPreserved {
		restart = legacy.RestartCallback
	}
	source.doc.InjectCallbackStubs(report.Stubbed, restart)
	return &report
}

// parseAnswers reads a comma-separated list of option indexes.
func parseAnswers(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	picks := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%q is not an option index", part)
		}
		picks = append(picks, value)
	}
	return picks, nil
}

// applyAnswers selects picks[i] for the question that came from record i.
func applyAnswers(eng *engine.Engine, picks []int) error {
	if len(picks) == 0 {
		return nil
	}
	state := eng.State()
	if len(picks) > state.Len() {
		return fmt.Errorf("%d answers given for %d questions", len(picks), state.Len())
	}
	for position := range state.Len() {
		original := state.Entry(position).Original
		if original >= len(picks) {
			continue
		}
		if err := eng.Choose(position, picks[original]); err != nil {
			return fmt.Errorf("answer %d: %w", original, err)
		}
	}
	return nil
}

// writePage serializes the page to path, or to stdout when path is empty.
func writePage(source quizSource, path string, stdout, stderr io.Writer) int {
	var buf bytes.Buffer
	if err := source.doc.Write(&buf); err != nil {
		fmt.Fprintf(stderr, "Render failed:\n%v\n", err)
		return ExitError
	}
	if path == "" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			fmt.Fprintf(stderr, "Render failed:\n%v\n", err)
			return ExitError
		}
		return ExitOK
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(stderr, "Render failed:\nwrite page: %v\n", err)
		return ExitError
	}
	return ExitOK
}
