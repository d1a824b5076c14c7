package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"quizkit/internal/engine"
	"quizkit/internal/extract"
	"quizkit/internal/question"
	"quizkit/internal/session"
	"quizkit/internal/ui/play"
	"quizkit/internal/view"
)

// stdin feeds interactive play.
var stdin io.Reader = os.Stdin

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		var common commonFlags
		common.register(flags)
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default: config ui.mode)")
		noColor := flags.Bool("no-color", false, "Disable colors in the live UI")
		globalsPath := flags.String("globals", "", "JSON or YAML file of page globals")
		seed := flags.Uint64("seed", 0, "Shuffle seed (default: config session.seed, 0 = random)")
		inputPath, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}

		cfg, logger, err := setup(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = logger.Sync() }()
		if *seed != 0 {
			cfg.Session.Seed = *seed
		}
		if *uiMode != "" {
			cfg.UI.Mode = *uiMode
		}
		decision, err := resolveUIMode(cfg.UI.Mode, common.verbose, stdin, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		policy := extract.ValidationPolicy(cfg.Extract.Validation)
		var source quizSource
		if question.IsQuestionFile(inputPath) {
			source, err = openQuestions(inputPath, policy, logger)
		} else {
			source, err = openPage(inputPath, *globalsPath, cfg, policy, logger)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Play failed:\n%v\n", err)
			return ExitError
		}
		if !source.found() {
			fmt.Fprintf(stderr, "Play failed:\n%s\n", describeMissing(source.missing))
			return ExitError
		}
		logger.Debug("playing quiz", zap.String("source", source.origin), zap.Int("questions", len(source.records)))

		tree := view.NewTree()
		eng := engine.New(tree, source.records, engine.Options{
			BackHref:    cfg.Render.BackHref,
			Placeholder: cfg.Render.ExplanationPlaceholder,
			Rand:        session.NewRand(cfg.Session.Seed),
			Logger:      logger,
		})
		eng.Start()

		if !decision.useLive {
			if err := play.RunPlain(stdin, stdout, eng, tree); err != nil {
				fmt.Fprintf(stderr, "Play failed:\n%v\n", err)
				return ExitError
			}
			return ExitOK
		}

		model, err := play.Run(eng, tree, stdin, stdout, play.Options{NoColor: cfg.UI.NoColor || *noColor})
		if err != nil {
			fmt.Fprintf(stderr, "Play failed:\n%v\n", err)
			return ExitError
		}
		if result, ok := eng.Result(); ok {
			fmt.Fprintf(stdout, "Score: %s %s\n", result.Summary(), result.Tier.Message)
		}
		if href := model.Navigated(); href != "" {
			fmt.Fprintf(stdout, "Leaving quiz for %s\n", href)
		}
		return ExitOK
	}
}
