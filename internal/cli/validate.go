package cli

import (
	"fmt"
	"io"

	"quizkit/internal/extract"
	"quizkit/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		var common commonFlags
		common.register(flags)
		globalsPath := flags.String("globals", "", "JSON or YAML file of page globals")
		inputPath, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}

		cfg, logger, err := setup(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = logger.Sync() }()

		var source quizSource
		if question.IsQuestionFile(inputPath) {
			source, err = openQuestions(inputPath, extract.ValidationOff, logger)
		} else {
			source, err = openPage(inputPath, *globalsPath, cfg, extract.ValidationOff, logger)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		if !source.found() {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", describeMissing(source.missing))
			return ExitError
		}
		if err := question.Validate(source.records); err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintf(stdout, "Questions OK (%d from %s)\n", len(source.records), source.origin)
		return ExitOK
	}
}
