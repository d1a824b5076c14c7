package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"quizkit/internal/extract"
)

// runExtract builds the handler for the extract command.
func runExtract(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		var common commonFlags
		common.register(flags)
		format := flags.String("format", "json", "Output format: json|yaml")
		globalsPath := flags.String("globals", "", "JSON or YAML file of page globals")
		pagePath, code, ok := parseArgs(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		normalized := strings.ToLower(strings.TrimSpace(*format))
		if normalized != "json" && normalized != "yaml" {
			fmt.Fprintf(stderr, "invalid --format %q (expected json|yaml)\n", *format)
			return ExitUsage
		}

		cfg, logger, err := setup(common, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Extract failed:\n%v\n", err)
			return ExitError
		}
		defer func() { _ = logger.Sync() }()

		source, err := openPage(pagePath, *globalsPath, cfg, extract.ValidationPolicy(cfg.Extract.Validation), logger)
		if err != nil {
			fmt.Fprintf(stderr, "Extract failed:\n%v\n", err)
			return ExitError
		}
		if !source.found() {
			fmt.Fprintf(stderr, "Extract failed:\n%s\n", describeMissing(source.missing))
			return ExitError
		}

		var data []byte
		if normalized == "yaml" {
			data, err = yaml.Marshal(source.records)
		} else {
			data, err = json.MarshalIndent(source.records, "", "  ")
			data = append(data, '\n')
		}
		if err != nil {
			fmt.Fprintf(stderr, "Extract failed:\nencode records: %v\n", err)
			return ExitError
		}
		if _, err := stdout.Write(data); err != nil {
			fmt.Fprintf(stderr, "Extract failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintf(stderr, "%d questions from %s\n", len(source.records), source.origin)
		return ExitOK
	}
}
