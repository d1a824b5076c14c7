package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath string
	verbose    bool
	quiet      bool
}

func (c *commonFlags) register(flags *flag.FlagSet) {
	flags.StringVar(&c.configPath, "config", "", "Path to config file (default: search for .quizkit.yml)")
	flags.BoolVar(&c.verbose, "verbose", false, "Log debug details to stderr")
	flags.BoolVar(&c.quiet, "quiet", false, "Disable logging")
}

func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	return flags
}

// parseArgs parses flags, allowing them before or after the single
// positional argument. It returns the positional argument, or an exit code
// when parsing ended the command.
func parseArgs(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (string, int, bool) {
	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				printCommandUsage(cmd, stdout)
				return "", ExitOK, false
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return "", ExitUsage, false
		}
		rest := flags.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
	switch len(positional) {
	case 0:
		fmt.Fprintln(stderr, "missing input path")
		printCommandUsage(cmd, stderr)
		return "", ExitUsage, false
	case 1:
		return positional[0], ExitOK, true
	default:
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(positional[1:], " "))
		printCommandUsage(cmd, stderr)
		return "", ExitUsage, false
	}
}
