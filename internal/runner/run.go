package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/huidtask/task/cmd"
	"github.com/huidtask/task/internal/commands"
)

// ErrNoCommand is returned after printing usage when no command was given.
var ErrNoCommand = errors.New("no command given")

type commandUsageSpec struct {
	summary  string
	usage    string
	options  []string
	examples []string
}

var commandUsage = map[string]commandUsageSpec{
	commands.CmdLs: {
		summary: "List tasks found under the nearest tasks folder, highest priority first.",
		usage:   "task ls [options]",
		options: []string{
			"-t <tag>        Only tasks whose TAGS contain <tag>",
			"-/t <ignored>   Clear the tag filter (the value is discarded)",
			"-c              Only CLOSED tasks",
			"-/c             Only tasks that are not CLOSED (default)",
			"-f <width>      Pad and truncate titles to <width> (default 100)",
			"-/f             Print full titles",
			"--json          Output JSON",
			"--yaml          Output YAML",
			"--verbose       Report skipped folders on stderr",
			"--help, -h      Show this help message",
		},
		examples: []string{
			"task ls",
			"task ls -t backend",
			"task ls -c -/f",
			"task ls -f 40 --json",
		},
	},
	commands.CmdHelp: {
		summary: "Show usage for the CLI or for one command.",
		usage:   "task help [<COMMAND>]",
	},
	commands.CmdVersion: {
		summary: "Print the CLI version.",
		usage:   "task version",
	},
}

type cli struct {
	root   *cmd.RootCommand
	stdout io.Writer
	stderr io.Writer
}

// Run executes the CLI entrypoint against the process streams.
func Run(rawArgs ...string) error {
	return RunWithOutput(context.Background(), os.Stdout, os.Stderr, rawArgs...)
}

// RunWithOutput executes the CLI writing results to stdout and diagnostics to
// stderr. The returned error decides the exit status.
func RunWithOutput(ctx context.Context, stdout, stderr io.Writer, rawArgs ...string) error {
	args, mode, err := parseCommandColorFlags(rawArgs)
	if err != nil {
		return err
	}
	applyColorMode(mode, stdout)

	c := &cli{root: cmd.NewRootCommand(), stdout: stdout, stderr: stderr}
	if len(args) == 0 {
		fmt.Fprintln(stdout, styleHeader(c.root.Usage()))
		return ErrNoCommand
	}
	if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(stdout, styleHeader(c.root.Usage()))
		return nil
	}
	if len(args) == 1 && (args[0] == "-v" || args[0] == "--version") {
		return c.runVersion(nil)
	}

	command := normalizeCommand(args[0])
	payload := args[1:]
	if !c.root.IsKnownCommand(command) {
		c.printUnknownCommandSuggestion(args[0])
		return fmt.Errorf("unknown command: %s", args[0])
	}

	switch command {
	case commands.CmdLs:
		return c.runLs(ctx, payload)
	case commands.CmdHelp:
		return c.runHelp(payload)
	case commands.CmdVersion:
		return c.runVersion(payload)
	default:
		return fmt.Errorf("command not implemented: %s", command)
	}
}

func normalizeCommand(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (c *cli) runHelp(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(c.stdout, styleHeader(c.root.Usage()))
		return nil
	}
	command := normalizeCommand(args[0])
	if !c.root.IsKnownCommand(command) {
		c.printUnknownCommandSuggestion(args[0])
		return fmt.Errorf("unknown command: %s", args[0])
	}
	c.printCommandHelp(c.stdout, command)
	return nil
}

func (c *cli) runVersion(args []string) error {
	if len(args) > 0 {
		return c.printUsageError(commands.CmdVersion, fmt.Errorf("unexpected argument: %s", args[0]))
	}
	fmt.Fprintf(c.stdout, "%s version %s\n", styleSuccess(c.root.Name()), c.root.Version())
	return nil
}

// printUsageError shows the command help on stderr and hands err back so the
// caller can return it.
func (c *cli) printUsageError(command string, err error) error {
	c.printCommandHelp(c.stderr, command)
	return err
}

func (c *cli) printCommandHelp(w io.Writer, command string) {
	spec, ok := commandUsage[command]
	if !ok {
		fmt.Fprintf(w, "%s %s %s\n", styleSubHeader("Usage:"), c.root.Name(), command)
		return
	}
	fmt.Fprintf(w, "\n%s\n", styleHeader("Command Help: "+c.root.Name()+" "+command))
	fmt.Fprintf(w, "%s\n\n", styleMuted(spec.summary))
	fmt.Fprintf(w, "%s %s\n", styleSubHeader("Usage:"), styleSuccess(spec.usage))
	if len(spec.options) > 0 {
		fmt.Fprintf(w, "\n%s\n", styleSubHeader("Options"))
		for _, option := range spec.options {
			fmt.Fprintf(w, "  %s\n", styleMuted(option))
		}
	}
	if len(spec.examples) > 0 {
		fmt.Fprintf(w, "\n%s\n", styleSubHeader("Examples"))
		for _, example := range spec.examples {
			fmt.Fprintf(w, "  %s\n", styleSuccess(example))
		}
	}
}

func (c *cli) printUnknownCommandSuggestion(raw string) {
	fmt.Fprintf(c.stderr, "%s %s\n", styleError("Unknown command:"), styleWarning(raw))
	suggestions := suggestCommands(raw, c.root.Commands(), 3)
	if len(suggestions) > 0 {
		fmt.Fprintf(c.stderr, "%s\n", styleSubHeader("Did you mean:"))
		for _, suggestion := range suggestions {
			fmt.Fprintf(c.stderr, "  %s\n", styleSuccess(suggestion))
		}
	}
	fmt.Fprintln(c.stderr, styleHeader(c.root.Usage()))
}

func suggestCommands(raw string, candidates []string, limit int) []string {
	target := normalizeCommand(strings.TrimLeft(raw, "-/"))
	if target == "" {
		return nil
	}

	type suggestion struct {
		command string
		score   int
	}
	candidateScores := make([]suggestion, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = normalizeCommand(candidate)
		if candidate == "" {
			continue
		}
		switch {
		case strings.HasPrefix(candidate, target), strings.HasPrefix(target, candidate):
			candidateScores = append(candidateScores, suggestion{command: candidate, score: 0})
		case strings.Contains(candidate, target), strings.Contains(target, candidate):
			candidateScores = append(candidateScores, suggestion{command: candidate, score: 1})
		default:
			distance := commandDistance(candidate, target)
			if distance > 2 {
				continue
			}
			candidateScores = append(candidateScores, suggestion{command: candidate, score: distance + 1})
		}
	}

	sort.Slice(candidateScores, func(i, j int) bool {
		if candidateScores[i].score == candidateScores[j].score {
			return candidateScores[i].command < candidateScores[j].command
		}
		return candidateScores[i].score < candidateScores[j].score
	})

	if len(candidateScores) > limit {
		candidateScores = candidateScores[:limit]
	}
	out := make([]string, 0, len(candidateScores))
	for _, suggestion := range candidateScores {
		out = append(out, suggestion.command)
	}
	return out
}

// commandDistance is the Levenshtein distance between a and b.
func commandDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	cache := make([][]int, len(a)+1)
	for i := range cache {
		cache[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		cache[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		cache[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cache[i][j] = min(
				cache[i-1][j]+1,
				cache[i][j-1]+1,
				cache[i-1][j-1]+cost,
			)
		}
	}
	return cache[len(a)][len(b)]
}
