package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huidtask/task/internal/commands"
)

// RootCommand captures shared CLI metadata and the supported command list.
type RootCommand struct {
	name      string
	version   string
	commands  []string
	summaries map[string]string
}

func NewRootCommand() *RootCommand {
	names := []string{
		commands.CmdHelp,
		commands.CmdLs,
		commands.CmdVersion,
	}
	sort.Strings(names)

	return &RootCommand{
		name:     "task",
		version:  "0.1.0",
		commands: names,
		summaries: map[string]string{
			commands.CmdHelp:    "Show usage for the CLI or one command",
			commands.CmdLs:      "List tasks from the nearest tasks folder, highest priority first",
			commands.CmdVersion: "Print the CLI version",
		},
	}
}

// Summary returns the one-line description of command, or "" if unknown.
func (r *RootCommand) Summary(command string) string {
	return r.summaries[command]
}

func (r *RootCommand) Name() string {
	return r.name
}

func (r *RootCommand) Version() string {
	return r.version
}

func (r *RootCommand) Commands() []string {
	out := append([]string{}, r.commands...)
	sort.Strings(out)
	return out
}

func (r *RootCommand) IsKnownCommand(candidate string) bool {
	for _, command := range r.commands {
		if command == candidate {
			return true
		}
	}
	return false
}

func (r *RootCommand) Usage() string {
	width := 0
	for _, command := range r.commands {
		width = max(width, len(command))
	}
	lines := make([]string, 0, len(r.commands))
	for _, command := range r.commands {
		lines = append(lines, fmt.Sprintf("  %-*s  %s", width, command, r.summaries[command]))
	}
	return fmt.Sprintf(`Usage: %s <command> [options]

Commands:
%s

Tasks live in tasks/<DDMMYYYY-HHMMSS>/task.md under the nearest ancestor holding tasks/.
Run '%s <command> --help' for detailed usage on a command.`, r.name, strings.Join(lines, "\n"), r.name)
}
