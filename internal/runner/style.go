package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/huidtask/task/internal/models"
)

const (
	colorModeAuto = iota
	colorModeOn
	colorModeOff
)

var (
	styleHeader    = color.New(color.Bold, color.FgCyan).SprintFunc()
	styleSubHeader = color.New(color.Bold, color.FgBlue).SprintFunc()
	styleSuccess   = color.New(color.Bold, color.FgGreen).SprintFunc()
	styleWarning   = color.New(color.Bold, color.FgYellow).SprintFunc()
	styleError     = color.New(color.Bold, color.FgRed).SprintFunc()
	styleCritical  = color.New(color.Bold, color.FgMagenta).SprintFunc()
	styleMuted     = color.New(color.Faint).SprintFunc()
)

// parseCommandColorFlags strips --color/--no-color style flags from rawArgs and
// returns the remaining arguments with the selected mode.
func parseCommandColorFlags(rawArgs []string) ([]string, int, error) {
	mode := colorModeAuto
	filtered := make([]string, 0, len(rawArgs))
	for _, arg := range rawArgs {
		hasMode, parsedMode, parseErr := parseCommandColorFlag(arg)
		if parseErr != nil {
			return nil, colorModeAuto, parseErr
		}
		if hasMode {
			mode = parsedMode
			continue
		}
		filtered = append(filtered, arg)
	}
	return filtered, mode, nil
}

func parseCommandColorFlag(arg string) (bool, int, error) {
	if arg == "--color" {
		return true, colorModeOn, nil
	}
	if arg == "--no-color" {
		return true, colorModeOff, nil
	}
	if strings.HasPrefix(arg, "--color=") {
		value, err := parseBooleanFlag(strings.TrimPrefix(arg, "--color="), "--color")
		if err != nil {
			return false, colorModeAuto, err
		}
		if value {
			return true, colorModeOn, nil
		}
		return true, colorModeOff, nil
	}
	if strings.HasPrefix(arg, "--no-color=") {
		value, err := parseBooleanFlag(strings.TrimPrefix(arg, "--no-color="), "--no-color")
		if err != nil {
			return false, colorModeAuto, err
		}
		if value {
			return true, colorModeOff, nil
		}
		return true, colorModeOn, nil
	}
	return false, colorModeAuto, nil
}

func parseBooleanFlag(value, flag string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "on":
		return true, nil
	case "0", "false", "f", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value for %s: %s", flag, value)
	}
}

// applyColorMode configures fatih/color for output written to out.
func applyColorMode(mode int, out io.Writer) {
	switch mode {
	case colorModeOn:
		color.NoColor = false
	case colorModeOff:
		color.NoColor = true
	default:
		color.NoColor = !autoColorAllowed(out)
	}
}

func autoColorAllowed(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// stylePriority highlights priorities above the default.
func stylePriority(text string, priority int) string {
	switch {
	case priority > models.DefaultPriority:
		return styleCritical(text)
	case priority == models.DefaultPriority:
		return styleWarning(text)
	case priority <= 0:
		return styleMuted(text)
	default:
		return styleSuccess(text)
	}
}
