package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/huidtask/task/internal/commands"
	"github.com/huidtask/task/internal/config"
	"github.com/huidtask/task/internal/loader"
	"github.com/huidtask/task/internal/models"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type lsOptions struct {
	tag        string
	onlyClosed bool
	titleWidth int
	widthSet   bool
	format     string
	verbose    bool
	help       bool
}

type lsTaskPayload struct {
	ID       string   `json:"id" yaml:"id"`
	Dir      string   `json:"dir" yaml:"dir"`
	Path     string   `json:"path" yaml:"path"`
	Title    string   `json:"title" yaml:"title"`
	Priority int      `json:"priority" yaml:"priority"`
	Status   string   `json:"status,omitempty" yaml:"status,omitempty"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// parseLsOptions reads ls arguments. A "-/" prefix resets an option to its
// default; -/t still consumes the value slot that -t would take.
func parseLsOptions(args []string) (lsOptions, error) {
	opts := lsOptions{format: formatText}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-t":
			value, err := optionValue(args, &i)
			if err != nil {
				return opts, err
			}
			opts.tag = value
		case "-/t":
			if _, err := optionValue(args, &i); err != nil {
				return opts, err
			}
			opts.tag = ""
		case "-c":
			opts.onlyClosed = true
		case "-/c":
			opts.onlyClosed = false
		case "-f":
			value, err := optionValue(args, &i)
			if err != nil {
				return opts, err
			}
			width, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return opts, fmt.Errorf("invalid -f: %s", value)
			}
			opts.titleWidth = width
			opts.widthSet = true
		case "-/f":
			opts.titleWidth = 0
			opts.widthSet = true
		case "--json":
			opts.format = formatJSON
		case "--yaml":
			opts.format = formatYAML
		case "--verbose":
			opts.verbose = true
		case "-h", "--help":
			opts.help = true
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, fmt.Errorf("unexpected flag: %s", arg)
			}
			return opts, fmt.Errorf("unexpected argument: %s", arg)
		}
	}
	return opts, nil
}

func optionValue(args []string, idx *int) (string, error) {
	flag := args[*idx]
	if *idx+1 >= len(args) {
		return "", fmt.Errorf("missing value for %s", flag)
	}
	*idx++
	return args[*idx], nil
}

func (c *cli) runLs(ctx context.Context, args []string) error {
	opts, err := parseLsOptions(args)
	if err != nil {
		return c.printUsageError(commands.CmdLs, err)
	}
	if opts.help {
		c.printCommandHelp(c.stdout, commands.CmdLs)
		return nil
	}

	tasksDir, err := config.DetectTasksDir()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(tasksDir)
	if err != nil {
		return err
	}
	if !opts.widthSet {
		opts.titleWidth = settings.TitleWidth
	}

	loaderOpts := loader.OptionsFromSettings(settings)
	if opts.verbose {
		fmt.Fprintf(c.stderr, "%s %s\n", styleMuted("Listing tasks from"), tasksDir)
		loaderOpts.OnSkip = func(folder string, err error) {
			fmt.Fprintf(c.stderr, "%s %s: %v\n", styleWarning("skip"), folder, err)
		}
	}

	filter := loader.Filter{Tag: opts.tag, OnlyClosed: opts.onlyClosed}
	tasks, err := loader.New(tasksDir, loaderOpts).Load(ctx, filter)
	if err != nil {
		return err
	}
	if opts.verbose && len(tasks) == 0 {
		fmt.Fprintln(c.stderr, styleWarning("No tasks found."))
	}

	switch opts.format {
	case formatJSON:
		return renderLsJSON(c.stdout, tasks)
	case formatYAML:
		return renderLsYAML(c.stdout, tasks)
	default:
		renderLsText(c.stdout, tasks, opts.titleWidth)
		return nil
	}
}

func renderLsText(w io.Writer, tasks []models.Task, titleWidth int) {
	for _, task := range tasks {
		fmt.Fprintln(w, formatTaskLine(task, titleWidth))
	}
}

// formatTaskLine renders "tasks/<dir>/task.md:1:1 |<pri>| <title> | <tags>".
func formatTaskLine(task models.Task, titleWidth int) string {
	return fmt.Sprintf(
		"%s:1:1 |%s| %s | %s",
		config.DisplayPath(task.Dir),
		stylePriority(fmt.Sprintf("%2d", task.Priority), task.Priority),
		fitTitle(task.Title, titleWidth),
		styleMuted(task.Tags),
	)
}

// fitTitle pads and truncates title to width runes. Non-positive widths leave
// the title untouched.
func fitTitle(title string, width int) string {
	if width <= 0 {
		return title
	}
	return fmt.Sprintf("%-*.*s", width, width, title)
}

func lsPayload(tasks []models.Task) []lsTaskPayload {
	out := make([]lsTaskPayload, 0, len(tasks))
	for _, task := range tasks {
		tags := task.TagList()
		if tags == nil {
			tags = []string{}
		}
		out = append(out, lsTaskPayload{
			ID:       task.ID.String(),
			Dir:      task.Dir,
			Path:     config.DisplayPath(task.Dir),
			Title:    task.Title,
			Priority: task.Priority,
			Status:   string(task.Status),
			Tags:     tags,
		})
	}
	return out
}

func renderLsJSON(w io.Writer, tasks []models.Task) error {
	raw, err := json.MarshalIndent(lsPayload(tasks), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func renderLsYAML(w io.Writer, tasks []models.Task) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(lsPayload(tasks)); err != nil {
		return err
	}
	return encoder.Close()
}
