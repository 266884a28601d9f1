package loader

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/huidtask/task/internal/models"
)

const (
	sectionSeparator = "\n\n"
	titlePrefix      = "# "
	metadataPrefix   = "- "
	keyValueSep      = ": "

	keyStatus   = "STATUS"
	keyPriority = "PRIORITY"
	keyTags     = "TAGS"
)

var (
	// ErrFiltered marks a task rejected by the active Filter.
	ErrFiltered = errors.New("task filtered out")
	// ErrInvalidPriority is returned for unparsable PRIORITY values in strict mode.
	ErrInvalidPriority = errors.New("invalid priority")
)

var leadingNumber = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Filter selects which tasks survive a listing.
type Filter struct {
	// Tag, when non-empty, must equal one of the task's trimmed TAGS entries.
	Tag        string
	OnlyClosed bool
}

func (f Filter) acceptStatus(status models.Status) bool {
	return f.OnlyClosed == (status == models.StatusClosed)
}

func (f Filter) acceptTags(raw string) bool {
	return f.Tag == "" || models.HasTag(raw, f.Tag)
}

// Parser turns task.md content into a models.Task.
type Parser struct {
	Filter         Filter
	StrictPriority bool
}

// Parse fills task from content. The first blank-line separated section is the
// title; the metadata block follows it and ends at the first line without the
// "- " prefix, even if later lines look like metadata. Filters are checked as
// keys are read so a rejected task stops parsing early with ErrFiltered.
// CRLF line endings are read as LF.
func (p Parser) Parse(task models.Task, content []byte) (models.Task, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	title, rest, hasMetadata := strings.Cut(text, sectionSeparator)
	task.Title = parseTitle(title)

	if hasMetadata {
		for _, line := range strings.Split(rest, "\n") {
			item, ok := strings.CutPrefix(line, metadataPrefix)
			if !ok {
				break
			}
			key, value, ok := strings.Cut(item, keyValueSep)
			if !ok {
				continue
			}
			switch key {
			case keyStatus:
				task.Status = models.Status(value)
				if !p.Filter.acceptStatus(task.Status) {
					return task, ErrFiltered
				}
			case keyPriority:
				priority, err := p.parsePriority(value)
				if err != nil {
					return task, err
				}
				task.Priority = priority
			case keyTags:
				task.Tags = value
				if !p.Filter.acceptTags(value) {
					return task, ErrFiltered
				}
			}
		}
	}

	if !p.Filter.acceptStatus(task.Status) || !p.Filter.acceptTags(task.Tags) {
		return task, ErrFiltered
	}
	return task, nil
}

// parseTitle joins a multi-line title section into one line so every task
// renders on a single output line.
func parseTitle(section string) string {
	lines := strings.Split(strings.TrimSpace(section), "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.TrimPrefix(strings.Join(parts, " "), titlePrefix)
}

func (p Parser) parsePriority(raw string) (int, error) {
	if p.StrictPriority {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
		}
		return truncate(value), nil
	}
	return LenientPriority(raw), nil
}

// LenientPriority parses the longest leading decimal literal of raw and
// truncates it toward zero. Text without a leading number yields 0.
func LenientPriority(raw string) int {
	match := leadingNumber.FindString(raw)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil {
		return 0
	}
	return truncate(value)
}

func truncate(value float64) int {
	switch {
	case value >= math.MaxInt32:
		return math.MaxInt32
	case value <= math.MinInt32:
		return math.MinInt32
	default:
		return int(value)
	}
}
