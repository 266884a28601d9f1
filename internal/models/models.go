package models

import "strings"

// Status is the free-form STATUS value of a task. Only StatusClosed carries meaning.
type Status string

const StatusClosed Status = "CLOSED"

// DefaultPriority applies to tasks whose metadata has no PRIORITY line.
const DefaultPriority = 20

// Task is one parsed task.md file.
type Task struct {
	ID       HUID   `json:"id" yaml:"id"`
	Dir      string `json:"dir" yaml:"dir"`
	Title    string `json:"title" yaml:"title"`
	Priority int    `json:"priority" yaml:"priority"`
	Status   Status `json:"status,omitempty" yaml:"status,omitempty"`
	Tags     string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func NewTask(id HUID, dir string) Task {
	return Task{ID: id, Dir: dir, Priority: DefaultPriority}
}

func (t Task) IsClosed() bool {
	return t.Status == StatusClosed
}

// TagList splits the raw TAGS value on commas and trims each piece.
func TagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

func (t Task) TagList() []string {
	return TagList(t.Tags)
}

// HasTag reports whether one of the trimmed tags equals tag exactly.
func HasTag(raw string, tag string) bool {
	for _, candidate := range TagList(raw) {
		if candidate == tag {
			return true
		}
	}
	return false
}
