package models

import (
	"reflect"
	"testing"
	"unsafe"
)

func TestParseHUID(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"26122025-112830":       true,
		"00000000-000000":       true,
		"39192999-295959":       true,
		"32012025-000000":       true,
		"26122025-112830-notes": true,
		"":                      false,
		"2612202":               false,
		"26122025-11283":        false,
		"99122025-112830":       false,
		"4":                     false,
		"26222025-112830":       false,
		"26123025-112830":       false,
		"26122025_112830":       false,
		"26122025-312830":       false,
		"26122025-116830":       false,
		"26122025-112860":       false,
		"26122025-11283x":       false,
		"a6122025-112830":       false,
	}

	for input, ok := range cases {
		id, valid := ParseHUID(input)
		if valid != ok {
			t.Fatalf("ParseHUID(%q) valid = %v, expected %v", input, valid, ok)
		}
		if !ok && id != "" {
			t.Fatalf("ParseHUID(%q) = %q, expected empty on rejection", input, id)
		}
	}
}

func TestParseHUIDRejectsShortInputs(t *testing.T) {
	t.Parallel()

	full := "26122025-112830"
	for i := 0; i < len(full); i++ {
		if _, ok := ParseHUID(full[:i]); ok {
			t.Fatalf("ParseHUID(%q) accepted input shorter than %d", full[:i], HUIDLength)
		}
	}
}

func TestParseHUIDReturnsPrefixView(t *testing.T) {
	t.Parallel()

	name := "26122025-112830-notes"
	id, ok := ParseHUID(name)
	if !ok {
		t.Fatalf("ParseHUID(%q) rejected valid prefix", name)
	}
	if id != "26122025-112830" {
		t.Fatalf("ParseHUID(%q) = %q, expected 26122025-112830", name, id)
	}
	if unsafe.StringData(string(id)) != unsafe.StringData(name) {
		t.Fatalf("ParseHUID(%q) should return a substring of its input", name)
	}
	if got := id.Suffix(name); got != "-notes" {
		t.Fatalf("Suffix() = %q, expected -notes", got)
	}
	if got := id.Suffix(string(id)); got != "" {
		t.Fatalf("Suffix() = %q, expected empty for bare token", got)
	}
}

func TestTagHelpers(t *testing.T) {
	t.Parallel()

	raw := "alpha, beta , gamma"
	if got := TagList(raw); !reflect.DeepEqual(got, []string{"alpha", "beta", "gamma"}) {
		t.Fatalf("TagList(%q) = %#v", raw, got)
	}
	if !HasTag(raw, "beta") {
		t.Fatalf("HasTag(%q, beta) = false, expected true", raw)
	}
	if HasTag(raw, "bet") {
		t.Fatalf("HasTag(%q, bet) = true, expected false", raw)
	}
	if TagList("  ") != nil {
		t.Fatalf("TagList() should be nil for blank input")
	}
	if HasTag("", "") {
		t.Fatalf("HasTag() should never match without tags")
	}
}

func TestNewTaskDefaults(t *testing.T) {
	t.Parallel()

	task := NewTask("26122025-112830", "26122025-112830")
	if task.Priority != DefaultPriority {
		t.Fatalf("Priority = %d, expected %d", task.Priority, DefaultPriority)
	}
	if task.IsClosed() {
		t.Fatalf("new task should not be closed")
	}
	task.Status = StatusClosed
	if !task.IsClosed() {
		t.Fatalf("task with CLOSED status should be closed")
	}
}
