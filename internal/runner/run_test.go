package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var runInDirMu sync.Mutex

func writeTextFile(t *testing.T, path string, text string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// runInDir runs the CLI from dir and returns stdout and stderr separately.
func runInDir(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	runInDirMu.Lock()
	defer runInDirMu.Unlock()

	previous, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to fixture: %v", err)
	}
	defer func() {
		if cherr := os.Chdir(previous); cherr != nil {
			t.Fatalf("failed to restore cwd: %v", cherr)
		}
	}()

	var stdout, stderr bytes.Buffer
	runErr := RunWithOutput(context.Background(), &stdout, &stderr, args...)
	return stdout.String(), stderr.String(), runErr
}

func assertContainsAll(t *testing.T, value string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(value, want) {
			t.Fatalf("output = %q, expected to contain %q", value, want)
		}
	}
}

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	t.Parallel()

	stdout, _, err := runInDir(t, t.TempDir())
	if !errors.Is(err, ErrNoCommand) {
		t.Fatalf("Run() = %v, expected ErrNoCommand", err)
	}
	assertContainsAll(t, stdout, "Usage: task <command> [options]", "ls")
}

func TestRunHelpAndVersion(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"-h"}, {"--help"}, {"help"}} {
		stdout, _, err := runInDir(t, t.TempDir(), args...)
		if err != nil {
			t.Fatalf("Run(%v) = %v, expected nil", args, err)
		}
		assertContainsAll(t, stdout, "Usage: task <command> [options]")
	}

	stdout, _, err := runInDir(t, t.TempDir(), "help", "ls")
	if err != nil {
		t.Fatalf("Run(help ls) = %v", err)
	}
	assertContainsAll(t, stdout, "Command Help: task ls", "-t <tag>", "-/f")

	for _, args := range [][]string{{"--version"}, {"version"}} {
		stdout, _, err := runInDir(t, t.TempDir(), args...)
		if err != nil {
			t.Fatalf("Run(%v) = %v", args, err)
		}
		assertContainsAll(t, stdout, "task version 0.1.0")
	}

	if _, _, err := runInDir(t, t.TempDir(), "version", "extra"); err == nil {
		t.Fatal("Run(version extra) expected error")
	}
}

func TestRunUnknownCommandSuggests(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runInDir(t, t.TempDir(), "lss")
	if err == nil || !strings.Contains(err.Error(), "unknown command: lss") {
		t.Fatalf("Run(lss) = %v, expected unknown command error", err)
	}
	if stdout != "" {
		t.Fatalf("stdout = %q, expected usage on stderr only", stdout)
	}
	assertContainsAll(t, stderr, "Unknown command:", "Did you mean:", "ls", "Usage: task")

	if _, _, err := runInDir(t, t.TempDir(), "help", "nope"); err == nil {
		t.Fatal("Run(help nope) expected error")
	}
	if _, _, err := runInDir(t, t.TempDir(), "-x"); err == nil {
		t.Fatal("Run(-x) expected error for unknown option")
	}
}

func TestRunRejectsInvalidColorFlag(t *testing.T) {
	t.Parallel()

	if _, _, err := runInDir(t, t.TempDir(), "--color=maybe", "version"); err == nil {
		t.Fatal("Run(--color=maybe) expected error")
	}
	stdout, _, err := runInDir(t, t.TempDir(), "--no-color", "version")
	if err != nil {
		t.Fatalf("Run(--no-color version) = %v", err)
	}
	if strings.Contains(stdout, "\x1b[") {
		t.Fatalf("stdout = %q, expected no ANSI escapes", stdout)
	}
}

func TestSuggestCommands(t *testing.T) {
	t.Parallel()

	candidates := []string{"help", "ls", "version"}
	if got := suggestCommands("vers", candidates, 3); len(got) == 0 || got[0] != "version" {
		t.Fatalf("suggestCommands(vers) = %v, expected version first", got)
	}
	if got := suggestCommands("hepl", candidates, 3); len(got) == 0 || got[0] != "help" {
		t.Fatalf("suggestCommands(hepl) = %v, expected help", got)
	}
	if got := suggestCommands("", candidates, 3); got != nil {
		t.Fatalf("suggestCommands(\"\") = %v, expected nil", got)
	}
	if got := commandDistance("kitten", "sitting"); got != 3 {
		t.Fatalf("commandDistance() = %d, expected 3", got)
	}
}

func TestParseCommandColorFlags(t *testing.T) {
	t.Parallel()

	args, mode, err := parseCommandColorFlags([]string{"--color", "ls", "--no-color=false", "-c"})
	if err != nil {
		t.Fatalf("parseCommandColorFlags() error = %v", err)
	}
	if mode != colorModeOn {
		t.Fatalf("mode = %d, expected colorModeOn", mode)
	}
	if strings.Join(args, " ") != "ls -c" {
		t.Fatalf("args = %v, expected color flags removed", args)
	}
	if autoColorAllowed(&bytes.Buffer{}) {
		t.Fatal("autoColorAllowed() should be false for non-terminal writers")
	}
}
