package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testApp(stdin string, piped bool) (*app, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	a := &app{
		stdin:      strings.NewReader(stdin),
		stdout:     &stdout,
		stderr:     &stderr,
		stdinPiped: func() bool { return piped },
	}
	return a, &stdout, &stderr
}

func chdirRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	testChdir(t, dir)
	return dir
}

func TestRun_StrictFlagEnablesAllChecks(t *testing.T) {
	dir := chdirRepo(t)
	src := "def f(a) -> int:\n    \"\"\"Doc.\"\"\"\n"
	if err := os.WriteFile(filepath.Join(dir, "mod.py"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	a, stdout, _ := testApp("", false)
	if code := a.run(context.Background(), []string{"--no-color", "mod.py"}); code != 0 {
		t.Fatalf("expected exit 0 without flags, got %d: %s", code, stdout)
	}

	a, stdout, _ = testApp("", false)
	code := a.run(context.Background(), []string{"--strict", "--no-color", "mod.py"})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	want := "mod.py:1: Docstring params are missing in function f\n" +
		"mod.py:1: No return docstring found in function f\n"
	if stdout.String() != want {
		t.Errorf("got %q, want %q", stdout.String(), want)
	}
}

func TestRun_QuietPrintsNothing(t *testing.T) {
	chdirRepo(t)
	a, stdout, _ := testApp("def f(a):\n    pass\n", true)

	code := a.run(context.Background(), []string{"-q", "--disallow-no-docstring"})
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output, got %q", stdout.String())
	}
}

func TestRun_NoFilesNoStdin(t *testing.T) {
	chdirRepo(t)
	a, stdout, _ := testApp("", false)
	if code := a.run(context.Background(), []string{"check"}); code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output, got %q", stdout.String())
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	chdirRepo(t)
	a, _, stderr := testApp("", false)
	if code := a.run(context.Background(), []string{"-f", "xml", "mod.py"}); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), `unknown format "xml"`) {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRun_VerboseLogsConfig(t *testing.T) {
	dir := chdirRepo(t)
	if err := os.WriteFile(filepath.Join(dir, ".restcheck.yml"), []byte("strict: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a, _, stderr := testApp("def f():\n    pass\n", true)

	code := a.run(context.Background(), []string{"-v"})
	if code != 1 {
		t.Errorf("expected exit 1 under strict config, got %d", code)
	}
	if !strings.Contains(stderr.String(), "config: ") || !strings.Contains(stderr.String(), ".restcheck.yml") {
		t.Errorf("expected config log line, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "checked <stdin>: 1 finding(s)") {
		t.Errorf("expected per-file log line, got %q", stderr.String())
	}
}

func TestRun_HelpUnknownTopic(t *testing.T) {
	a, _, stderr := testApp("", false)
	if code := a.run(context.Background(), []string{"help", "rule"}); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), `unknown topic "rule"`) {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRun_InitRejectsArguments(t *testing.T) {
	chdirRepo(t)
	a, _, _ := testApp("", false)
	if code := a.run(context.Background(), []string{"init", "extra"}); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
}
