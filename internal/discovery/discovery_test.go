package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func relNames(t *testing.T, base string, files []string) []string {
	t.Helper()
	absBase, err := filepath.Abs(base)
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(absBase, f)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func assertFiles(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDiscover_FindsPythonFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "setup.py", "")
	writeFile(t, dir, "pkg/mod.py", "")
	writeFile(t, dir, "README.md", "# Hello\n")

	files, err := Discover(Options{Patterns: []string{"**/*.py"}, BaseDir: dir})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	assertFiles(t, relNames(t, dir, files), []string{"pkg/mod.py", "setup.py"})
}

func TestDiscover_EmptyPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mod.py", "")

	for _, patterns := range [][]string{nil, {}} {
		files, err := Discover(Options{Patterns: patterns, BaseDir: dir})
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}
		if len(files) != 0 {
			t.Errorf("expected no files for %v, got %v", patterns, files)
		}
	}
}

func TestDiscover_InvalidPatternsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mod.py", "")

	files, err := Discover(Options{Patterns: []string{"[", "*.py"}, BaseDir: dir})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	assertFiles(t, relNames(t, dir, files), []string{"mod.py"})
}

func TestDiscover_GitignoreRespected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated/\n")
	writeFile(t, dir, "app.py", "")
	writeFile(t, dir, "generated/api.py", "")

	files, err := Discover(Options{Patterns: []string{"**/*.py"}, BaseDir: dir, UseGitignore: true})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	assertFiles(t, relNames(t, dir, files), []string{"app.py"})

	files, err = Discover(Options{Patterns: []string{"**/*.py"}, BaseDir: dir})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	assertFiles(t, relNames(t, dir, files), []string{"app.py", "generated/api.py"})
}

func TestDiscover_SkipsToolDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "")
	writeFile(t, dir, ".venv/lib/site.py", "")
	writeFile(t, dir, "__pycache__/app.py", "")

	files, err := Discover(Options{Patterns: []string{"**/*.py"}, BaseDir: dir})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	assertFiles(t, relNames(t, dir, files), []string{"app.py"})
}

func TestDiscover_ResultsSortedAndUnique(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.py", "")
	writeFile(t, dir, "a.py", "")
	writeFile(t, dir, "m/b.py", "")

	files, err := Discover(Options{Patterns: []string{"**/*.py", "*.py"}, BaseDir: dir})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("expected sorted results, got %v", files)
	}
	assertFiles(t, relNames(t, dir, files), []string{"a.py", "m/b.py", "z.py"})
}

func TestDiscover_SubdirectoryPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/pkg/mod.py", "")
	writeFile(t, dir, "tests/test_mod.py", "")

	files, err := Discover(Options{Patterns: []string{"src/**/*.py"}, BaseDir: dir})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	assertFiles(t, relNames(t, dir, files), []string{"src/pkg/mod.py"})
}

func TestDiscover_DefaultBaseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "only.py", "")
	testChdir(t, dir)

	files, err := Discover(Options{Patterns: []string{"*.py"}})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "only.py" {
		t.Errorf("expected only.py, got %v", files)
	}
}
