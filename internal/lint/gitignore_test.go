package lint

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGitignoreMatcher(t *testing.T) {
	dir := t.TempDir()
	content := "# generated\n*.pyc\n/dist\nbuild/\ndocs/**/conf.py\n!keep.pyc\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewGitignoreMatcher(dir)

	tests := []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"mod.pyc", false, true},
		{"pkg/mod.pyc", false, true},
		{"keep.pyc", false, false},
		{"dist", true, true},
		{"pkg/dist", true, false},
		{"build", true, true},
		{"build", false, false},
		{"docs/api/v1/conf.py", false, true},
		{"src/conf.py", false, false},
		{"mod.py", false, false},
	}
	for _, tt := range tests {
		got := m.IsIgnored(filepath.Join(dir, tt.rel), tt.isDir)
		if got != tt.want {
			t.Errorf("IsIgnored(%q, dir=%v) = %v, want %v", tt.rel, tt.isDir, got, tt.want)
		}
	}
}

func TestGitignoreMatcher_OutsideBase(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, ".gitignore"), []byte("*.py\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewGitignoreMatcher(dir)

	if !m.IsIgnored(filepath.Join(sub, "a.py"), false) {
		t.Error("expected sub/a.py to be ignored")
	}
	if m.IsIgnored(filepath.Join(dir, "a.py"), false) {
		t.Error("rules from sub/.gitignore must not apply to the parent directory")
	}
}
