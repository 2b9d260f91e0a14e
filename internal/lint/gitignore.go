package lint

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignoreMatcher reports whether paths are ignored by the .gitignore
// files found at and above a root directory. Later rules override earlier
// ones, so negations work as in git.
type GitignoreMatcher struct {
	rules []ignoreRule
}

type ignoreRule struct {
	base     string // directory of the defining .gitignore
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// NewGitignoreMatcher collects the .gitignore files of root's ancestors
// and of every directory below root.
func NewGitignoreMatcher(root string) *GitignoreMatcher {
	m := &GitignoreMatcher{}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return m
	}

	for _, gi := range ancestorGitignores(absRoot) {
		m.load(gi)
	}

	_ = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && path != absRoot && IsToolDir(info.Name()) {
			return filepath.SkipDir
		}
		if !info.IsDir() && info.Name() == ".gitignore" {
			m.load(path)
		}
		return nil
	})
	return m
}

func (m *GitignoreMatcher) load(path string) {
	rules, err := parseGitignoreFile(path)
	if err != nil {
		return
	}
	m.rules = append(m.rules, rules...)
}

// ancestorGitignores lists .gitignore files above root, outermost first.
func ancestorGitignores(root string) []string {
	var found []string
	dir := filepath.Dir(root)
	for {
		gi := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(gi); err == nil {
			found = append([]string{gi}, found...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return found
		}
		dir = parent
	}
}

func parseGitignoreFile(path string) ([]ignoreRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	base := filepath.Dir(path)
	var rules []ignoreRule

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := ignoreRule{base: base}
		if rest, ok := strings.CutPrefix(line, "!"); ok {
			r.negate, line = true, rest
		}
		if rest, ok := strings.CutSuffix(line, "/"); ok {
			r.dirOnly, line = true, rest
		}
		if rest, ok := strings.CutPrefix(line, "/"); ok {
			r.anchored, line = true, rest
		} else {
			r.anchored = strings.Contains(line, "/")
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules, scanner.Err()
}

// IsIgnoredPath is IsIgnored for a possibly relative path.
func (m *GitignoreMatcher) IsIgnoredPath(path string, isDir bool) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return m.IsIgnored(abs, isDir)
}

// IsIgnored reports whether absPath is ignored.
func (m *GitignoreMatcher) IsIgnored(absPath string, isDir bool) bool {
	ignored := false
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.matches(absPath) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r ignoreRule) matches(absPath string) bool {
	rel, err := filepath.Rel(r.base, absPath)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}

	if r.anchored {
		ok, _ := doublestar.Match(r.pattern, rel)
		return ok
	}
	ok, _ := doublestar.Match("**/"+r.pattern, rel)
	return ok
}
