// Package discovery finds Python files by expanding the config's files
// patterns.
package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jeduden/restcheck/internal/lint"
)

// Options controls how file discovery behaves.
type Options struct {
	// Patterns are doublestar patterns matched against paths relative to
	// BaseDir. No patterns means no files.
	Patterns []string

	// BaseDir is the directory to walk from. Defaults to ".".
	BaseDir string

	UseGitignore bool

	// NoFollowSymlinks lists glob patterns of symbolic links to skip.
	NoFollowSymlinks []string
}

// Discover walks BaseDir and returns files matching any of the patterns,
// deduplicated and sorted. Returned paths are BaseDir joined with the
// matched relative path.
func Discover(opts Options) ([]string, error) {
	if len(opts.Patterns) == 0 {
		return nil, nil
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	valid := validPatterns(opts.Patterns)
	if len(valid) == 0 {
		return nil, nil
	}

	w := &walker{
		baseDir:  baseDir,
		absBase:  absBase,
		patterns: valid,
		noFollow: opts.NoFollowSymlinks,
		seen:     make(map[string]bool),
	}
	if opts.UseGitignore {
		w.git = lint.NewGitignoreMatcher(absBase)
	}

	if err := filepath.Walk(absBase, w.visit); err != nil {
		return nil, err
	}

	sort.Strings(w.result)
	return w.result, nil
}

func validPatterns(patterns []string) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		}
	}
	return valid
}

type walker struct {
	baseDir  string
	absBase  string
	patterns []string
	noFollow []string
	git      *lint.GitignoreMatcher
	seen     map[string]bool
	result   []string
}

func (w *walker) visit(path string, info os.FileInfo, walkErr error) error {
	if walkErr != nil {
		return walkErr
	}

	rel, err := filepath.Rel(w.absBase, path)
	if err != nil || rel == "." {
		return nil
	}
	rel = filepath.ToSlash(rel)

	if info.Mode()&os.ModeSymlink != 0 && lint.MatchesGlob(w.noFollow, rel) {
		return nil
	}

	if w.git != nil && w.git.IsIgnored(path, info.IsDir()) {
		if info.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	if info.IsDir() {
		if lint.IsToolDir(info.Name()) {
			return filepath.SkipDir
		}
		return nil
	}

	if w.matchesAny(rel) && !w.seen[rel] {
		w.seen[rel] = true
		w.result = append(w.result, filepath.Join(w.baseDir, filepath.FromSlash(rel)))
	}
	return nil
}

func (w *walker) matchesAny(rel string) bool {
	for _, p := range w.patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
