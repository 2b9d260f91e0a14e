package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// skippedDirs are never descended into while walking a directory.
var skippedDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".tox":          true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	"node_modules":  true,
	".mypy_cache":   true,
	".pytest_cache": true,
}

// IsToolDir reports whether a directory name belongs to version control,
// a virtualenv or a tool cache. Such directories are never walked.
func IsToolDir(name string) bool {
	return skippedDirs[name]
}

// IsPython reports whether path has a Python source extension.
func IsPython(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".py" || ext == ".pyi"
}

// MatchesGlob reports whether path, its cleaned form, or its base name
// matches any of the patterns. Invalid patterns are ignored.
func MatchesGlob(patterns []string, path string) bool {
	cleanPath := filepath.ToSlash(filepath.Clean(path))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		if g.Match(filepath.ToSlash(path)) || g.Match(cleanPath) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}

func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// ResolveOpts controls how file resolution behaves.
type ResolveOpts struct {
	// UseGitignore filters walked directories by .gitignore rules. Nil
	// means enabled. Explicitly named files are never filtered.
	UseGitignore *bool

	// NoFollowSymlinks lists glob patterns of symbolic links to skip
	// during directory walking and glob expansion.
	NoFollowSymlinks []string
}

// DefaultResolveOpts returns options with defaults applied.
func DefaultResolveOpts() ResolveOpts {
	t := true
	return ResolveOpts{UseGitignore: &t}
}

func (o ResolveOpts) useGitignore() bool {
	if o.UseGitignore == nil {
		return true
	}
	return *o.UseGitignore
}

// ResolveFiles expands positional arguments into deduplicated, sorted
// file paths. Directories are walked for *.py and *.pyi files and glob
// patterns are expanded. A nonexistent non-glob path is an error.
func ResolveFiles(args []string) ([]string, error) {
	return ResolveFilesWithOpts(args, DefaultResolveOpts())
}

// ResolveFilesWithOpts is like ResolveFiles but accepts options.
func ResolveFilesWithOpts(args []string, opts ResolveOpts) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if err := resolveArg(arg, opts, addFile); err != nil {
			return nil, err
		}
	}

	sort.Strings(result)
	return result, nil
}

func resolveArg(arg string, opts ResolveOpts, addFile func(string)) error {
	if hasGlobChars(arg) {
		return resolveGlob(arg, opts, addFile)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}
	if info.IsDir() {
		return addDirFiles(arg, opts, addFile)
	}
	addFile(arg)
	return nil
}

func resolveGlob(pattern string, opts ResolveOpts, addFile func(string)) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	for _, m := range matches {
		if linfo, lerr := os.Lstat(m); lerr == nil && isSkippedSymlink(linfo, m, opts.NoFollowSymlinks) {
			continue
		}
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if err := addDirFiles(m, opts, addFile); err != nil {
				return err
			}
		} else if IsPython(m) {
			addFile(m)
		}
	}
	return nil
}

func addDirFiles(dir string, opts ResolveOpts, addFile func(string)) error {
	files, err := walkDir(dir, opts.useGitignore(), opts.NoFollowSymlinks)
	if err != nil {
		return err
	}
	for _, f := range files {
		addFile(f)
	}
	return nil
}

func isSkippedSymlink(info os.FileInfo, path string, patterns []string) bool {
	if len(patterns) == 0 || info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	return MatchesGlob(patterns, path)
}

// walkDir returns the Python files below dir.
func walkDir(dir string, useGitignore bool, noFollowSymlinks []string) ([]string, error) {
	var matcher *GitignoreMatcher
	if useGitignore {
		matcher = NewGitignoreMatcher(dir)
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if isSkippedSymlink(info, path, noFollowSymlinks) {
			return nil
		}

		if info.IsDir() && path != dir && IsToolDir(info.Name()) {
			return filepath.SkipDir
		}

		if matcher != nil && path != dir && matcher.IsIgnoredPath(path, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && IsPython(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %q: %w", dir, err)
	}
	return files, nil
}
