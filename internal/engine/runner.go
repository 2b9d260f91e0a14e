// Package engine drives docstring checking across files.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jeduden/restcheck/internal/checker"
	"github.com/jeduden/restcheck/internal/config"
	"github.com/jeduden/restcheck/internal/docstring"
	"github.com/jeduden/restcheck/internal/lint"
	"github.com/jeduden/restcheck/internal/log"
	"github.com/jeduden/restcheck/internal/pysource"
)

// Runner checks files concurrently. For each file it reads the source,
// parses it once, resolves the effective options and runs the checker.
type Runner struct {
	// Config supplies ignore patterns and per-file options. Nil means
	// config.Defaults().
	Config *config.Config

	// Flags are OR-ed into every file's effective options.
	Flags checker.Options

	Loader ModuleParser
	Parser checker.DocParser

	// Jobs bounds the number of files checked at once. Zero or less means
	// GOMAXPROCS.
	Jobs int

	Log *log.Logger
}

// Result holds the output of a run. Diagnostics are grouped by file in
// input order and keep declaration order within a file.
type Result struct {
	Diagnostics []lint.Diagnostic
	Errors      []error
	Checked     int
}

type fileResult struct {
	checked bool
	diags   []lint.Diagnostic
	err     error
}

// Run checks the files at paths. Read and parse failures are collected in
// Result.Errors and do not stop the other files.
func (r *Runner) Run(ctx context.Context, paths []string) *Result {
	slots := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = r.runFile(gctx, path, func() ([]byte, error) { return os.ReadFile(path) })
			return nil
		})
	}
	waitErr := g.Wait()

	res := collect(slots)
	if waitErr != nil {
		res.Errors = append(res.Errors, waitErr)
	}
	return res
}

// RunSource checks in-memory source reported under path, such as stdin.
func (r *Runner) RunSource(ctx context.Context, path string, src []byte) *Result {
	return collect([]fileResult{r.runFile(ctx, path, func() ([]byte, error) { return src, nil })})
}

func (r *Runner) runFile(ctx context.Context, path string, read func() ([]byte, error)) fileResult {
	cfg := r.config()
	if config.IsIgnored(cfg, path) {
		r.Log.Printf("ignored %s", path)
		return fileResult{}
	}

	src, err := read()
	if err != nil {
		return fileResult{err: fmt.Errorf("reading %q: %w", path, err)}
	}

	opts := config.Effective(cfg, filepath.ToSlash(filepath.Clean(path))).Or(r.Flags)
	c := &checker.Checker{Parser: r.parser()}

	mod, err := r.loader().Parse(ctx, path, src)
	if err != nil {
		return fileResult{err: err}
	}
	diags := toDiagnostics(path, c.Check(mod.Functions, mod.Comments, opts))

	async, decorated := countForms(mod.Functions)
	r.Log.Printf("checked %s: %d function(s) (%d async, %d decorated), %d finding(s)",
		path, len(mod.Functions), async, decorated, len(diags))
	return fileResult{checked: true, diags: diags}
}

func collect(slots []fileResult) *Result {
	res := &Result{}
	for _, s := range slots {
		if s.err != nil {
			res.Errors = append(res.Errors, s.err)
			continue
		}
		if s.checked {
			res.Checked++
		}
		res.Diagnostics = append(res.Diagnostics, s.diags...)
	}
	return res
}

func (r *Runner) config() *config.Config {
	if r.Config == nil {
		return config.Defaults()
	}
	return r.Config
}

func (r *Runner) loader() ModuleParser {
	if r.Loader == nil {
		return pysource.Loader{}
	}
	return r.Loader
}

func (r *Runner) parser() checker.DocParser {
	if r.Parser == nil {
		return docstring.ReST{}
	}
	return r.Parser
}

func (r *Runner) jobs() int {
	if r.Jobs > 0 {
		return r.Jobs
	}
	return runtime.GOMAXPROCS(0)
}
