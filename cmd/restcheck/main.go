package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/restcheck/internal/checker"
	"github.com/jeduden/restcheck/internal/config"
	"github.com/jeduden/restcheck/internal/discovery"
	"github.com/jeduden/restcheck/internal/engine"
	"github.com/jeduden/restcheck/internal/lint"
	"github.com/jeduden/restcheck/internal/log"
	"github.com/jeduden/restcheck/internal/output"
	"github.com/jeduden/restcheck/internal/rule"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := newApp().run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

const usageText = `Usage: restcheck [command] [flags] [files...]

Commands:
  check     Check Python docstrings against signatures (default)
  help      Show help for error kinds
  init      Generate a default .restcheck.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'restcheck <command> --help' for more information on a command.
`

// app carries the process streams so the command can run in tests.
type app struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	stdinPiped func() bool
}

func newApp() *app {
	return &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, stdinPiped: isStdinPipe}
}

func (a *app) errorf(format string, args ...any) {
	fmt.Fprintf(a.stderr, "restcheck: "+format+"\n", args...)
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usageText)
		return 0
	}

	switch args[0] {
	case "--help", "-h":
		fmt.Fprint(a.stderr, usageText)
		return 0
	case "check":
		return a.runCheck(ctx, args[1:])
	case "help":
		return a.runHelp(args[1:])
	case "init":
		return a.runInit(args[1:])
	case "version":
		a.printVersion()
		return 0
	}
	return a.runCheck(ctx, args)
}

func (a *app) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Fprintf(a.stdout, "restcheck %s\n", version)
}

type checkFlags struct {
	opts        checker.Options
	strict      bool
	configPath  string
	format      string
	noColor     bool
	quiet       bool
	noGitignore bool
	jobs        int
	verbose     bool
}

func (a *app) runCheck(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var f checkFlags
	fs.BoolVar(&f.opts.RequireDocstring, "disallow-no-docstring", false, "Report functions without a docstring")
	fs.BoolVar(&f.opts.RequireParams, "disallow-no-params", false, "Report functions whose parameters are not all documented")
	fs.BoolVar(&f.opts.RequireReturn, "disallow-no-return", false, "Report non-None returns without a return description")
	fs.BoolVar(&f.strict, "strict", false, "Enable all three checks above")
	fs.StringVarP(&f.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&f.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Print nothing, only set the exit code")
	fs.BoolVar(&f.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "Files checked in parallel (default GOMAXPROCS)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: restcheck check [flags] [files...]\n\n"+
			"Check that reST docstrings of module-level functions match their signatures.\n\n"+
			"Files can be paths, directories (walked recursively for *.py), or glob patterns.\n"+
			"With no file arguments, uses the config's files patterns or reads stdin if piped.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if f.strict {
		f.opts = checker.Strict()
	}

	formatter, err := output.New(f.format, !f.noColor)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}

	logger := &log.Logger{Enabled: f.verbose, W: a.stderr}
	cfg, err := loadConfig(f.configPath, logger)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}

	runner := &engine.Runner{Config: cfg, Flags: f.opts, Jobs: f.jobs, Log: logger}

	var result *engine.Result
	switch files := fs.Args(); {
	case len(files) > 0:
		resolved, err := lint.ResolveFilesWithOpts(files, resolveOpts(cfg, f.noGitignore))
		if err != nil {
			a.errorf("%v", err)
			return 2
		}
		logger.Printf("resolved %d file(s)", len(resolved))
		result = runner.Run(ctx, resolved)

	case len(cfg.Files) > 0:
		discovered, err := discovery.Discover(discovery.Options{
			Patterns:         cfg.Files,
			UseGitignore:     useGitignore(cfg, f.noGitignore),
			NoFollowSymlinks: cfg.NoFollowSymlinks,
		})
		if err != nil {
			a.errorf("discovering files: %v", err)
			return 2
		}
		logger.Printf("discovered %d file(s)", len(discovered))
		result = runner.Run(ctx, discovered)

	case a.stdinPiped():
		source, err := io.ReadAll(a.stdin)
		if err != nil {
			a.errorf("reading stdin: %v", err)
			return 2
		}
		result = runner.RunSource(ctx, "<stdin>", source)

	default:
		return 0
	}

	return a.report(result, formatter, f.quiet)
}

// report prints errors and diagnostics and returns the exit code.
func (a *app) report(result *engine.Result, formatter output.Formatter, quiet bool) int {
	for _, e := range result.Errors {
		a.errorf("%v", e)
	}

	if !quiet && len(result.Diagnostics) > 0 {
		if err := formatter.Format(a.stdout, result.Diagnostics); err != nil {
			a.errorf("error writing output: %v", err)
			return 2
		}
	}

	switch {
	case len(result.Diagnostics) > 0:
		return 1
	case len(result.Errors) > 0:
		return 2
	}
	return 0
}

func useGitignore(cfg *config.Config, noGitignore bool) bool {
	if noGitignore {
		return false
	}
	return cfg.Gitignore == nil || *cfg.Gitignore
}

func resolveOpts(cfg *config.Config, noGitignore bool) lint.ResolveOpts {
	use := useGitignore(cfg, noGitignore)
	return lint.ResolveOpts{UseGitignore: &use, NoFollowSymlinks: cfg.NoFollowSymlinks}
}

// runInit writes the default config to .restcheck.yml in the current
// directory.
func (a *app) runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: restcheck init\n\n"+
			"Generate a default %s config file in the current directory.\n", config.FileName)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		a.errorf("init takes no arguments")
		return 2
	}

	if _, err := os.Stat(config.FileName); err == nil {
		a.errorf("%s already exists", config.FileName)
		return 2
	}

	data, err := config.Marshal(config.DumpDefaults())
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	if err := os.WriteFile(config.FileName, data, 0o644); err != nil {
		a.errorf("writing %s: %v", config.FileName, err)
		return 2
	}

	a.errorf("created %s", config.FileName)
	return 0
}

// loadConfig loads the file at configPath, or the discovered one, merged
// on top of the defaults.
func loadConfig(configPath string, logger *log.Logger) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Merge(defaults, nil), nil
		}
		if configPath, err = config.Discover(cwd); err != nil || configPath == "" {
			logger.Printf("config: none found, using defaults")
			return config.Merge(defaults, nil), nil
		}
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Printf("config: %s", configPath)
	return config.Merge(defaults, loaded), nil
}

func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

const helpUsageText = `Usage: restcheck help <topic>

Topics:
  error [id|name]   Show error kind documentation
`

func (a *app) runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, helpUsageText)
		return 0
	}

	switch args[0] {
	case "error":
		if len(args) == 1 {
			return a.listKinds()
		}
		return a.showKind(args[1])
	default:
		a.errorf("help: unknown topic %q", args[0])
		return 2
	}
}

func (a *app) listKinds() int {
	docs, err := rule.ListDocs()
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	for _, d := range docs {
		fmt.Fprintf(a.stdout, "%-6s %-16s %s\n", d.ID, d.Name, d.Description)
	}
	return 0
}

func (a *app) showKind(query string) int {
	content, err := rule.LookupDoc(query)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	fmt.Fprint(a.stdout, content)
	return 0
}
