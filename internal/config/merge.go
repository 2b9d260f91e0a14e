package config

import (
	"github.com/gobwas/glob"

	"github.com/jeduden/restcheck/internal/checker"
	"github.com/jeduden/restcheck/internal/lint"
)

// Merge merges a loaded config on top of defaults. Scalar settings set in
// loaded win. Files, Ignore, NoFollowSymlinks and Overrides come from
// loaded only.
func Merge(defaults, loaded *Config) *Config {
	out := &Config{
		Strict:    defaults.Strict,
		Checks:    defaults.Checks,
		Gitignore: defaults.Gitignore,
	}
	if loaded == nil {
		return out
	}

	if loaded.Strict != nil {
		out.Strict = loaded.Strict
	}
	if loaded.Gitignore != nil {
		out.Gitignore = loaded.Gitignore
	}
	out.Checks = out.Checks.merge(loaded.Checks)
	out.Files = loaded.Files
	out.Ignore = loaded.Ignore
	out.NoFollowSymlinks = loaded.NoFollowSymlinks
	out.Overrides = loaded.Overrides
	return out
}

// Effective returns the checker options for filePath. At the top level
// strict enables every check. Each override whose patterns match is then
// applied in order: its strict value resets all checks and its explicit
// check values replace the inherited ones.
func Effective(cfg *Config, filePath string) checker.Options {
	opts := checker.Options{
		RequireDocstring: isTrue(cfg.DisallowNoDocstring),
		RequireParams:    isTrue(cfg.DisallowNoParams),
		RequireReturn:    isTrue(cfg.DisallowNoReturn),
	}
	if isTrue(cfg.Strict) {
		opts = checker.Strict()
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, filePath) {
			opts = o.apply(opts)
		}
	}
	return opts
}

func (o Override) apply(opts checker.Options) checker.Options {
	if o.Strict != nil {
		if *o.Strict {
			opts = checker.Strict()
		} else {
			opts = checker.Options{}
		}
	}
	if o.DisallowNoDocstring != nil {
		opts.RequireDocstring = *o.DisallowNoDocstring
	}
	if o.DisallowNoParams != nil {
		opts.RequireParams = *o.DisallowNoParams
	}
	if o.DisallowNoReturn != nil {
		opts.RequireReturn = *o.DisallowNoReturn
	}
	return opts
}

// IsIgnored reports whether filePath, its cleaned form or its base name
// matches one of cfg's ignore patterns.
func IsIgnored(cfg *Config, filePath string) bool {
	return lint.MatchesGlob(cfg.Ignore, filePath)
}

// matchesAny reports whether filePath matches any of the glob patterns.
// Invalid patterns are skipped.
func matchesAny(patterns []string, filePath string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		if g.Match(filePath) {
			return true
		}
	}
	return false
}
