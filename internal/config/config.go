// Package config loads and merges .restcheck.yml files.
package config

// Config is the top-level configuration.
type Config struct {
	// Strict enables every check.
	Strict *bool `yaml:"strict,omitempty"`

	Checks `yaml:",inline"`

	// Files lists doublestar patterns checked when no paths are given on
	// the command line.
	Files []string `yaml:"files,omitempty"`

	Ignore           []string   `yaml:"ignore,omitempty"`
	NoFollowSymlinks []string   `yaml:"no-follow-symlinks,omitempty"`
	Gitignore        *bool      `yaml:"gitignore,omitempty"`
	Overrides        []Override `yaml:"overrides,omitempty"`
}

// Checks holds the optional checks. Nil fields leave the inherited value
// untouched.
type Checks struct {
	DisallowNoDocstring *bool `yaml:"disallow-no-docstring,omitempty"`
	DisallowNoParams    *bool `yaml:"disallow-no-params,omitempty"`
	DisallowNoReturn    *bool `yaml:"disallow-no-return,omitempty"`
}

// Override applies check settings to files matching glob patterns.
type Override struct {
	Files  []string `yaml:"files"`
	Strict *bool    `yaml:"strict,omitempty"`

	Checks `yaml:",inline"`
}

// merge returns c with every field set in top replacing its counterpart.
func (c Checks) merge(top Checks) Checks {
	if top.DisallowNoDocstring != nil {
		c.DisallowNoDocstring = top.DisallowNoDocstring
	}
	if top.DisallowNoParams != nil {
		c.DisallowNoParams = top.DisallowNoParams
	}
	if top.DisallowNoReturn != nil {
		c.DisallowNoReturn = top.DisallowNoReturn
	}
	return c
}

func boolPtr(b bool) *bool { return &b }

func isTrue(b *bool) bool { return b != nil && *b }
