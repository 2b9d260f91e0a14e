// Package checker cross-references module-level function signatures with
// their parsed docstrings and reports inconsistencies.
package checker

import (
	"strings"

	"github.com/jeduden/restcheck/internal/docstring"
	"github.com/jeduden/restcheck/internal/pysource"
	"github.com/jeduden/restcheck/internal/rule"
)

// Options selects the optional checks.
type Options struct {
	RequireDocstring bool
	RequireParams    bool
	RequireReturn    bool
}

// Strict returns Options with every optional check enabled.
func Strict() Options {
	return Options{RequireDocstring: true, RequireParams: true, RequireReturn: true}
}

// Or enables every check enabled in either o or other.
func (o Options) Or(other Options) Options {
	return Options{
		RequireDocstring: o.RequireDocstring || other.RequireDocstring,
		RequireParams:    o.RequireParams || other.RequireParams,
		RequireReturn:    o.RequireReturn || other.RequireReturn,
	}
}

// DocParser parses docstring text. A malformed docstring is reported as a
// *docstring.DialectError.
type DocParser interface {
	Parse(text string) (docstring.Parsed, error)
}

// Finding is one reported inconsistency.
type Finding struct {
	Kind    rule.Kind
	Message string
	Line    int
}

// Checker runs the docstring checks against a parser.
type Checker struct {
	Parser DocParser
}

// New returns a Checker using the reST parser.
func New() *Checker {
	return &Checker{Parser: docstring.ReST{}}
}

// Check returns the findings for fns in declaration order. Within one
// function, findings appear in check order.
func (c *Checker) Check(fns []pysource.Function, comments []pysource.Comment, opts Options) []Finding {
	var out []Finding
	for _, fn := range fns {
		if IsSuppressed(fn, comments) {
			continue
		}
		out = append(out, c.checkFunction(fn, opts)...)
	}
	return out
}

// findings accumulates the results for a single function.
type findings struct {
	fn   pysource.Function
	list []Finding
}

func (f *findings) add(kind rule.Kind) {
	f.list = append(f.list, Finding{
		Kind:    kind,
		Message: rule.Format(kind, f.fn.Name),
		Line:    f.fn.Line,
	})
}

func (c *Checker) checkFunction(fn pysource.Function, opts Options) []Finding {
	acc := &findings{fn: fn}

	if !fn.HasDocstring {
		if opts.RequireDocstring {
			acc.add(rule.MissingDocstring)
		}
		return acc.list
	}

	doc, err := c.Parser.Parse(fn.Docstring)
	if err != nil {
		acc.add(rule.InvalidDialect)
		return acc.list
	}

	formal := nameSet(fn.ParamNames())
	documented := doc.ParamNames()
	stripped := stripAll(documented)

	if opts.RequireParams && len(formal) > 0 && !subset(formal, stripped) {
		acc.add(rule.ParamsMissing)
	}

	if len(documented) > 0 && !subset(stripped, formal) {
		acc.add(rule.ParamsMismatch)
	}

	hasStructure := len(documented) > 0 || len(doc.Raises) > 0
	if !IsNoneAnnotation(fn.Returns) && doc.Returns == nil && (hasStructure || opts.RequireReturn) {
		acc.add(rule.MissingReturnDoc)
	}

	return acc.list
}

// IsNoneAnnotation reports whether a return annotation is absent or None.
// Redundant parentheses around None are ignored.
func IsNoneAnnotation(annotation string) bool {
	a := strings.TrimSpace(annotation)
	if a == "" {
		return true
	}
	for len(a) >= 2 && a[0] == '(' && a[len(a)-1] == ')' {
		a = strings.TrimSpace(a[1 : len(a)-1])
	}
	return a == "None"
}

// StripMarker removes a leading "**" or "*" variadic marker from a
// documented parameter name. Names without a marker are returned as is.
func StripMarker(name string) string {
	if s, ok := strings.CutPrefix(name, "**"); ok {
		return s
	}
	if s, ok := strings.CutPrefix(name, "*"); ok {
		return s
	}
	return name
}

func stripAll(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[StripMarker(n)] = true
	}
	return set
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// subset reports whether every key of a is in b.
func subset(a, b map[string]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
