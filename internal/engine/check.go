package engine

import (
	"context"

	"github.com/jeduden/restcheck/internal/checker"
	"github.com/jeduden/restcheck/internal/docstring"
	"github.com/jeduden/restcheck/internal/lint"
	"github.com/jeduden/restcheck/internal/pysource"
	"github.com/jeduden/restcheck/internal/rule"
)

// ModuleParser turns Python source into a Module. pysource.Loader
// implements it.
type ModuleParser interface {
	Parse(ctx context.Context, path string, src []byte) (*pysource.Module, error)
}

// CheckDocstrings loads the Python file at path and returns its findings
// in declaration order. A file that cannot be read or parsed returns an
// error and no findings.
func CheckDocstrings(ctx context.Context, path string, opts checker.Options) ([]checker.Finding, error) {
	mod, err := pysource.Loader{}.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	c := checker.Checker{Parser: docstring.ReST{}}
	return c.Check(mod.Functions, mod.Comments, opts), nil
}

// countForms returns how many of fns are async and how many decorated.
func countForms(fns []pysource.Function) (async, decorated int) {
	for _, fn := range fns {
		if fn.Async {
			async++
		}
		if fn.Decorated {
			decorated++
		}
	}
	return async, decorated
}

func toDiagnostics(path string, findings []checker.Finding) []lint.Diagnostic {
	diags := make([]lint.Diagnostic, 0, len(findings))
	for _, f := range findings {
		diags = append(diags, lint.Diagnostic{
			File:     path,
			Line:     f.Line,
			RuleID:   f.Kind.ID(),
			RuleName: f.Kind.Name(),
			Severity: severityOf(f.Kind),
			Message:  f.Message,
		})
	}
	return diags
}

// severityOf reports the opt-in presence checks as warnings and every
// inconsistency as an error.
func severityOf(k rule.Kind) lint.Severity {
	switch k {
	case rule.MissingDocstring, rule.ParamsMissing:
		return lint.Warning
	}
	return lint.Error
}
