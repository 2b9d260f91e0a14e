// Package rule is the catalog of docstring error kinds. Each kind has a
// stable ID, a short name and a message template that takes the function
// name as its only substitution.
package rule

import "fmt"

// Kind identifies one class of docstring inconsistency.
type Kind int

// Error kinds, in catalog order.
const (
	InvalidDialect Kind = iota
	MissingDocstring
	MissingReturnDoc
	ParamsMismatch
	ParamsMissing
)

type entry struct {
	id       string
	name     string
	template string
}

var catalog = [...]entry{
	InvalidDialect:   {"DS001", "invalid-rest", "Docstring is not valid reST in function %s"},
	MissingDocstring: {"DS002", "no-docstring", "No docstring found in function %s"},
	MissingReturnDoc: {"DS003", "no-return", "No return docstring found in function %s"},
	ParamsMismatch:   {"DS004", "params-mismatch", "Docstring params do not match function params in function %s"},
	ParamsMissing:    {"DS005", "params-missing", "Docstring params are missing in function %s"},
}

// unknown is used for values outside the enum so Format never fails.
var unknown = entry{"DS000", "unknown", "Docstring problem in function %s"}

func (k Kind) entry() entry {
	if k < 0 || int(k) >= len(catalog) {
		return unknown
	}
	return catalog[k]
}

// ID returns the stable identifier, e.g. "DS004".
func (k Kind) ID() string { return k.entry().id }

// Name returns the kebab-case name, e.g. "params-mismatch".
func (k Kind) Name() string { return k.entry().name }

// Template returns the message template with a single %s verb.
func (k Kind) Template() string { return k.entry().template }

func (k Kind) String() string {
	return fmt.Sprintf("[%s]: %s", k.ID(), k.Name())
}

// Format renders the message for kind about the function named name.
func Format(kind Kind, name string) string {
	return fmt.Sprintf(kind.Template(), name)
}
