// Package docstring parses reST docstrings into their field lists.
package docstring

import "fmt"

// Param is one documented parameter. Name keeps any leading "*" or "**"
// exactly as written.
type Param struct {
	Name        string
	Type        string
	Description string
}

// Returns is the documented return (or yield) value.
type Returns struct {
	Type        string
	Description string
}

// Raises is one documented exception.
type Raises struct {
	Type        string
	Description string
}

// Parsed is the structured form of a docstring.
type Parsed struct {
	Params  []Param
	Returns *Returns
	Raises  []Raises
}

// ParamNames returns the documented parameter names in document order.
func (p Parsed) ParamNames() []string {
	names := make([]string, 0, len(p.Params))
	for _, prm := range p.Params {
		names = append(names, prm.Name)
	}
	return names
}

// DialectError reports docstring text that is not a valid reST field list.
type DialectError struct {
	Near   string
	Reason string
}

func (e *DialectError) Error() string {
	if e.Near == "" {
		return "invalid reST docstring: " + e.Reason
	}
	return fmt.Sprintf("invalid reST docstring near %q: %s", e.Near, e.Reason)
}
