package pysource

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// collectParams walks a parameters node. Parameters after a bare "*" or a
// "*args" parameter are keyword-only; separators produce no parameter.
func collectParams(params *sitter.Node, src []byte) []Param {
	var out []Param
	kwOnly := false
	for i := 0; i < int(params.NamedChildCount()); i++ {
		n := params.NamedChild(i)
		switch n.Type() {
		case "keyword_separator":
			kwOnly = true
			continue
		case "positional_separator", "comment":
			continue
		}

		p, ok := paramOf(n, src)
		if !ok {
			continue
		}
		switch {
		case p.Kind == VarPositional:
			kwOnly = true
		case p.Kind == Positional && kwOnly:
			p.Kind = KeywordOnly
		}
		out = append(out, p)
	}
	return out
}

func paramOf(n *sitter.Node, src []byte) (Param, bool) {
	switch n.Type() {
	case "identifier":
		return Param{Name: n.Content(src), Kind: Positional}, true
	case "list_splat_pattern":
		return Param{Name: splatName(n, src), Kind: VarPositional}, true
	case "dictionary_splat_pattern":
		return Param{Name: splatName(n, src), Kind: VarKeyword}, true
	case "typed_parameter":
		if n.NamedChildCount() == 0 {
			return Param{}, false
		}
		return paramOf(n.NamedChild(0), src)
	case "default_parameter", "typed_default_parameter":
		if name := n.ChildByFieldName("name"); name != nil {
			return paramOf(name, src)
		}
	}
	return Param{}, false
}

func splatName(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "identifier" {
			return c.Content(src)
		}
	}
	return strings.TrimLeft(n.Content(src), "*")
}
