package pysource

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jeduden/restcheck/internal/docstring"
)

// docstringOf returns the cleaned docstring of a function body: the first
// statement, when it is a plain (non-bytes, non-f) string literal or an
// implicit concatenation of them, possibly parenthesized. An empty
// docstring counts as absent.
func docstringOf(body *sitter.Node, src []byte) (string, bool) {
	var first *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if c := body.NamedChild(i); c.Type() != "comment" {
			first = c
			break
		}
	}
	if first == nil || first.Type() != "expression_statement" || first.NamedChildCount() != 1 {
		return "", false
	}

	expr := unparen(first.NamedChild(0))
	var parts []*sitter.Node
	switch expr.Type() {
	case "string":
		parts = []*sitter.Node{expr}
	case "concatenated_string":
		for i := 0; i < int(expr.NamedChildCount()); i++ {
			if c := expr.NamedChild(i); c.Type() == "string" {
				parts = append(parts, c)
			}
		}
	default:
		return "", false
	}

	var b strings.Builder
	for _, p := range parts {
		s, ok := decodeLiteral(p.Content(src))
		if !ok {
			return "", false
		}
		b.WriteString(s)
	}

	doc := docstring.CleanDoc(b.String())
	return doc, doc != ""
}

// unparen strips redundant parentheses around a single expression.
func unparen(n *sitter.Node) *sitter.Node {
	for n.Type() == "parenthesized_expression" {
		var inner *sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c.Type() == "comment" {
				continue
			}
			if inner != nil {
				return n
			}
			inner = c
		}
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}

// decodeLiteral returns the value of a Python string literal. It reports
// false for bytes and f-string literals, which are never docstrings.
func decodeLiteral(lit string) (string, bool) {
	i := strings.IndexAny(lit, `"'`)
	if i < 0 {
		return "", false
	}
	prefix := strings.ToLower(lit[:i])
	if strings.ContainsAny(prefix, "bf") {
		return "", false
	}
	raw := strings.Contains(prefix, "r")

	body := lit[i:]
	quote := body[:1]
	if strings.HasPrefix(body, strings.Repeat(quote, 3)) && len(body) >= 6 {
		quote = strings.Repeat(quote, 3)
	}
	if len(body) < 2*len(quote) {
		return "", false
	}
	body = body[len(quote) : len(body)-len(quote)]

	if raw {
		return body, true
	}
	return unescape(body), true
}

// unescape decodes Python backslash escapes. Unknown escapes are kept
// verbatim, as Python does.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if r, ok := hexRune(s, i+1, width); ok {
				b.WriteRune(r)
				i += width
			} else {
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			n, _ := strconv.ParseUint(s[i:j], 8, 32)
			b.WriteRune(rune(n))
			i = j - 1
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexRune(s string, start, width int) (rune, bool) {
	if start+width > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		return 0, false
	}
	return rune(n), true
}
