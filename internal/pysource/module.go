// Package pysource loads Python source files into the module-level function
// declarations and comments that docstring checking works on.
package pysource

import (
	"context"
	"fmt"
	"os"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParamKind classifies a formal parameter.
type ParamKind int

// Parameter kinds.
const (
	Positional ParamKind = iota
	KeywordOnly
	VarPositional
	VarKeyword
)

// Param is one formal parameter, identified by its bare name.
type Param struct {
	Name string
	Kind ParamKind
}

// Function is a module-level function declaration.
type Function struct {
	Name   string
	Params []Param
	// Returns is the return annotation as written, "" when absent.
	Returns string
	// Line is the 1-based line of the def keyword.
	Line         int
	Docstring    string
	HasDocstring bool
	Async        bool
	Decorated    bool
}

// ParamNames returns the names of all formal parameters in order.
func (f Function) ParamNames() []string {
	names := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		names = append(names, p.Name)
	}
	return names
}

// Comment is a "#" comment and the line it ends on.
type Comment struct {
	Text string
	Line int
}

// Module is a loaded source file.
type Module struct {
	Path      string
	Functions []Function
	Comments  []Comment
}

// ParseError reports a file whose syntax cannot be parsed.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: invalid Python syntax", e.Path, e.Line, e.Column)
}

// Loader reads and parses Python files.
type Loader struct{}

// Load reads the file at path once and parses it.
func (l Loader) Load(ctx context.Context, path string) (*Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return l.Parse(ctx, path, src)
}

// Parse builds a Module from src. The syntax tree yields the functions;
// comments come from an independent scan of the raw text.
func (Loader) Parse(ctx context.Context, path string, src []byte) (*Module, error) {
	root, err := sitter.ParseCtx(ctx, src, python.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if root == nil {
		return nil, &ParseError{Path: path, Line: 1, Column: 1}
	}
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, parseErrorAt(path, bad)
		}
		return nil, &ParseError{Path: path, Line: 1, Column: 1}
	}
	if bad := firstLegacy(root); bad != nil {
		return nil, parseErrorAt(path, bad)
	}

	mod := &Module{Path: path, Comments: ScanComments(src)}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		decorated := false
		if child.Type() == "decorated_definition" {
			child = child.ChildByFieldName("definition")
			decorated = true
		}
		if child == nil || child.Type() != "function_definition" {
			continue
		}
		fn := buildFunction(child, src)
		if dup := duplicateParam(child, src); dup != nil {
			return nil, parseErrorAt(path, dup)
		}
		fn.Decorated = decorated
		mod.Functions = append(mod.Functions, fn)
	}
	return mod, nil
}

func buildFunction(n *sitter.Node, src []byte) Function {
	fn := Function{Line: lineOf(n.StartPoint())}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(src)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = collectParams(params, src)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		fn.Returns = ret.Content(src)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "async" {
			fn.Async = true
			break
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		fn.Docstring, fn.HasDocstring = docstringOf(body, src)
	}
	return fn
}

// firstError returns the first ERROR or missing node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !(c.HasError() || c.IsMissing()) {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

// legacyStatements are node types the grammar accepts for Python 2 source
// that Python 3 rejects.
var legacyStatements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// firstLegacy returns the first Python 2 only statement in document order.
func firstLegacy(n *sitter.Node) *sitter.Node {
	if legacyStatements[n.Type()] {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if bad := firstLegacy(n.NamedChild(i)); bad != nil {
			return bad
		}
	}
	return nil
}

// duplicateParam returns the first parameter node that repeats an earlier
// parameter name.
func duplicateParam(fn *sitter.Node, src []byte) *sitter.Node {
	list := fn.ChildByFieldName("parameters")
	if list == nil {
		return nil
	}
	seen := map[string]bool{}
	for i := 0; i < int(list.NamedChildCount()); i++ {
		n := list.NamedChild(i)
		p, ok := paramOf(n, src)
		if !ok {
			continue
		}
		if seen[p.Name] {
			return n
		}
		seen[p.Name] = true
	}
	return nil
}

func parseErrorAt(path string, n *sitter.Node) *ParseError {
	return &ParseError{Path: path, Line: lineOf(n.StartPoint()), Column: toInt(n.StartPoint().Column) + 1}
}

// lineOf converts a 0-based tree-sitter row to a 1-based line.
func lineOf(p sitter.Point) int {
	return toInt(p.Row) + 1
}

func toInt(v uint32) int {
	n, err := safecast.Conv[int](v)
	if err != nil {
		panic(fmt.Errorf("position overflow: %w", err))
	}
	return n
}
