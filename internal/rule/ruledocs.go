package rule

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

//go:embed docs/*/README.md
var docsFS embed.FS

// Doc holds metadata extracted from a kind's README front matter.
type Doc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Content     string `yaml:"-"`
}

// ListDocs returns the documentation of every kind sorted by ID.
func ListDocs() ([]Doc, error) {
	sub, err := fs.Sub(docsFS, "docs")
	if err != nil {
		return nil, err
	}
	return listDocsFromFS(sub)
}

// LookupDoc finds a kind's documentation by ID (e.g. "DS001") or name
// (e.g. "invalid-rest") and returns the full README content.
func LookupDoc(query string) (string, error) {
	sub, err := fs.Sub(docsFS, "docs")
	if err != nil {
		return "", err
	}
	return lookupDocFromFS(sub, query)
}

func listDocsFromFS(fsys fs.FS) ([]Doc, error) {
	paths, err := fs.Glob(fsys, "*/README.md")
	if err != nil {
		return nil, fmt.Errorf("reading docs directory: %w", err)
	}

	var docs []Doc
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			continue
		}
		doc, err := parseFrontMatter(data)
		if err != nil {
			continue
		}
		doc.Content = string(data)
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

func lookupDocFromFS(fsys fs.FS, query string) (string, error) {
	docs, err := listDocsFromFS(fsys)
	if err != nil {
		return "", err
	}
	for _, d := range docs {
		if strings.EqualFold(d.ID, query) || d.Name == query {
			return d.Content, nil
		}
	}
	return "", fmt.Errorf("unknown error kind %q", query)
}

// parseFrontMatter decodes the YAML front matter of a README with
// goldmark-frontmatter.
func parseFrontMatter(data []byte) (Doc, error) {
	md := goldmark.New(goldmark.WithExtensions(&frontmatter.Extender{}))
	ctx := parser.NewContext()
	md.Parser().Parse(text.NewReader(data), parser.WithContext(ctx))

	fm := frontmatter.Get(ctx)
	if fm == nil {
		return Doc{}, fmt.Errorf("missing front matter")
	}

	var doc Doc
	if err := fm.Decode(&doc); err != nil {
		return Doc{}, fmt.Errorf("decoding front matter: %w", err)
	}
	if doc.ID == "" {
		return Doc{}, fmt.Errorf("front matter missing id")
	}
	return doc, nil
}
