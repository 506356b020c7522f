package templated

import (
	"html"
	"strings"
	"text/template"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/render/engine"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
	"github.com/arthur-debert/docweave/pkg/render/plaintext"
)

func unknownKind(kind string) error {
	return errors.Newf(errors.ErrUnknownKind, "unknown node kind: %s", kind).WithDetail("kind", kind)
}

// asDocument wraps a node so it can be handed to a document renderer.
func asDocument(v any) (*ast.Document, error) {
	switch n := v.(type) {
	case *ast.Document:
		return n, nil
	case ast.Block:
		return &ast.Document{Children: []ast.Block{n}}, nil
	case ast.Inline:
		return &ast.Document{Children: []ast.Block{&ast.Paragraph{Content: []ast.Inline{n}}}}, nil
	case ast.Node:
		return &ast.Document{Children: []ast.Block{&ast.Paragraph{Content: []ast.Inline{ast.T(ast.PlainText(n))}}}}, nil
	case string:
		return &ast.Document{Children: []ast.Block{&ast.Paragraph{Content: []ast.Inline{ast.T(n)}}}}, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "cannot render %T", v)
}

func (r *Renderer) funcMap() template.FuncMap {
	md := markdown.New(r.opts.Markdown)
	plain := plaintext.New(r.opts.PlainText)
	index := func(doc *ast.Document) *Index { return NewIndex(doc, r.opts.Limits) }

	return template.FuncMap{
		"headings":  func(doc *ast.Document) []HeadingInfo { return index(doc).Headings },
		"links":     func(doc *ast.Document) []LinkInfo { return index(doc).Links },
		"images":    func(doc *ast.Document) []ImageInfo { return index(doc).Images },
		"footnotes": func(doc *ast.Document) []FootnoteInfo { return index(doc).Footnotes },
		"nodes": func(doc *ast.Document, kind string) ([]ast.Node, error) {
			k, ok := ast.ParseKind(kind)
			if !ok {
				return nil, unknownKind(kind)
			}
			return index(doc).Nodes(k), nil
		},
		"kind": func(n ast.Node) string { return n.Kind().String() },
		"text": func(n ast.Node) string { return ast.PlainText(n) },
		"markdown": func(v any) (string, error) {
			doc, err := asDocument(v)
			if err != nil {
				return "", err
			}
			return md.Render(doc)
		},
		"plaintext": func(v any) (string, error) {
			doc, err := asDocument(v)
			if err != nil {
				return "", err
			}
			return plain.Render(doc)
		},
		"escape": r.escape,
		"style": func(name, text string) string {
			if r.opts.NoColor {
				return text
			}
			return r.styles.Render(name, text)
		},
		"indent": func(level int) string { return strings.Repeat("  ", max(level-1, 0)) },
		"repeat": func(s string, n int) string { return strings.Repeat(s, max(n, 0)) },
		"meta": func(n ast.Node, key string) any {
			v, _ := n.Meta().Get(key)
			return v
		},
	}
}

const markdownSpecial = "\\`*_{}[]#|<>"

func (r *Renderer) escape(s string) string {
	switch r.opts.Escape {
	case EscapeHTML:
		return html.EscapeString(s)
	case EscapeMarkdown:
		return engine.EscapeChars(s, markdownSpecial)
	default:
		return s
	}
}
