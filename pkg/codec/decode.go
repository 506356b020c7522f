package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
)

// FromMap decodes a map produced by ToMap. Decoding a document restores
// its typed extensions. Errors carry the path of the offending field.
func FromMap(m map[string]any) (ast.Node, error) {
	d := &decoder{ext: ast.NewExtensions()}
	n, err := d.node(m, "$")
	if err != nil {
		return nil, err
	}
	if doc, ok := n.(*ast.Document); ok && d.ext.Len() > 0 {
		doc.Extensions = d.ext
	}
	return n, nil
}

type decoder struct {
	ext *ast.Extensions
}

func decodeError(path, format string, args ...any) error {
	return errors.Newf(errors.ErrDecode, "%s: %s", path, fmt.Sprintf(format, args...)).
		WithDetail("path", path)
}

// fields reads typed values out of one node map, remembering the first
// failure so decoding code can stay linear.
type fields struct {
	m    map[string]any
	path string
	err  error
}

func (f *fields) fail(key, format string, args ...any) {
	if f.err == nil {
		f.err = decodeError(f.path+"."+key, format, args...)
	}
}

func (f *fields) str(key string) string {
	v, ok := f.m[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.fail(key, "expected string, got %T", v)
	}
	return s
}

func (f *fields) integer(key string) int {
	v, ok := f.m[key]
	if !ok || v == nil {
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		f.fail(key, "expected integer, got %v", v)
	}
	return n
}

func (f *fields) boolean(key string) bool {
	v, ok := f.m[key]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		f.fail(key, "expected boolean, got %T", v)
	}
	return b
}

func (f *fields) list(key string) []any {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil
	}
	l, ok := v.([]any)
	if !ok {
		f.fail(key, "expected list, got %T", v)
	}
	return l
}

func (f *fields) object(key string) map[string]any {
	v, ok := f.m[key]
	if !ok || v == nil {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		f.fail(key, "expected object, got %T", v)
	}
	return m
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		return i, err == nil
	}
	return 0, false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case ast.Metadata:
		return m, true
	}
	return nil, false
}

func (d *decoder) node(m map[string]any, path string) (ast.Node, error) {
	raw, ok := m[keyKind]
	if !ok {
		return nil, decodeError(path, "missing %q", keyKind)
	}
	name, ok := raw.(string)
	if !ok {
		return nil, decodeError(path+"."+keyKind, "expected string, got %T", raw)
	}
	kind, ok := ast.ParseKind(name)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownKind, "%s: unknown node kind %q", path, name).
			WithDetail("path", path).
			WithDetail("kind", name)
	}

	f := &fields{m: m, path: path}
	n, err := d.build(kind, f)
	if err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if meta := f.object(keyMeta); len(meta) > 0 {
		for k, v := range meta {
			setMeta(n, k, v)
		}
	}
	if exts := f.object(keyExtensions); len(exts) > 0 {
		d.extensions(n, exts, path+"."+keyExtensions)
	}
	return n, f.err
}

func (d *decoder) extensions(n ast.Node, exts map[string]any, path string) {
	if raw, ok := asMap(exts[extOrgHeading]); ok {
		f := &fields{m: raw, path: path + "." + extOrgHeading}
		org := ast.OrgHeading{Todo: f.str("todo"), Priority: f.str("priority")}
		for _, t := range f.list("tags") {
			org.Tags = append(org.Tags, fmt.Sprint(t))
		}
		if props := f.object("properties"); len(props) > 0 {
			org.Properties = make(map[string]string, len(props))
			for k, v := range props {
				org.Properties[k] = fmt.Sprint(v)
			}
		}
		d.ext.Set(n, org)
	}
	if raw, ok := asMap(exts[extCell]); ok {
		f := &fields{m: raw, path: path + "." + extCell}
		d.ext.Set(n, ast.NotebookCell{
			CellType:       f.str("cell_type"),
			ExecutionCount: f.integer("execution_count"),
			Source:         f.str("source"),
		})
	}
}

// metaSetter is satisfied by every node through its embedded Attrs.
type metaSetter interface {
	SetMeta(key string, value any)
}

func setMeta(n ast.Node, key string, value any) {
	if s, ok := n.(metaSetter); ok {
		s.SetMeta(key, value)
	}
}

// children decodes every element of the list under key, skipping nulls.
func children[T ast.Node](d *decoder, f *fields, key string) ([]T, error) {
	raw := f.list(key)
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(raw))
	for i, item := range raw {
		if item == nil {
			continue
		}
		path := fmt.Sprintf("%s.%s[%d]", f.path, key, i)
		n, err := d.child(item, path)
		if err != nil {
			return nil, err
		}
		t, ok := n.(T)
		if !ok {
			return nil, decodeError(path, "unexpected %s node", n.Kind())
		}
		out = append(out, t)
	}
	return out, nil
}

// single decodes the optional node under key.
func single[T ast.Node](d *decoder, f *fields, key string) (T, error) {
	var zero T
	item, ok := f.m[key]
	if !ok || item == nil {
		return zero, nil
	}
	path := f.path + "." + key
	n, err := d.child(item, path)
	if err != nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, decodeError(path, "unexpected %s node", n.Kind())
	}
	return t, nil
}

func (d *decoder) child(item any, path string) (ast.Node, error) {
	m, ok := asMap(item)
	if !ok {
		return nil, decodeError(path, "expected object, got %T", item)
	}
	return d.node(m, path)
}

func representations(f *fields) map[ast.Notation]string {
	raw := f.object("representations")
	if len(raw) == 0 {
		return nil
	}
	out := make(map[ast.Notation]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			f.fail("representations."+k, "expected string, got %T", v)
			continue
		}
		out[ast.Notation(k)] = s
	}
	return out
}

func alignment(f *fields, key, value string) ast.Alignment {
	a, ok := ast.ParseAlignment(value)
	if !ok {
		f.fail(key, "unknown alignment %q", value)
	}
	return a
}

func (d *decoder) build(kind ast.Kind, f *fields) (ast.Node, error) {
	var err error
	switch kind {
	case ast.KindDocument:
		n := &ast.Document{}
		n.Children, err = children[ast.Block](d, f, "children")
		return n, err
	case ast.KindHeading:
		n := &ast.Heading{Level: f.integer("level")}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindParagraph:
		n := &ast.Paragraph{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindList:
		n := &ast.List{Ordered: f.boolean("ordered"), Start: f.integer("start"), Tight: f.boolean("tight")}
		n.Items, err = children[*ast.ListItem](d, f, "items")
		return n, err
	case ast.KindListItem:
		n := &ast.ListItem{}
		task, ok := ast.ParseTaskStatus(f.str("task"))
		if !ok {
			f.fail("task", "unknown task status %q", f.str("task"))
		}
		n.Task = task
		n.Children, err = children[ast.Block](d, f, "children")
		return n, err
	case ast.KindTable:
		n := &ast.Table{}
		for i, a := range f.list("alignments") {
			s, _ := a.(string)
			n.Alignments = append(n.Alignments, alignment(f, fmt.Sprintf("alignments[%d]", i), s))
		}
		if n.Header, err = single[*ast.TableRow](d, f, "header"); err != nil {
			return nil, err
		}
		if n.Rows, err = children[*ast.TableRow](d, f, "rows"); err != nil {
			return nil, err
		}
		n.Caption, err = children[ast.Inline](d, f, "caption")
		return n, err
	case ast.KindTableRow:
		n := &ast.TableRow{IsHeader: f.boolean("is_header")}
		n.Cells, err = children[*ast.TableCell](d, f, "cells")
		return n, err
	case ast.KindTableCell:
		n := &ast.TableCell{
			Alignment: alignment(f, "alignment", f.str("alignment")),
			ColSpan:   f.integer("col_span"),
			RowSpan:   f.integer("row_span"),
		}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindBlockQuote:
		n := &ast.BlockQuote{}
		n.Children, err = children[ast.Block](d, f, "children")
		return n, err
	case ast.KindCodeBlock:
		n := &ast.CodeBlock{Content: f.str("content"), Language: f.str("language"), FenceLength: f.integer("fence_length")}
		if fc := []rune(f.str("fence_char")); len(fc) > 0 {
			n.FenceChar = fc[0]
		}
		return n, nil
	case ast.KindThematicBreak:
		return &ast.ThematicBreak{}, nil
	case ast.KindHTMLBlock:
		return &ast.HTMLBlock{Content: f.str("content")}, nil
	case ast.KindDefinitionList:
		n := &ast.DefinitionList{}
		n.Items, err = children[*ast.DefinitionItem](d, f, "items")
		return n, err
	case ast.KindDefinitionItem:
		n := &ast.DefinitionItem{}
		if n.Term, err = single[*ast.DefinitionTerm](d, f, "term"); err != nil {
			return nil, err
		}
		n.Descriptions, err = children[*ast.DefinitionDescription](d, f, "descriptions")
		return n, err
	case ast.KindDefinitionTerm:
		n := &ast.DefinitionTerm{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindDefinitionDescription:
		n := &ast.DefinitionDescription{}
		n.Children, err = children[ast.Block](d, f, "children")
		return n, err
	case ast.KindFootnoteDefinition:
		n := &ast.FootnoteDefinition{Identifier: f.str("identifier")}
		n.Content, err = children[ast.Block](d, f, "content")
		return n, err
	case ast.KindMathBlock:
		return &ast.MathBlock{
			Content:         f.str("content"),
			Notation:        ast.Notation(f.str("notation")),
			Representations: representations(f),
		}, nil
	case ast.KindText:
		return &ast.Text{Content: f.str("content")}, nil
	case ast.KindEmphasis:
		n := &ast.Emphasis{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindStrong:
		n := &ast.Strong{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindUnderline:
		n := &ast.Underline{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindStrikethrough:
		n := &ast.Strikethrough{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindSubscript:
		n := &ast.Subscript{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindSuperscript:
		n := &ast.Superscript{}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindCode:
		return &ast.Code{Content: f.str("content")}, nil
	case ast.KindLink:
		n := &ast.Link{URL: f.str("url"), Title: f.str("title")}
		n.Content, err = children[ast.Inline](d, f, "content")
		return n, err
	case ast.KindImage:
		return &ast.Image{
			URL:     f.str("url"),
			AltText: f.str("alt_text"),
			Title:   f.str("title"),
			Width:   f.integer("width"),
			Height:  f.integer("height"),
		}, nil
	case ast.KindLineBreak:
		return &ast.LineBreak{Soft: f.boolean("soft")}, nil
	case ast.KindHTMLInline:
		return &ast.HTMLInline{Content: f.str("content")}, nil
	case ast.KindFootnoteReference:
		return &ast.FootnoteReference{Identifier: f.str("identifier")}, nil
	case ast.KindMathInline:
		return &ast.MathInline{
			Content:         f.str("content"),
			Notation:        ast.Notation(f.str("notation")),
			Representations: representations(f),
		}, nil
	}
	return nil, errors.Newf(errors.ErrInternal, "%s: no decoder for kind %s", f.path, kind)
}
