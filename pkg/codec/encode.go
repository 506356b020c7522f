// Package codec converts document trees to and from generic maps so they
// can travel as JSON or YAML. Every node becomes a map with a "kind" key
// holding its snake_case kind name; empty fields are omitted. Typed
// extensions of a document are written under an "extensions" key on the
// node they belong to.
package codec

import (
	"github.com/arthur-debert/docweave/pkg/ast"
)

// Field names shared by the encoder and decoder.
const (
	keyKind       = "kind"
	keyMeta       = "meta"
	keyExtensions = "extensions"
	extOrgHeading = "org_heading"
	extCell       = "notebook_cell"
)

// ToMap encodes n and its subtree. A nil node encodes to nil.
func ToMap(n ast.Node) map[string]any {
	if ast.IsNil(n) {
		return nil
	}
	var ext *ast.Extensions
	if doc, ok := n.(*ast.Document); ok {
		ext = doc.Extensions
	}
	return encoder{ext: ext}.node(n)
}

type encoder struct {
	ext *ast.Extensions
}

func (e encoder) node(n ast.Node) map[string]any {
	if ast.IsNil(n) {
		return nil
	}
	m := map[string]any{keyKind: string(n.Kind())}
	if meta := n.Meta(); len(meta) > 0 {
		out := make(map[string]any, len(meta))
		for k, v := range meta {
			out[k] = v
		}
		m[keyMeta] = out
	}
	if exts := e.extensions(n); len(exts) > 0 {
		m[keyExtensions] = exts
	}
	ast.Accept[map[string]any](n, e, m)
	return m
}

func (e encoder) extensions(n ast.Node) map[string]any {
	out := map[string]any{}
	if org, ok := ast.Lookup[ast.OrgHeading](e.ext, n); ok {
		entry := map[string]any{}
		setString(entry, "todo", org.Todo)
		setString(entry, "priority", org.Priority)
		if len(org.Tags) > 0 {
			tags := make([]any, len(org.Tags))
			for i, t := range org.Tags {
				tags[i] = t
			}
			entry["tags"] = tags
		}
		if len(org.Properties) > 0 {
			props := make(map[string]any, len(org.Properties))
			for k, v := range org.Properties {
				props[k] = v
			}
			entry["properties"] = props
		}
		out[extOrgHeading] = entry
	}
	if cell, ok := ast.Lookup[ast.NotebookCell](e.ext, n); ok {
		entry := map[string]any{"cell_type": cell.CellType}
		setInt(entry, "execution_count", cell.ExecutionCount)
		setString(entry, "source", cell.Source)
		out[extCell] = entry
	}
	return out
}

func setString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func setInt(m map[string]any, key string, v int) {
	if v != 0 {
		m[key] = v
	}
}

func setBool(m map[string]any, key string, v bool) {
	if v {
		m[key] = true
	}
}

func setBlocks(e encoder, m map[string]any, key string, blocks []ast.Block) {
	if len(blocks) == 0 {
		return
	}
	out := make([]any, len(blocks))
	for i, b := range blocks {
		out[i] = e.node(b)
	}
	m[key] = out
}

func setInlines(e encoder, m map[string]any, key string, inlines []ast.Inline) {
	if len(inlines) == 0 {
		return
	}
	out := make([]any, len(inlines))
	for i, n := range inlines {
		out[i] = e.node(n)
	}
	m[key] = out
}

func setNodes[T ast.Node](e encoder, m map[string]any, key string, nodes []T) {
	if len(nodes) == 0 {
		return
	}
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = e.node(n)
	}
	m[key] = out
}

func setMath(m map[string]any, content string, notation ast.Notation, reps map[ast.Notation]string) {
	setString(m, "content", content)
	setString(m, "notation", string(notation))
	if len(reps) > 0 {
		out := make(map[string]any, len(reps))
		for k, v := range reps {
			out[string(k)] = v
		}
		m["representations"] = out
	}
}

func (e encoder) VisitDocument(m map[string]any, n *ast.Document) {
	setBlocks(e, m, "children", n.Children)
}

func (e encoder) VisitHeading(m map[string]any, n *ast.Heading) {
	m["level"] = n.Level
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitParagraph(m map[string]any, n *ast.Paragraph) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitList(m map[string]any, n *ast.List) {
	setBool(m, "ordered", n.Ordered)
	setInt(m, "start", n.Start)
	setBool(m, "tight", n.Tight)
	setNodes(e, m, "items", n.Items)
}

func (e encoder) VisitListItem(m map[string]any, n *ast.ListItem) {
	setBlocks(e, m, "children", n.Children)
	if n.Task != ast.TaskNone {
		m["task"] = n.Task.String()
	}
}

func (e encoder) VisitTable(m map[string]any, n *ast.Table) {
	if n.Header != nil {
		m["header"] = e.node(n.Header)
	}
	setNodes(e, m, "rows", n.Rows)
	if len(n.Alignments) > 0 {
		aligns := make([]any, len(n.Alignments))
		for i, a := range n.Alignments {
			aligns[i] = a.String()
		}
		m["alignments"] = aligns
	}
	setInlines(e, m, "caption", n.Caption)
}

func (e encoder) VisitTableRow(m map[string]any, n *ast.TableRow) {
	setNodes(e, m, "cells", n.Cells)
	setBool(m, "is_header", n.IsHeader)
}

func (e encoder) VisitTableCell(m map[string]any, n *ast.TableCell) {
	setInlines(e, m, "content", n.Content)
	if n.Alignment != ast.AlignNone {
		m["alignment"] = n.Alignment.String()
	}
	setInt(m, "col_span", n.ColSpan)
	setInt(m, "row_span", n.RowSpan)
}

func (e encoder) VisitBlockQuote(m map[string]any, n *ast.BlockQuote) {
	setBlocks(e, m, "children", n.Children)
}

func (e encoder) VisitCodeBlock(m map[string]any, n *ast.CodeBlock) {
	setString(m, "content", n.Content)
	setString(m, "language", n.Language)
	if n.FenceChar != 0 {
		m["fence_char"] = string(n.FenceChar)
	}
	setInt(m, "fence_length", n.FenceLength)
}

func (e encoder) VisitThematicBreak(map[string]any, *ast.ThematicBreak) {}

func (e encoder) VisitHTMLBlock(m map[string]any, n *ast.HTMLBlock) {
	setString(m, "content", n.Content)
}

func (e encoder) VisitDefinitionList(m map[string]any, n *ast.DefinitionList) {
	setNodes(e, m, "items", n.Items)
}

func (e encoder) VisitDefinitionItem(m map[string]any, n *ast.DefinitionItem) {
	if n.Term != nil {
		m["term"] = e.node(n.Term)
	}
	setNodes(e, m, "descriptions", n.Descriptions)
}

func (e encoder) VisitDefinitionTerm(m map[string]any, n *ast.DefinitionTerm) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitDefinitionDescription(m map[string]any, n *ast.DefinitionDescription) {
	setBlocks(e, m, "children", n.Children)
}

func (e encoder) VisitFootnoteDefinition(m map[string]any, n *ast.FootnoteDefinition) {
	setString(m, "identifier", n.Identifier)
	setBlocks(e, m, "content", n.Content)
}

func (e encoder) VisitMathBlock(m map[string]any, n *ast.MathBlock) {
	setMath(m, n.Content, n.Notation, n.Representations)
}

func (e encoder) VisitText(m map[string]any, n *ast.Text) {
	setString(m, "content", n.Content)
}

func (e encoder) VisitEmphasis(m map[string]any, n *ast.Emphasis) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitStrong(m map[string]any, n *ast.Strong) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitUnderline(m map[string]any, n *ast.Underline) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitStrikethrough(m map[string]any, n *ast.Strikethrough) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitSubscript(m map[string]any, n *ast.Subscript) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitSuperscript(m map[string]any, n *ast.Superscript) {
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitCode(m map[string]any, n *ast.Code) {
	setString(m, "content", n.Content)
}

func (e encoder) VisitLink(m map[string]any, n *ast.Link) {
	setString(m, "url", n.URL)
	setString(m, "title", n.Title)
	setInlines(e, m, "content", n.Content)
}

func (e encoder) VisitImage(m map[string]any, n *ast.Image) {
	setString(m, "url", n.URL)
	setString(m, "alt_text", n.AltText)
	setString(m, "title", n.Title)
	setInt(m, "width", n.Width)
	setInt(m, "height", n.Height)
}

func (e encoder) VisitLineBreak(m map[string]any, n *ast.LineBreak) {
	setBool(m, "soft", n.Soft)
}

func (e encoder) VisitHTMLInline(m map[string]any, n *ast.HTMLInline) {
	setString(m, "content", n.Content)
}

func (e encoder) VisitFootnoteReference(m map[string]any, n *ast.FootnoteReference) {
	setString(m, "identifier", n.Identifier)
}

func (e encoder) VisitMathInline(m map[string]any, n *ast.MathInline) {
	setMath(m, n.Content, n.Notation, n.Representations)
}

var _ ast.Visitor[map[string]any] = encoder{}
