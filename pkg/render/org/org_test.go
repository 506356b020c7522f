package org_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/org"
)

func render(t *testing.T, opts org.Options, blocks ...ast.Block) string {
	t.Helper()
	out, err := org.New(opts).Render(&ast.Document{Children: blocks})
	require.NoError(t, err)
	return out
}

func para(content ...ast.Inline) *ast.Paragraph {
	return &ast.Paragraph{Content: content}
}

func TestHeadingExtensions(t *testing.T) {
	h := &ast.Heading{Level: 2, Content: []ast.Inline{ast.T("Ship it")}}
	h.SetMeta(ast.MetaOrgTodo, "TODO")
	h.SetMeta(ast.MetaOrgPriority, "A")
	h.SetMeta(ast.MetaOrgTags, []any{"work", "urgent"})
	h.SetMeta(ast.MetaOrgProperties, map[string]any{"EFFORT": "2h", "CATEGORY": "ops"})

	t.Run("metadata lifted into heading syntax", func(t *testing.T) {
		want := strings.Join([]string{
			"** TODO [#A] Ship it :work:urgent:",
			":PROPERTIES:",
			":CATEGORY: ops",
			":EFFORT: 2h",
			":END:",
		}, "\n")
		assert.Equal(t, want, render(t, org.DefaultOptions(), h))
	})

	t.Run("typed extension wins over metadata", func(t *testing.T) {
		plain := &ast.Heading{Level: 1, Content: []ast.Inline{ast.T("Typed")}}
		plain.SetMeta(ast.MetaOrgTodo, "TODO")
		ext := ast.NewExtensions()
		ext.Set(plain, ast.OrgHeading{Todo: "DONE", Tags: []string{"x"}})
		doc := &ast.Document{Children: []ast.Block{plain}, Extensions: ext}

		out, err := org.New(org.DefaultOptions()).Render(doc)
		require.NoError(t, err)
		assert.Equal(t, "* DONE Typed :x:", out)
	})

	t.Run("options switch parts off", func(t *testing.T) {
		opts := org.DefaultOptions()
		opts.PreserveTodo = false
		opts.PreserveTags = false
		opts.PreserveProperties = false
		assert.Equal(t, "** Ship it", render(t, opts, h))
	})
}

func TestDocumentKeywords(t *testing.T) {
	doc := &ast.Document{Children: []ast.Block{para(ast.T("body"))}}
	doc.SetMeta("title", "Notes")
	doc.SetMeta("author", "Ada")
	doc.SetMeta("unrelated", "x")

	out, err := org.New(org.DefaultOptions()).Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "#+TITLE: Notes\n#+AUTHOR: Ada\n\nbody", out)

	opts := org.DefaultOptions()
	opts.IncludeKeywords = false
	out, err = org.New(opts).Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "body", out)
}

func TestInlineMarkup(t *testing.T) {
	tests := []struct {
		name   string
		inline ast.Inline
		want   string
	}{
		{"emphasis", &ast.Emphasis{Content: []ast.Inline{ast.T("e")}}, "/e/"},
		{"strong", &ast.Strong{Content: []ast.Inline{ast.T("s")}}, "*s*"},
		{"underline", &ast.Underline{Content: []ast.Inline{ast.T("u")}}, "_u_"},
		{"strike", &ast.Strikethrough{Content: []ast.Inline{ast.T("x")}}, "+x+"},
		{"superscript", &ast.Superscript{Content: []ast.Inline{ast.T("2")}}, "^{2}"},
		{"subscript", &ast.Subscript{Content: []ast.Inline{ast.T("i")}}, "_{i}"},
		{"code", &ast.Code{Content: "x := 1"}, "~x := 1~"},
		{"code with tilde", &ast.Code{Content: "~/bin"}, "=~/bin="},
		{"link", &ast.Link{URL: "https://x.io", Content: []ast.Inline{ast.T("site")}}, "[[https://x.io][site]]"},
		{"bare link", &ast.Link{URL: "https://x.io"}, "[[https://x.io]]"},
		{"image", &ast.Image{URL: "a.png", AltText: "alt"}, "[[a.png]]"},
		{"hard break", &ast.LineBreak{}, "\\\\\n"},
		{"html", &ast.HTMLInline{Content: "<br>"}, "@@html:<br>@@"},
		{"footnote", &ast.FootnoteReference{Identifier: "n1"}, "[fn:n1]"},
		{"math", &ast.MathInline{Content: "x^2"}, `\(x^2\)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "a"+tt.want+"b", render(t, org.DefaultOptions(), para(ast.T("a"), tt.inline, ast.T("b"))))
		})
	}
}

func TestLists(t *testing.T) {
	list := &ast.List{Tight: true, Items: []*ast.ListItem{
		{Task: ast.TaskChecked, Children: []ast.Block{para(ast.T("done"))}},
		{Task: ast.TaskUnchecked, Children: []ast.Block{
			para(ast.T("todo")),
			&ast.List{Ordered: true, Tight: true, Items: []*ast.ListItem{
				{Children: []ast.Block{para(ast.T("step"))}},
			}},
		}},
	}}
	want := "- [X] done\n- [ ] todo\n  1. step"
	assert.Equal(t, want, render(t, org.DefaultOptions(), list))
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block ast.Block
		want  string
	}{
		{"src block", ast.NewCodeBlock("fmt.Println()\n", "go"), "#+BEGIN_SRC go\nfmt.Println()\n#+END_SRC"},
		{"example block", &ast.CodeBlock{Content: "* not a heading\n#+KEY"}, "#+BEGIN_EXAMPLE\n,* not a heading\n,#+KEY\n#+END_EXAMPLE"},
		{"quote", &ast.BlockQuote{Children: []ast.Block{para(ast.T("q"))}}, "#+BEGIN_QUOTE\nq\n#+END_QUOTE"},
		{"rule", &ast.ThematicBreak{}, "-----"},
		{"html", &ast.HTMLBlock{Content: "<div/>\n"}, "#+BEGIN_EXPORT html\n<div/>\n#+END_EXPORT"},
		{"math", &ast.MathBlock{Content: "a+b"}, "\\[\na+b\n\\]"},
		{
			"footnote",
			&ast.FootnoteDefinition{Identifier: "1", Content: []ast.Block{para(ast.T("Note."))}},
			"[fn:1] Note.",
		},
		{
			"definition list",
			&ast.DefinitionList{Items: []*ast.DefinitionItem{{
				Term:         &ast.DefinitionTerm{Content: []ast.Inline{ast.T("Go")}},
				Descriptions: []*ast.DefinitionDescription{{Children: []ast.Block{para(ast.T("A language"))}}},
			}}},
			"- Go :: A language",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, org.DefaultOptions(), tt.block))
		})
	}
}

func TestNotebookCellName(t *testing.T) {
	code := ast.NewCodeBlock("print(1)", "python")
	code.SetMeta(ast.MetaCellType, "code")
	code.SetMeta(ast.MetaExecutionCount, 7)
	assert.Equal(t, "#+NAME: cell-7\n#+BEGIN_SRC python\nprint(1)\n#+END_SRC", render(t, org.DefaultOptions(), code))
}

func TestTables(t *testing.T) {
	row := func(cells ...string) *ast.TableRow {
		r := &ast.TableRow{}
		for _, c := range cells {
			r.Cells = append(r.Cells, &ast.TableCell{Content: []ast.Inline{ast.T(c)}})
		}
		return r
	}

	t.Run("header separator", func(t *testing.T) {
		table := &ast.Table{Header: row("A", "B"), Rows: []*ast.TableRow{row("1", "22")}}
		want := "| A | B  |\n|---+----|\n| 1 | 22 |"
		assert.Equal(t, want, render(t, org.DefaultOptions(), table))
	})

	t.Run("caption and alignment cookies", func(t *testing.T) {
		table := &ast.Table{
			Header:     row("name", "n"),
			Alignments: []ast.Alignment{ast.AlignNone, ast.AlignRight},
			Caption:    []ast.Inline{ast.T("Counts")},
		}
		want := "#+CAPTION: Counts\n|      | <r> |\n| name | n   |\n|------+-----|"
		assert.Equal(t, want, render(t, org.DefaultOptions(), table))
	})

	t.Run("pipes replaced", func(t *testing.T) {
		table := &ast.Table{Rows: []*ast.TableRow{row("a|b")}}
		assert.Equal(t, `| a\vert{}b |`, render(t, org.DefaultOptions(), table))
	})

	t.Run("nil rows are skipped", func(t *testing.T) {
		table := &ast.Table{Rows: []*ast.TableRow{nil, row("1", "2")}}
		var out string
		require.NotPanics(t, func() { out = render(t, org.DefaultOptions(), table) })
		assert.Equal(t, "| 1 | 2 |", out)
	})

	t.Run("spanning header keeps every body column", func(t *testing.T) {
		header := &ast.TableRow{Cells: []*ast.TableCell{{Content: []ast.Inline{ast.T("H")}, ColSpan: 2}}}
		table := &ast.Table{Header: header, Rows: []*ast.TableRow{row("1", "2")}}
		assert.Equal(t, "| H |   |\n|---+---|\n| 1 | 2 |", render(t, org.DefaultOptions(), table))
	})
}
