package markdown_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/flavor"
	"github.com/arthur-debert/docweave/pkg/render/engine"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
)

func doc(blocks ...ast.Block) *ast.Document {
	return &ast.Document{Children: blocks}
}

func para(content ...ast.Inline) *ast.Paragraph {
	return &ast.Paragraph{Content: content}
}

func item(blocks ...ast.Block) *ast.ListItem {
	return &ast.ListItem{Children: blocks}
}

func row(cells ...string) *ast.TableRow {
	r := &ast.TableRow{}
	for _, c := range cells {
		r.Cells = append(r.Cells, &ast.TableCell{Content: []ast.Inline{ast.T(c)}})
	}
	return r
}

func render(t *testing.T, opts markdown.Options, d *ast.Document) string {
	t.Helper()
	out, err := markdown.New(opts).Render(d)
	require.NoError(t, err)
	return out
}

func convert(t *testing.T, opts markdown.Options, d *ast.Document) *engine.Result {
	t.Helper()
	res, err := markdown.New(opts).Convert(d)
	require.NoError(t, err)
	return res
}

func withFlavor(f flavor.Flavor) markdown.Options {
	opts := markdown.DefaultOptions()
	opts.Flavor = f
	return opts
}

func TestHeadings(t *testing.T) {
	title := &ast.Heading{Level: 1, Content: []ast.Inline{ast.T("Title")}}

	t.Run("hash heading", func(t *testing.T) {
		assert.Equal(t, "# Title", render(t, markdown.DefaultOptions(), doc(title)))
	})

	t.Run("setext when hash headings are off", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.UseHashHeadings = false
		assert.Equal(t, "Title\n=====", render(t, opts, doc(title)))
	})

	t.Run("prefer setext level two", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.PreferSetextHeadings = true
		h := &ast.Heading{Level: 2, Content: []ast.Inline{ast.T("Sub")}}
		assert.Equal(t, "Sub\n---", render(t, opts, doc(h)))
	})

	t.Run("setext never applies below level two", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.UseHashHeadings = false
		h := &ast.Heading{Level: 3, Content: []ast.Inline{ast.T("T")}}
		assert.Equal(t, "### T", render(t, opts, doc(h)))
	})

	t.Run("setext underline uses display width", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.UseHashHeadings = false
		h := &ast.Heading{Level: 1, Content: []ast.Inline{ast.T("日本")}}
		assert.Equal(t, "日本\n====", render(t, opts, doc(h)))
	})

	t.Run("every level emits exactly level hashes", func(t *testing.T) {
		for level := 1; level <= 6; level++ {
			h := &ast.Heading{Level: level, Content: []ast.Inline{ast.T("x")}}
			assert.Equal(t, strings.Repeat("#", level)+" x", render(t, markdown.DefaultOptions(), doc(h)))
		}
	})

	t.Run("out of range level is clamped and reported", func(t *testing.T) {
		h := &ast.Heading{Level: 9, Content: []ast.Inline{ast.T("x")}}
		res := convert(t, markdown.DefaultOptions(), doc(h))
		assert.Equal(t, "###### x", res.Output)
		assert.True(t, res.Report.Has(engine.DiagHeadingLevel))
	})
}

func TestLists(t *testing.T) {
	tests := []struct {
		name string
		list *ast.List
		want string
	}{
		{
			name: "tight bullets",
			list: &ast.List{Tight: true, Items: []*ast.ListItem{
				item(para(ast.T("a"))), item(para(ast.T("b"))), item(para(ast.T("c"))),
			}},
			want: "* a\n* b\n* c",
		},
		{
			name: "loose bullets",
			list: &ast.List{Items: []*ast.ListItem{item(para(ast.T("a"))), item(para(ast.T("b")))}},
			want: "* a\n\n* b",
		},
		{
			name: "ordered from start",
			list: &ast.List{Ordered: true, Start: 3, Tight: true, Items: []*ast.ListItem{
				item(para(ast.T("a"))), item(para(ast.T("b"))),
			}},
			want: "3. a\n4. b",
		},
		{
			name: "ordered zero start counts from one",
			list: &ast.List{Ordered: true, Tight: true, Items: []*ast.ListItem{item(para(ast.T("a")))}},
			want: "1. a",
		},
		{
			name: "empty item keeps marker",
			list: &ast.List{Tight: true, Items: []*ast.ListItem{item(), item(para(ast.T("b")))}},
			want: "*\n* b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, markdown.DefaultOptions(), doc(tt.list)))
		})
	}
}

func TestNestedListIndentation(t *testing.T) {
	inner := &ast.List{Tight: true, Items: []*ast.ListItem{
		item(para(ast.T("b")), ast.NewCodeBlock("x", "")),
	}}
	outer := &ast.List{Tight: true, Items: []*ast.ListItem{
		item(para(ast.T("a")), inner),
		item(para(ast.T("c"))),
	}}

	want := strings.Join([]string{
		"* a",
		"    - b",
		"        ```",
		"        x",
		"        ```",
		"* c",
	}, "\n")
	assert.Equal(t, want, render(t, markdown.DefaultOptions(), doc(outer)))

	t.Run("indent follows list indent width", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.ListIndentWidth = 2
		out := render(t, opts, doc(outer))
		assert.Contains(t, out, "\n  - b\n    ```\n    x\n")
	})
}

func TestTaskLists(t *testing.T) {
	list := &ast.List{Tight: true, Items: []*ast.ListItem{
		{Task: ast.TaskChecked, Children: []ast.Block{para(ast.T("done"))}},
		{Task: ast.TaskUnchecked, Children: []ast.Block{para(ast.T("todo"))}},
	}}

	assert.Equal(t, "* [x] done\n* [ ] todo", render(t, withFlavor(flavor.GFM), doc(list)))

	res := convert(t, withFlavor(flavor.CommonMark), doc(list))
	assert.Equal(t, "* done\n* todo", res.Output)
	assert.True(t, res.Report.Has(engine.DiagCapabilityFallback))
}

func TestBlockQuote(t *testing.T) {
	t.Run("every line prefixed", func(t *testing.T) {
		q := &ast.BlockQuote{Children: []ast.Block{
			para(ast.T("line one"), &ast.LineBreak{Soft: true}, ast.T("line two")),
		}}
		assert.Equal(t, "> line one\n> line two", render(t, markdown.DefaultOptions(), doc(q)))
	})

	t.Run("blank lines get bare marker", func(t *testing.T) {
		q := &ast.BlockQuote{Children: []ast.Block{para(ast.T("a")), para(ast.T("b"))}}
		assert.Equal(t, "> a\n>\n> b", render(t, markdown.DefaultOptions(), doc(q)))
	})

	t.Run("nested list and quote", func(t *testing.T) {
		q := &ast.BlockQuote{Children: []ast.Block{
			&ast.List{Tight: true, Items: []*ast.ListItem{item(para(ast.T("x"))), item(para(ast.T("y")))}},
			&ast.BlockQuote{Children: []ast.Block{para(ast.T("deep"))}},
		}}
		assert.Equal(t, "> * x\n> * y\n>\n> > deep", render(t, markdown.DefaultOptions(), doc(q)))
	})
}

func TestTables(t *testing.T) {
	t.Run("pipe table layout", func(t *testing.T) {
		table := &ast.Table{Header: row("A", "B"), Rows: []*ast.TableRow{row("1", "22")}}
		want := "| A | B  |\n|---|---|\n| 1 | 22 |"
		assert.Equal(t, want, render(t, withFlavor(flavor.GFM), doc(table)))
	})

	t.Run("alignment markers", func(t *testing.T) {
		table := &ast.Table{
			Header:     row("a", "b", "c"),
			Alignments: []ast.Alignment{ast.AlignLeft, ast.AlignCenter, ast.AlignRight},
		}
		out := render(t, markdown.DefaultOptions(), doc(table))
		assert.Equal(t, "| a | b | c |\n|:---|:---:|---:|", out)
	})

	t.Run("default alignment pads short alignment list", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.TableAlignmentDefault = "right"
		table := &ast.Table{Header: row("a", "b"), Alignments: []ast.Alignment{ast.AlignLeft}}
		out := render(t, opts, doc(table))
		assert.Equal(t, "| a | b |\n|:---|---:|", out)
	})

	t.Run("mismatched rows are padded and truncated", func(t *testing.T) {
		table := &ast.Table{Header: row("A", "B"), Rows: []*ast.TableRow{row("1"), row("1", "2", "3")}}
		res := convert(t, markdown.DefaultOptions(), doc(table))
		assert.Equal(t, "| A | B |\n|---|---|\n| 1 |   |\n| 1 | 2 |", res.Output)
		assert.Len(t, res.Report.Filter(engine.DiagTableShape), 2)

		for _, line := range strings.Split(res.Output, "\n") {
			assert.Equal(t, 3, strings.Count(line, "|"), line)
		}
	})

	t.Run("first row promoted without header", func(t *testing.T) {
		table := &ast.Table{Rows: []*ast.TableRow{row("h"), row("v")}}
		assert.Equal(t, "| h |\n|---|\n| v |", render(t, markdown.DefaultOptions(), doc(table)))
	})

	t.Run("pipes in cells are escaped", func(t *testing.T) {
		table := &ast.Table{Header: row("a|b")}
		assert.Equal(t, "| a\\|b |\n|----|", render(t, markdown.DefaultOptions(), doc(table)))
	})

	t.Run("caption", func(t *testing.T) {
		table := &ast.Table{Header: row("a"), Caption: []ast.Inline{ast.T("Totals")}}
		assert.Equal(t, "| a |\n|---|\n\nTable: Totals", render(t, markdown.DefaultOptions(), doc(table)))
	})

	t.Run("html fallback without table support", func(t *testing.T) {
		table := &ast.Table{
			Header:     row("A"),
			Rows:       []*ast.TableRow{row("1")},
			Alignments: []ast.Alignment{ast.AlignCenter},
		}
		res := convert(t, withFlavor(flavor.CommonMark), doc(table))
		assert.True(t, strings.HasPrefix(res.Output, "<table>"))
		assert.Contains(t, res.Output, `<th align="center">A</th>`)
		assert.Contains(t, res.Output, `<td align="center">1</td>`)
		assert.True(t, strings.HasSuffix(res.Output, "</table>"))
		assert.True(t, res.Report.Has(engine.DiagCapabilityFallback))
	})

	t.Run("nil rows are skipped", func(t *testing.T) {
		table := &ast.Table{Rows: []*ast.TableRow{nil, row("1", "2")}}
		var out string
		require.NotPanics(t, func() { out = render(t, markdown.DefaultOptions(), doc(table)) })
		assert.Equal(t, "| 1 | 2 |\n|---|---|", out)
	})

	t.Run("spanning header keeps every body column", func(t *testing.T) {
		header := &ast.TableRow{Cells: []*ast.TableCell{{Content: []ast.Inline{ast.T("H")}, ColSpan: 2}}}
		table := &ast.Table{Header: header, Rows: []*ast.TableRow{row("1", "2")}}
		res := convert(t, markdown.DefaultOptions(), doc(table))
		assert.Equal(t, "| H |   |\n|---|---|\n| 1 | 2 |", res.Output)
		assert.False(t, res.Report.Has(engine.DiagTableShape))
	})

	t.Run("spanning header in html fallback", func(t *testing.T) {
		header := &ast.TableRow{Cells: []*ast.TableCell{{Content: []ast.Inline{ast.T("H")}, ColSpan: 2}}}
		table := &ast.Table{Header: header, Rows: []*ast.TableRow{row("1", "2")}}
		res := convert(t, withFlavor(flavor.CommonMark), doc(table))
		assert.Contains(t, res.Output, `<th colspan="2">H</th>`)
		assert.Contains(t, res.Output, "<td>2</td>")
		assert.False(t, res.Report.Has(engine.DiagTableShape))
	})
}

func TestInlineMarkup(t *testing.T) {
	tests := []struct {
		name   string
		opts   func(*markdown.Options)
		inline ast.Inline
		want   string
	}{
		{"emphasis", nil, &ast.Emphasis{Content: []ast.Inline{ast.T("e")}}, "*e*"},
		{"underscore emphasis", func(o *markdown.Options) { o.EmphasisSymbol = "_" }, &ast.Strong{Content: []ast.Inline{ast.T("s")}}, "__s__"},
		{"nested", nil, &ast.Strong{Content: []ast.Inline{&ast.Emphasis{Content: []ast.Inline{&ast.Code{Content: "c"}}}}}, "***`c`***"},
		{"escaped text", nil, ast.T("a*b_c#"), `a\*b\_c\#`},
		{"unescaped text", func(o *markdown.Options) { o.EscapeSpecial = false }, ast.T("a*b"), "a*b"},
		{"code with backtick", nil, &ast.Code{Content: "a`b"}, "``a`b``"},
		{"code starting with backtick", nil, &ast.Code{Content: "`x"}, "`` `x ``"},
		{"strikethrough", nil, &ast.Strikethrough{Content: []ast.Inline{ast.T("old")}}, "~~old~~"},
		{"underline html", nil, &ast.Underline{Content: []ast.Inline{ast.T("u")}}, "<u>u</u>"},
		{"underline markdown", func(o *markdown.Options) { o.UnderlineMode = markdown.InlineMarkdown }, &ast.Underline{Content: []ast.Inline{ast.T("u")}}, "__u__"},
		{"underline ignored", func(o *markdown.Options) { o.UnderlineMode = markdown.InlineIgnore }, &ast.Underline{Content: []ast.Inline{ast.T("u")}}, "u"},
		{"superscript", nil, &ast.Superscript{Content: []ast.Inline{ast.T("2")}}, "<sup>2</sup>"},
		{"subscript markdown", func(o *markdown.Options) { o.SubscriptMode = markdown.InlineMarkdown }, &ast.Subscript{Content: []ast.Inline{ast.T("2")}}, "~2~"},
		{"link", nil, &ast.Link{URL: "https://x.io", Content: []ast.Inline{ast.T("site")}}, "[site](https://x.io)"},
		{"link with title", nil, &ast.Link{URL: "/a", Title: `say "hi"`, Content: []ast.Inline{ast.T("a")}}, `[a](/a "say \"hi\"")`},
		{"autolink", nil, &ast.Link{URL: "https://x.io", Content: []ast.Inline{ast.T("https://x.io")}}, "<https://x.io>"},
		{"link with spaces", nil, &ast.Link{URL: "a b.md", Content: []ast.Inline{ast.T("f")}}, "[f](<a b.md>)"},
		{"image", nil, &ast.Image{URL: "i.png", AltText: "a [b]", Title: "T"}, `![a \[b\]](i.png "T")`},
		{"hard break", nil, &ast.LineBreak{}, "\\\n"},
		{"html inline", nil, &ast.HTMLInline{Content: "<kbd>"}, "<kbd>"},
		{"html escaped", func(o *markdown.Options) { o.HTMLPassthrough = markdown.HTMLEscape }, &ast.HTMLInline{Content: "<kbd>"}, "&lt;kbd&gt;"},
		{"footnote reference", nil, &ast.FootnoteReference{Identifier: "1"}, "[^1]"},
		{"math falls back to code", nil, &ast.MathInline{Content: "x^2"}, "`x^2`"},
		{"math native", func(o *markdown.Options) { o.Flavor = flavor.MarkdownPlus }, &ast.MathInline{Content: "x^2"}, "$x^2$"},
		{
			"math html representation",
			func(o *markdown.Options) { o.MathMode = markdown.MathHTML },
			&ast.MathInline{Content: "x", Representations: map[ast.Notation]string{ast.NotationMathML: "<math><mi>x</mi></math>"}},
			"<math><mi>x</mi></math>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := markdown.DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			got := render(t, opts, doc(para(ast.T("<"), tt.inline, ast.T(">"))))
			assert.Equal(t, "<"+tt.want+">", got)
		})
	}
}

func TestCapabilityFallbacks(t *testing.T) {
	t.Run("strikethrough becomes del", func(t *testing.T) {
		d := doc(para(&ast.Strikethrough{Content: []ast.Inline{ast.T("gone")}}))
		res := convert(t, withFlavor(flavor.CommonMark), d)
		assert.Equal(t, "<del>gone</del>", res.Output)
		assert.True(t, res.Report.Has(engine.DiagCapabilityFallback))
	})

	t.Run("footnotes", func(t *testing.T) {
		d := doc(
			para(ast.T("See"), &ast.FootnoteReference{Identifier: "1"}),
			&ast.FootnoteDefinition{Identifier: "1", Content: []ast.Block{para(ast.T("Note.")), para(ast.T("More."))}},
		)
		assert.Equal(t, "See[^1]\n\n[^1]: Note.\n\n    More.", render(t, withFlavor(flavor.GFM), d))
		assert.Equal(t, "See<sup>1</sup>\n\n<sup>1</sup> Note.\n\n    More.", render(t, withFlavor(flavor.CommonMark), d))
	})

	t.Run("definition lists", func(t *testing.T) {
		d := doc(&ast.DefinitionList{Items: []*ast.DefinitionItem{{
			Term:         &ast.DefinitionTerm{Content: []ast.Inline{ast.T("Go")}},
			Descriptions: []*ast.DefinitionDescription{{Children: []ast.Block{para(ast.T("A language"))}}},
		}}})
		assert.Equal(t, "Go\n: A language", render(t, withFlavor(flavor.MarkdownPlus), d))
		assert.Equal(t, "**Go**\nA language", render(t, withFlavor(flavor.CommonMark), d))
	})

	t.Run("math block", func(t *testing.T) {
		d := doc(&ast.MathBlock{Content: "a+b", Notation: ast.NotationLaTeX})
		assert.Equal(t, "$$\na+b\n$$", render(t, withFlavor(flavor.Pandoc), d))
		assert.Equal(t, "```math\na+b\n```", render(t, withFlavor(flavor.GFM), d))
	})
}

func TestCodeBlocks(t *testing.T) {
	t.Run("language and trailing newline", func(t *testing.T) {
		d := doc(ast.NewCodeBlock("fmt.Println()\n", "go"))
		assert.Equal(t, "```go\nfmt.Println()\n```", render(t, markdown.DefaultOptions(), d))
	})

	t.Run("fence outgrows content", func(t *testing.T) {
		d := doc(&ast.CodeBlock{Content: "```\ninner\n```", FenceChar: '`', FenceLength: 3})
		assert.Equal(t, "````\n```\ninner\n```\n````", render(t, markdown.DefaultOptions(), d))
	})

	t.Run("tilde fence from options", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.CodeFenceChar = "~"
		d := doc(&ast.CodeBlock{Content: "x"})
		assert.Equal(t, "~~~\nx\n~~~", render(t, opts, d))
	})
}

func TestFrontMatter(t *testing.T) {
	d := doc(&ast.Heading{Level: 1, Content: []ast.Inline{ast.T("Doc")}})
	d.SetMeta("title", "Doc")

	t.Run("none by default", func(t *testing.T) {
		assert.Equal(t, "# Doc", render(t, markdown.DefaultOptions(), d))
	})

	t.Run("yaml", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.FrontMatter = markdown.FrontMatterYAML
		assert.Equal(t, "---\ntitle: Doc\n---\n\n# Doc", render(t, opts, d))
	})

	t.Run("toml", func(t *testing.T) {
		opts := markdown.DefaultOptions()
		opts.FrontMatter = markdown.FrontMatterTOML
		out := render(t, opts, d)
		assert.True(t, strings.HasPrefix(out, "+++\ntitle = "))
		assert.Contains(t, out, "Doc")
		assert.True(t, strings.HasSuffix(out, "+++\n\n# Doc"))
	})
}

func TestEmptyDocuments(t *testing.T) {
	r := markdown.New(markdown.DefaultOptions())

	out, err := r.Render(&ast.Document{})
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = r.Render(doc(&ast.Paragraph{}))
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = r.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestThematicBreakAndHTMLBlock(t *testing.T) {
	d := doc(para(ast.T("a")), &ast.ThematicBreak{}, &ast.HTMLBlock{Content: "<div>x</div>\n"})
	assert.Equal(t, "a\n\n---\n\n<div>x</div>", render(t, markdown.DefaultOptions(), d))

	opts := markdown.DefaultOptions()
	opts.HTMLPassthrough = markdown.HTMLDrop
	res := convert(t, opts, d)
	assert.Equal(t, "a\n\n---", res.Output)
	assert.True(t, res.Report.Has(engine.DiagDropped))
}

func TestDepthLimit(t *testing.T) {
	var b ast.Block = para(ast.T("x"))
	for i := 0; i < 40; i++ {
		b = &ast.BlockQuote{Children: []ast.Block{b}}
	}
	opts := markdown.DefaultOptions()
	opts.Limits = engine.Limits{MaxDepth: 10}

	res := convert(t, opts, doc(b))
	assert.True(t, res.Report.Has(engine.DiagDepthLimit))
	assert.NotContains(t, res.Output, "x")
}

func sampleDocument() *ast.Document {
	return doc(
		&ast.Heading{Level: 1, Content: []ast.Inline{ast.T("Report")}},
		para(ast.T("Intro with "), &ast.Strong{Content: []ast.Inline{ast.T("bold")}}, ast.T(".")),
		&ast.List{Tight: true, Items: []*ast.ListItem{item(para(ast.T("one"))), item(para(ast.T("two")))}},
		&ast.Table{Header: row("k", "v"), Rows: []*ast.TableRow{row("a", "1")}},
		&ast.BlockQuote{Children: []ast.Block{para(ast.T("quoted"))}},
	)
}

func TestDeterministicAndShareable(t *testing.T) {
	r := markdown.New(markdown.DefaultOptions())
	d := sampleDocument()

	first, err := r.Render(d)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Render(d)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, first, got)
	}
	assert.Equal(t, first, engine.Cleanup(first))
}

func TestRenderTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, markdown.New(markdown.DefaultOptions()).RenderTo(&buf, sampleDocument()))
	assert.True(t, strings.HasPrefix(buf.String(), "# Report\n\nIntro with **bold**."))
}

func TestRenderIsQuietWithoutLoggerSetup(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = saved }()

	table := &ast.Table{Header: row("A"), Rows: []*ast.TableRow{row("1", "2")}}
	res := convert(t, markdown.DefaultOptions(), doc(table))
	assert.True(t, res.Report.Has(engine.DiagTableShape))
	assert.Empty(t, buf.String())
}
