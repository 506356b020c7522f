package templated_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/render/engine"
	"github.com/arthur-debert/docweave/pkg/render/templated"
)

func heading(level int, text string) *ast.Heading {
	return &ast.Heading{Level: level, Content: []ast.Inline{ast.T(text)}}
}

func sample() *ast.Document {
	d := &ast.Document{Children: []ast.Block{
		heading(1, "Guide"),
		&ast.Paragraph{Content: []ast.Inline{
			ast.T("See "),
			&ast.Link{URL: "https://a.example", Title: "A", Content: []ast.Inline{ast.T("the site")}},
			ast.T(" and "),
			&ast.Image{URL: "logo.png", AltText: "logo", Width: 20},
			&ast.FootnoteReference{Identifier: "n1"},
		}},
		heading(2, "Install"),
		&ast.FootnoteDefinition{Identifier: "n1", Content: []ast.Block{
			&ast.Paragraph{Content: []ast.Inline{ast.T("A note.")}},
		}},
	}}
	d.SetMeta("title", "Guide")
	return d
}

func render(t *testing.T, opts templated.Options, d *ast.Document) string {
	t.Helper()
	r, err := templated.New(opts)
	require.NoError(t, err)
	out, err := r.Render(d)
	require.NoError(t, err)
	return out
}

func TestHelpers(t *testing.T) {
	d := sample()

	assert.Equal(t, []templated.HeadingInfo{{Level: 1, Text: "Guide"}, {Level: 2, Text: "Install"}}, templated.Headings(d))
	assert.Equal(t, []templated.LinkInfo{{URL: "https://a.example", Title: "A", Text: "the site"}}, templated.Links(d))
	assert.Equal(t, []templated.ImageInfo{{URL: "logo.png", AltText: "logo", Width: 20}}, templated.Images(d))

	notes := templated.Footnotes(d)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].Identifier)

	t.Run("nodes of kind", func(t *testing.T) {
		nodes, err := templated.NodesOfKind(d, "heading")
		require.NoError(t, err)
		assert.Len(t, nodes, 2)

		nodes, err = templated.NodesOfKind(d, "FootnoteReference")
		require.NoError(t, err)
		assert.Len(t, nodes, 1)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := templated.NodesOfKind(d, "sidebar")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownKind))
	})

	t.Run("nil document", func(t *testing.T) {
		assert.Empty(t, templated.Headings(nil))
	})
}

func TestIndexDepthLimit(t *testing.T) {
	var inner ast.Inline = ast.T("deep")
	for i := 0; i < 10; i++ {
		inner = &ast.Emphasis{Content: []ast.Inline{inner}}
	}
	d := &ast.Document{Children: []ast.Block{&ast.Paragraph{Content: []ast.Inline{inner}}}}

	ix := templated.NewIndex(d, engine.Limits{MaxDepth: 4})
	assert.Empty(t, ix.Nodes(ast.KindText))
	assert.Len(t, ix.Nodes(ast.KindEmphasis), 2)
}

func TestBuiltinTemplates(t *testing.T) {
	assert.Equal(t, []string{"outline", "summary"}, templated.BuiltinTemplates())

	t.Run("outline", func(t *testing.T) {
		out := render(t, templated.DefaultOptions(), sample())
		assert.Equal(t, "- Guide\n  - Install", out)
	})

	t.Run("summary", func(t *testing.T) {
		opts := templated.DefaultOptions()
		opts.Name = "summary"
		opts.NoColor = true
		out := render(t, opts, sample())
		assert.Equal(t, "Guide\n\nheadings:  2\nlinks:     1\nimages:    0\nfootnotes: 1\n  https://a.example", out)
	})

	t.Run("unknown name", func(t *testing.T) {
		opts := templated.DefaultOptions()
		opts.Name = "nope"
		_, err := templated.New(opts)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))
	})
}

func TestInlineTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		escape   templated.EscapeMode
		expected string
	}{
		{
			name:     "title and count",
			template: "{{.Title}}: {{len .Index.Headings}}",
			expected: "Guide: 2",
		},
		{
			name:     "nodes and text",
			template: `{{range nodes .Document "link"}}{{text .}}{{end}}`,
			expected: "the site",
		},
		{
			name:     "markdown of a subtree",
			template: `{{range nodes .Document "heading"}}{{markdown .}}|{{end}}`,
			expected: "# Guide|## Install|",
		},
		{
			name:     "plaintext of a subtree",
			template: `{{with index (nodes .Document "paragraph") 0}}{{plaintext .}}{{end}}`,
			expected: "See the site (https://a.example) and logo[n1]",
		},
		{
			name:     "escape html",
			template: `{{escape "<b>&"}}`,
			escape:   templated.EscapeHTML,
			expected: "&lt;b&gt;&amp;",
		},
		{
			name:     "escape markdown",
			template: `{{escape "*a*"}}`,
			escape:   templated.EscapeMarkdown,
			expected: `\*a\*`,
		},
		{
			name:     "escape none",
			template: `{{escape "*a*"}}`,
			expected: "*a*",
		},
		{
			name:     "metadata",
			template: `{{index .Metadata "title"}}`,
			expected: "Guide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := templated.DefaultOptions()
			opts.Template = tt.template
			opts.Escape = tt.escape
			assert.Equal(t, tt.expected, render(t, opts, sample()))
		})
	}
}

func TestTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toc.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{range headings .Document}}{{repeat \"#\" .Level}} {{.Text}}\n{{end}}"), 0o644))

	opts := templated.DefaultOptions()
	opts.TemplateFile = path
	assert.Equal(t, "# Guide\n## Install", render(t, opts, sample()))

	t.Run("inline wins over file", func(t *testing.T) {
		opts.Template = "inline"
		assert.Equal(t, "inline", render(t, opts, sample()))
	})

	t.Run("missing file", func(t *testing.T) {
		opts := templated.DefaultOptions()
		opts.TemplateFile = filepath.Join(t.TempDir(), "missing.tmpl")
		_, err := templated.New(opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))
	})
}

func TestTemplateErrors(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		opts := templated.DefaultOptions()
		opts.Template = "{{range}}"
		_, err := templated.New(opts)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))
	})

	t.Run("execute", func(t *testing.T) {
		opts := templated.DefaultOptions()
		opts.Template = `{{nodes .Document "sidebar"}}`
		r, err := templated.New(opts)
		require.NoError(t, err)
		_, err = r.Render(sample())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateExecute))
	})
}

func TestTrimOutput(t *testing.T) {
	opts := templated.DefaultOptions()
	opts.Template = "\n  body  \n"
	assert.Equal(t, "body", render(t, opts, sample()))

	opts.TrimOutput = false
	assert.Equal(t, "\n  body  \n", render(t, opts, sample()))
}

func TestStyleSheet(t *testing.T) {
	sheet, err := templated.ParseStyleSheet([]byte("colors:\n  a:\n    light: \"#000000\"\n    dark: \"#ffffff\"\nstyles:\n  Strong:\n    bold: true\n    foreground: a\n"))
	require.NoError(t, err)
	assert.True(t, sheet.Has("Strong"))
	assert.Equal(t, "plain", sheet.Render("Missing", "plain"))
	assert.Contains(t, sheet.Render("Strong", "x"), "x")

	_, err = templated.ParseStyleSheet([]byte("styles: [unclosed"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	assert.True(t, templated.DefaultStyleSheet().Has("Heading"))
}

func TestNoColorStripsStyles(t *testing.T) {
	opts := templated.DefaultOptions()
	opts.Template = `{{style "Heading" "x"}}`
	opts.NoColor = true
	out := render(t, opts, sample())
	assert.Equal(t, "x", out)
	assert.False(t, strings.Contains(out, "\x1b["))
}

func TestRenderToAndNilDocument(t *testing.T) {
	r, err := templated.New(templated.DefaultOptions())
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, r.RenderTo(&sb, sample()))
	assert.Equal(t, "- Guide\n  - Install", sb.String())

	out, err := r.Render(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
