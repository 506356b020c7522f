package terminal_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
	"github.com/arthur-debert/docweave/pkg/render/terminal"
)

func sample() *ast.Document {
	return &ast.Document{Children: []ast.Block{
		&ast.Heading{Level: 1, Content: []ast.Inline{ast.T("Preview")}},
		&ast.Paragraph{Content: []ast.Inline{ast.T("Some "), &ast.Strong{Content: []ast.Inline{ast.T("bold")}}, ast.T(" text.")}},
	}}
}

func TestRenderNoTTY(t *testing.T) {
	opts := terminal.DefaultOptions()
	opts.Style = terminal.StyleNoTTY

	out, err := terminal.New(opts).Render(sample())
	require.NoError(t, err)
	assert.Contains(t, out, "Preview")
	assert.Contains(t, out, "bold")
	assert.NotContains(t, out, "\x1b[")
}

func TestFallsBackToMarkdown(t *testing.T) {
	opts := terminal.DefaultOptions()
	opts.Style = filepath.Join(t.TempDir(), "missing-style.json")

	out, err := terminal.New(opts).Render(sample())
	require.NoError(t, err)

	expected, err := markdown.New(markdown.DefaultOptions()).Render(sample())
	require.NoError(t, err)
	assert.Equal(t, expected, out)
}

func TestEmptyDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  *ast.Document
	}{
		{name: "nil", doc: nil},
		{name: "no children", doc: &ast.Document{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := terminal.New(terminal.DefaultOptions()).Render(tt.doc)
			require.NoError(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestDefaults(t *testing.T) {
	r := terminal.New(terminal.Options{WordWrap: -1})
	assert.Equal(t, terminal.StyleAuto, r.Options().Style)
	assert.Equal(t, 0, r.Options().WordWrap)
}

func TestStyleMarkdown(t *testing.T) {
	out, err := terminal.StyleMarkdown("# Topic\n\nplain words", terminal.Options{Style: terminal.StyleNoTTY, WordWrap: 40})
	require.NoError(t, err)
	assert.Contains(t, out, "Topic")
	assert.Contains(t, out, "plain words")
	assert.False(t, len(out) > 0 && out[len(out)-1] == '\n')

	_, err = terminal.StyleMarkdown("x", terminal.Options{Style: filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}
