package markdown

import (
	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/flavor"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

// InlineMode selects how inline features without a portable Markdown
// spelling (underline, superscript, subscript) are written.
type InlineMode string

// Inline modes.
const (
	InlineHTML     InlineMode = "html"
	InlineMarkdown InlineMode = "markdown"
	InlineIgnore   InlineMode = "ignore"
)

// FrontMatter selects the encoding of document metadata at the top of the
// output.
type FrontMatter string

// Front matter encodings.
const (
	FrontMatterNone FrontMatter = "none"
	FrontMatterYAML FrontMatter = "yaml"
	FrontMatterTOML FrontMatter = "toml"
)

// HTMLMode selects what happens to raw HTML nodes.
type HTMLMode string

// HTML modes.
const (
	HTMLPass   HTMLMode = "pass"
	HTMLEscape HTMLMode = "escape"
	HTMLDrop   HTMLMode = "drop"
)

// MathMode selects how math nodes are written.
type MathMode string

// Math modes.
const (
	// MathLaTeX writes $...$ and $$...$$ when the flavor supports math and
	// falls back to code otherwise.
	MathLaTeX MathMode = "latex"
	// MathCode always writes code spans and ```math fences.
	MathCode MathMode = "code"
	// MathHTML prefers HTML or MathML representations and passes them
	// through raw.
	MathHTML MathMode = "html"
)

// Options configures a Renderer.
type Options struct {
	Flavor                flavor.Flavor `koanf:"flavor"`
	EscapeSpecial         bool          `koanf:"escape_special"`
	EmphasisSymbol        string        `koanf:"emphasis_symbol"`
	BulletSymbols         string        `koanf:"bullet_symbols"`
	ListIndentWidth       int           `koanf:"list_indent_width"`
	UnderlineMode         InlineMode    `koanf:"underline_mode"`
	SuperscriptMode       InlineMode    `koanf:"superscript_mode"`
	SubscriptMode         InlineMode    `koanf:"subscript_mode"`
	UseHashHeadings       bool          `koanf:"use_hash_headings"`
	PreferSetextHeadings  bool          `koanf:"prefer_setext_headings"`
	TableAlignmentDefault string        `koanf:"table_alignment_default"`
	CodeFenceChar         string        `koanf:"code_fence_char"`
	CodeFenceMin          int           `koanf:"code_fence_min"`
	FrontMatter           FrontMatter   `koanf:"front_matter"`
	HTMLPassthrough       HTMLMode      `koanf:"html_passthrough"`
	MathMode              MathMode      `koanf:"math_mode"`

	Limits engine.Limits `koanf:"-"`
}

// DefaultOptions returns GFM output with hash headings and escaping on.
func DefaultOptions() Options {
	return Options{
		Flavor:                flavor.GFM,
		EscapeSpecial:         true,
		EmphasisSymbol:        "*",
		BulletSymbols:         "*-+",
		ListIndentWidth:       4,
		UnderlineMode:         InlineHTML,
		SuperscriptMode:       InlineHTML,
		SubscriptMode:         InlineHTML,
		UseHashHeadings:       true,
		TableAlignmentDefault: "none",
		CodeFenceChar:         "`",
		CodeFenceMin:          3,
		FrontMatter:           FrontMatterNone,
		HTMLPassthrough:       HTMLPass,
		MathMode:              MathLaTeX,
	}
}

// normalized fills invalid or empty fields with their defaults so a
// partially filled Options still renders.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Flavor == "" {
		o.Flavor = def.Flavor
	}
	if o.EmphasisSymbol != "*" && o.EmphasisSymbol != "_" {
		o.EmphasisSymbol = def.EmphasisSymbol
	}
	if o.BulletSymbols == "" {
		o.BulletSymbols = def.BulletSymbols
	}
	if o.ListIndentWidth < 0 {
		o.ListIndentWidth = 0
	}
	if o.CodeFenceChar != "`" && o.CodeFenceChar != "~" {
		o.CodeFenceChar = def.CodeFenceChar
	}
	if o.UnderlineMode == "" {
		o.UnderlineMode = def.UnderlineMode
	}
	if o.SuperscriptMode == "" {
		o.SuperscriptMode = def.SuperscriptMode
	}
	if o.SubscriptMode == "" {
		o.SubscriptMode = def.SubscriptMode
	}
	if o.FrontMatter == "" {
		o.FrontMatter = def.FrontMatter
	}
	if o.HTMLPassthrough == "" {
		o.HTMLPassthrough = def.HTMLPassthrough
	}
	if o.MathMode == "" {
		o.MathMode = def.MathMode
	}
	return o
}

func (o Options) defaultAlignment() ast.Alignment {
	a, _ := ast.ParseAlignment(o.TableAlignmentDefault)
	return a
}
