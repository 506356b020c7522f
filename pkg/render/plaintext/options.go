package plaintext

import "github.com/arthur-debert/docweave/pkg/render/engine"

// Options configures a Renderer.
type Options struct {
	// MaxLineWidth wraps paragraphs at this many columns; 0 disables
	// wrapping. Lines containing a tab are never reflowed.
	MaxLineWidth        int    `koanf:"max_line_width"`
	ParagraphSeparator  string `koanf:"paragraph_separator"`
	ListIndentWidth     int    `koanf:"list_indent_width"`
	BulletSymbol        string `koanf:"bullet_symbol"`
	IncludeTableHeaders bool   `koanf:"include_table_headers"`
	TableCellSeparator  string `koanf:"table_cell_separator"`
	IncludeLinkURLs     bool   `koanf:"include_link_urls"`
	QuotePrefix         string `koanf:"quote_prefix"`
	IncludeHTML         bool   `koanf:"include_html"`
	// CodeIndent is the number of spaces code blocks are indented by.
	CodeIndent int `koanf:"code_indent"`

	Limits engine.Limits `koanf:"-"`
}

// DefaultOptions returns unwrapped output with link URLs and table headers.
func DefaultOptions() Options {
	return Options{
		ParagraphSeparator:  "\n\n",
		ListIndentWidth:     2,
		BulletSymbol:        "*",
		IncludeTableHeaders: true,
		TableCellSeparator:  " | ",
		IncludeLinkURLs:     true,
		QuotePrefix:         "  ",
	}
}

func (o Options) normalized() Options {
	if o.ParagraphSeparator == "" {
		o.ParagraphSeparator = "\n\n"
	}
	if o.ListIndentWidth < 0 {
		o.ListIndentWidth = 0
	}
	if o.MaxLineWidth < 0 {
		o.MaxLineWidth = 0
	}
	if o.CodeIndent < 0 {
		o.CodeIndent = 0
	}
	return o
}
