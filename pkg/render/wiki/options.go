package wiki

import "github.com/arthur-debert/docweave/pkg/render/engine"

// Options configures a Renderer.
type Options struct {
	TableClass         string `koanf:"table_class"`
	UseSyntaxHighlight bool   `koanf:"use_syntax_highlight"`
	ImagePrefix        string `koanf:"image_prefix"`
	// EscapeSpecial wraps text that contains wiki markup in <nowiki>.
	EscapeSpecial bool `koanf:"escape_special"`

	Limits engine.Limits `koanf:"-"`
}

// DefaultOptions targets MediaWiki with syntax highlighting enabled.
func DefaultOptions() Options {
	return Options{
		TableClass:         "wikitable",
		UseSyntaxHighlight: true,
		ImagePrefix:        "File:",
		EscapeSpecial:      true,
	}
}
