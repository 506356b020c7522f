package templated

import (
	"github.com/arthur-debert/docweave/pkg/render/engine"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
	"github.com/arthur-debert/docweave/pkg/render/plaintext"
)

// EscapeMode selects how the escape template function treats text.
type EscapeMode string

const (
	EscapeNone     EscapeMode = "none"
	EscapeHTML     EscapeMode = "html"
	EscapeMarkdown EscapeMode = "markdown"
)

// IsValid reports whether m is a known escape mode.
func (m EscapeMode) IsValid() bool {
	switch m {
	case EscapeNone, EscapeHTML, EscapeMarkdown:
		return true
	}
	return false
}

// Options configures the template renderer. Template takes precedence over
// TemplateFile, which takes precedence over the embedded template Name.
type Options struct {
	Template     string     `koanf:"template"`
	TemplateFile string     `koanf:"template_file"`
	Name         string     `koanf:"name"`
	Escape       EscapeMode `koanf:"escape"`
	TrimOutput   bool       `koanf:"trim_output"`
	NoColor      bool       `koanf:"no_color"`
	StylesFile   string     `koanf:"styles_file"`

	Limits    engine.Limits     `koanf:"-"`
	Markdown  markdown.Options  `koanf:"-"`
	PlainText plaintext.Options `koanf:"-"`
}

// DefaultOptions returns the built-in outline template configuration.
func DefaultOptions() Options {
	return Options{
		Name:       "outline",
		Escape:     EscapeNone,
		TrimOutput: true,
		Limits:     engine.Limits{MaxDepth: engine.DefaultMaxDepth},
		Markdown:   markdown.DefaultOptions(),
		PlainText:  plaintext.DefaultOptions(),
	}
}

func (o Options) normalized() Options {
	if o.Name == "" && o.Template == "" && o.TemplateFile == "" {
		o.Name = "outline"
	}
	if !o.Escape.IsValid() {
		o.Escape = EscapeNone
	}
	if o.Limits.MaxDepth <= 0 {
		o.Limits.MaxDepth = engine.DefaultMaxDepth
	}
	o.Markdown.Limits = o.Limits
	o.PlainText.Limits = o.Limits
	return o
}
