package config

import (
	"github.com/arthur-debert/docweave/pkg/render/engine"
	"github.com/arthur-debert/docweave/pkg/render/markdown"
	"github.com/arthur-debert/docweave/pkg/render/org"
	"github.com/arthur-debert/docweave/pkg/render/plaintext"
	"github.com/arthur-debert/docweave/pkg/render/templated"
	"github.com/arthur-debert/docweave/pkg/render/terminal"
	"github.com/arthur-debert/docweave/pkg/render/wiki"
)

// Config holds the options of every renderer plus the limits they share.
type Config struct {
	Markdown  markdown.Options  `koanf:"markdown"`
	Org       org.Options       `koanf:"org"`
	PlainText plaintext.Options `koanf:"plaintext"`
	Wiki      wiki.Options      `koanf:"wiki"`
	Template  templated.Options `koanf:"template"`
	Terminal  terminal.Options  `koanf:"terminal"`
	Limits    engine.Limits     `koanf:"limits"`
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	cfg := &Config{
		Markdown:  markdown.DefaultOptions(),
		Org:       org.DefaultOptions(),
		PlainText: plaintext.DefaultOptions(),
		Wiki:      wiki.DefaultOptions(),
		Template:  templated.DefaultOptions(),
		Terminal:  terminal.DefaultOptions(),
		Limits:    engine.Limits{MaxDepth: engine.DefaultMaxDepth},
	}
	cfg.propagate()
	return cfg
}

// propagate copies the shared settings into every renderer's options.
// Renderers that delegate to others receive those renderers' options.
func (c *Config) propagate() {
	c.Markdown.Limits = c.Limits
	c.Org.Limits = c.Limits
	c.PlainText.Limits = c.Limits
	c.Wiki.Limits = c.Limits
	c.Template.Limits = c.Limits
	c.Template.Markdown = c.Markdown
	c.Template.PlainText = c.PlainText
	c.Terminal.Markdown = c.Markdown
}
