package org

import "github.com/arthur-debert/docweave/pkg/render/engine"

// Options configures a Renderer.
type Options struct {
	ListIndentWidth    int  `koanf:"list_indent_width"`
	PreserveTodo       bool `koanf:"preserve_todo"`
	PreserveTags       bool `koanf:"preserve_tags"`
	PreserveProperties bool `koanf:"preserve_properties"`
	IncludeKeywords    bool `koanf:"include_keywords"`

	Limits engine.Limits `koanf:"-"`
}

// DefaultOptions keeps every Org heading extension and writes document
// keywords.
func DefaultOptions() Options {
	return Options{
		ListIndentWidth:    2,
		PreserveTodo:       true,
		PreserveTags:       true,
		PreserveProperties: true,
		IncludeKeywords:    true,
	}
}

// keywords are the document metadata keys written as #+KEY: lines, in
// output order.
var keywords = []string{"title", "subtitle", "author", "email", "date", "language", "description", "keywords"}
