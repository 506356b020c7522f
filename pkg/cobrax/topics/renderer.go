package topics

import (
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render/terminal"
)

// Renderer formats topic content for display
type Renderer interface {
	// Render takes raw content and its file extension and returns the
	// formatted text.
	Render(content string, format string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// MarkdownRenderer styles .md topics for the terminal. Other formats are
// passed through.
type MarkdownRenderer struct {
	Options terminal.Options
}

// NewMarkdownRenderer returns a renderer using the terminal defaults.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Options: terminal.DefaultOptions()}
}

// Render styles Markdown content, falling back to the raw text if styling
// fails.
func (r *MarkdownRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}
	out, err := terminal.StyleMarkdown(content, r.Options)
	if err != nil {
		logger := logging.GetLogger("cobrax.topics")
		logger.Debug().Err(err).Msg("topic styling failed")
		return content
	}
	return out
}
