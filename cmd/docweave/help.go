package docweave

import (
	"embed"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/docweave/pkg/cobrax/topics"
	"github.com/arthur-debert/docweave/pkg/render"
)

//go:embed topics
var topicFiles embed.FS

// initHelpTopics installs the topic-aware help command. Markdown topics are
// styled only when standard output can show a preview.
func initHelpTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Debug().Err(err).Msg("help topics unavailable")
		return
	}

	opts := topics.Options{Renderer: &topics.PlainRenderer{}}
	if render.DetectPreview(os.Stdout) {
		opts.Renderer = topics.NewMarkdownRenderer()
	}
	if _, err := topics.Initialize(rootCmd, sub, opts); err != nil {
		log.Debug().Err(err).Msg("help topics unavailable")
	}
}
