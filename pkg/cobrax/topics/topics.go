// Package topics provides a topic-based help system for Cobra CLI applications.
// It extends the default Cobra help command with free-form topics loaded
// from a file system, usually one embedded in the binary.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/logging"
)

const optionPrefix = "option-"

// Manager holds the help topics for a Cobra application
type Manager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	extensions   []string
	renderer     Renderer
	originalHelp func(*cobra.Command, []string)
}

// Topic is a single help topic
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Format returns the topic file extension, which renderers use to decide
// how to present the content.
func (t *Topic) Format() string {
	return path.Ext(t.Path)
}

// Options configures the Manager
type Options struct {
	// Extensions lists the file extensions considered topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New creates a Manager reading topics from fsys. Call Load before use.
func New(fsys fs.FS, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	return m
}

// Load walks the file system and registers every file with a supported
// extension. Topics are named after the file without its extension;
// subdirectories are flattened.
func (m *Manager) Load() error {
	logger := logging.GetLogger("cobrax.topics")
	if m.fsys == nil {
		return nil
	}

	err := fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !slices.Contains(m.extensions, ext) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to load help topics")
	}

	logger.Debug().Int("count", len(m.topics)).Msg("help topics loaded")
	return nil
}

// GetTopic looks a topic up by name. Flag-style names such as --width also
// match a topic called option-width.
func (m *Manager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics[optionPrefix+name]
	return topic, ok
}

// ListTopics returns the sorted topic names.
func (m *Manager) ListTopics() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render returns the topic formatted by the configured renderer.
func (m *Manager) Render(topic *Topic) string {
	out := m.renderer.Render(topic.Content, topic.Format())
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// WriteIndex lists the available topics, splitting option topics from
// general ones.
func (m *Manager) WriteIndex(w io.Writer, appName string) {
	names := m.ListTopics()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, optionPrefix); ok {
			options = append(options, opt)
		} else {
			general = append(general, name)
		}
	}

	_, _ = fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		_, _ = fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			_, _ = fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		_, _ = fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			_, _ = fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	_, _ = fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
}

// Initialize loads topics from fsys and replaces the help command of
// rootCmd with one that also understands topics.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*Manager, error) {
	m := New(fsys, opts)
	if err := m.Load(); err != nil {
		return nil, err
	}
	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(rootCmd, []string{})
				return
			}
			if args[0] == "topics" {
				m.WriteIndex(cmd.OutOrStdout(), rootCmd.Name())
				return
			}
			if topic, ok := m.GetTopic(args[0]); ok {
				_, _ = io.WriteString(cmd.OutOrStdout(), m.Render(topic))
				return
			}

			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unknown help topic %q\n", args[0])
				m.originalHelp(rootCmd, []string{})
				return
			}
			m.originalHelp(target, []string{})
		},
	}

	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			rootCmd.RemoveCommand(c)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)

	return m, nil
}
