package templated

import (
	_ "embed"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/docweave/pkg/errors"
)

// ColorDef is an adaptive color definition.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a named style in a style sheet.
type StyleDef struct {
	Bold          bool   `yaml:"bold,omitempty"`
	Italic        bool   `yaml:"italic,omitempty"`
	Underline     bool   `yaml:"underline,omitempty"`
	Strikethrough bool   `yaml:"strikethrough,omitempty"`
	Foreground    string `yaml:"foreground,omitempty"`
	Background    string `yaml:"background,omitempty"`
	PaddingLeft   int    `yaml:"paddingLeft,omitempty"`
	PaddingRight  int    `yaml:"paddingRight,omitempty"`
}

// StyleSheetConfig is the YAML form of a style sheet.
type StyleSheetConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleSheet maps style names usable from templates to lipgloss styles.
type StyleSheet struct {
	styles map[string]lipgloss.Style
}

//go:embed styles.yaml
var embeddedStyles []byte

// DefaultStyleSheet returns the built-in style sheet.
func DefaultStyleSheet() *StyleSheet {
	sheet, err := ParseStyleSheet(embeddedStyles)
	if err != nil {
		return &StyleSheet{styles: map[string]lipgloss.Style{}}
	}
	return sheet
}

// LoadStyleSheet reads a YAML style sheet from path.
func LoadStyleSheet(path string) (*StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read style sheet %s", path)
	}
	return ParseStyleSheet(data)
}

// ParseStyleSheet builds a style sheet from YAML. Style colors refer to
// entries of the colors section by name.
func ParseStyleSheet(data []byte) (*StyleSheet, error) {
	var cfg StyleSheetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse style sheet")
	}
	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	sheet := &StyleSheet{styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		sheet.styles[name] = buildStyle(def, colors)
	}
	return sheet, nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline).
		Strikethrough(def.Strikethrough)
	if c, ok := colors[def.Foreground]; ok {
		style = style.Foreground(c)
	}
	if c, ok := colors[def.Background]; ok {
		style = style.Background(c)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}
	return style
}

// Has reports whether name is defined.
func (s *StyleSheet) Has(name string) bool {
	_, ok := s.styles[name]
	return ok
}

// Render applies the named style to text. Unknown names return text
// unchanged.
func (s *StyleSheet) Render(name, text string) string {
	style, ok := s.styles[name]
	if !ok {
		return text
	}
	return style.Render(text)
}
