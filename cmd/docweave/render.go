package docweave

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/codec"
	"github.com/arthur-debert/docweave/pkg/config"
	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/logging"
	"github.com/arthur-debert/docweave/pkg/render"
)

type renderOptions struct {
	configPath   string
	format       string
	inputFormat  string
	flavor       string
	template     string
	templateFile string
	width        int
	set          []string
	diagnostics  bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:     "render [FILE]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runRender(cmd, opts, input)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	flags.StringVarP(&opts.inputFormat, "input-format", "i", "", MsgFlagInputFormat)
	flags.StringVar(&opts.flavor, "flavor", "", MsgFlagFlavor)
	flags.StringVarP(&opts.template, "template", "t", "", MsgFlagTemplate)
	flags.StringVar(&opts.templateFile, "template-file", "", MsgFlagTemplateFile)
	flags.IntVarP(&opts.width, "width", "w", 0, MsgFlagWidth)
	flags.StringArrayVar(&opts.set, "set", nil, MsgFlagSet)
	flags.BoolVar(&opts.diagnostics, "diagnostics", false, MsgFlagDiagnostics)

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range render.Formats() {
			names = append(names, f.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// overrides turns the flags into dotted config keys. Flags win over every
// config layer.
func (o *renderOptions) overrides() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	for _, kv := range o.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.Contains(key, ".") {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadSet, kv)
		}
		out[strings.TrimSpace(key)] = value
	}
	if o.flavor != "" {
		out["markdown.flavor"] = o.flavor
	}
	if o.template != "" {
		out["template.template"] = o.template
	}
	if o.templateFile != "" {
		out["template.template_file"] = o.templateFile
	}
	if o.width > 0 {
		out["plaintext.max_line_width"] = o.width
		out["terminal.word_wrap"] = o.width
	}
	return out, nil
}

func runRender(cmd *cobra.Command, opts *renderOptions, input string) error {
	logger := logging.GetLogger("cmd.render")
	defer logging.LogDuration(time.Now(), "render")

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	overrides, err := opts.overrides()
	if err != nil {
		return err
	}
	cfg, err := config.Load(config.LoadOptions{Path: opts.configPath, Overrides: overrides})
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd.InOrStdin(), input, opts.inputFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format = render.Resolve(format, out)
	r, err := render.New(format, cfg)
	if err != nil {
		return err
	}

	logger.Info().
		Str("input", input).
		Str("format", format.String()).
		Int("blocks", len(doc.Children)).
		Msg("Rendering document")

	res, err := r.Convert(doc)
	if err != nil {
		return err
	}
	output := res.Output
	if output != "" && !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	if _, err := io.WriteString(out, output); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "failed to write output")
	}

	for _, d := range res.Report.Diagnostics {
		logger := logging.WithFields(map[string]interface{}{
			"code": string(d.Code),
			"kind": string(d.Kind),
		})
		logger.Debug().Msg(d.Message)
	}

	if opts.diagnostics && res.Report.Len() > 0 {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, MsgDiagnosticsHeader, res.Report.Len())
		for _, d := range res.Report.Diagnostics {
			fmt.Fprintf(errOut, MsgDiagnosticItem, d.String())
		}
	}
	return nil
}

func readDocument(stdin io.Reader, input, inputFormat string) (*ast.Document, error) {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, MsgErrReadInput).WithDetail("input", input)
	}

	format := codec.FormatForPath(input)
	if inputFormat != "" {
		format = codec.Format(strings.ToLower(inputFormat))
	}
	return codec.Decode(data, format)
}
