package docweave

// Command descriptions
const (
	MsgRootShort = "Render document trees into Markdown, Org, plain text, wiki markup and more"
	MsgRootLong  = `docweave renders a document tree, given as JSON or YAML, into one of
several markup formats. Markdown output adapts to the chosen flavor and
falls back gracefully when a construct is not supported.

Configuration is read from the embedded defaults, the user config file
($XDG_CONFIG_HOME/docweave/config.toml), an explicit --config file and
DOCWEAVE_<SECTION>__<KEY> environment variables, in that order.`

	MsgRenderShort   = "Render a document to the chosen format"
	MsgRenderLong    = "Render reads a document tree from FILE, or from standard input when FILE is omitted or \"-\", and writes the rendered output to standard output."
	MsgRenderExample = `  docweave render doc.json                     # Markdown, or a preview on a terminal
  docweave render -f org doc.yaml              # Org-mode
  docweave render -f markdown --flavor commonmark doc.json
  docweave render -f template --template '{{len (headings .Document)}}' doc.json
  cat doc.json | docweave render -f wiki --diagnostics`

	MsgFormatsShort = "List output formats"
	MsgFlavorsShort = "List Markdown flavors and what they support"
	MsgVersionShort = "Print version information"

	// Flags
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Config file (TOML or YAML)"
	MsgFlagFormat       = "Output format (auto, markdown, org, plaintext, wiki, template, terminal)"
	MsgFlagInputFormat  = "Input format (json or yaml); guessed from the file extension by default"
	MsgFlagFlavor       = "Markdown flavor for the markdown and terminal formats"
	MsgFlagTemplate     = "Inline template for the template format"
	MsgFlagTemplateFile = "Template file for the template format"
	MsgFlagWidth        = "Wrap width for the plaintext and terminal formats"
	MsgFlagSet          = "Override a config value, as section.key=value (repeatable)"
	MsgFlagDiagnostics  = "Print rendering diagnostics to standard error"

	// Output
	MsgDiagnosticsHeader = "%d diagnostic(s):\n"
	MsgDiagnosticItem    = "  %s\n"
	MsgVersionFormat     = "docweave version %s\n  commit: %s\n  built:  %s\n"

	// Errors
	MsgErrNoCommand  = "no command specified"
	MsgErrBadSet     = "invalid --set value %q, expected section.key=value"
	MsgErrReadInput  = "failed to read input"
)
