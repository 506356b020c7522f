package docweave

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/docweave/pkg/flavor"
	"github.com/arthur-debert/docweave/pkg/render"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "formats",
		Short:   MsgFormatsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"FORMAT", "DESCRIPTION"}}
			for _, f := range render.Formats() {
				data = append(data, []string{f.String(), f.Description()})
			}
			return renderTable(cmd.OutOrStdout(), data)
		},
	}
}

func newFlavorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "flavors",
		Short:   MsgFlavorsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := flavor.CapabilityNames()
			header := append([]string{"FLAVOR"}, names...)
			data := pterm.TableData{header}
			for _, f := range flavor.All() {
				caps := flavor.Describe(f)
				row := []string{f.String()}
				for _, name := range names {
					mark := "-"
					if caps[name] {
						mark = "yes"
					}
					row = append(row, mark)
				}
				data = append(data, row)
			}
			return renderTable(cmd.OutOrStdout(), data)
		},
	}
}
