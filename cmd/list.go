package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gnolang/revfix/run"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available procedures",
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, p := range run.Procedures() {
			fmt.Fprintf(tw, "%s\t%s\n", p.Name(), p.Description())
		}
		tw.Flush()
	},
}
