package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-palettepro/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.GetInfo("palettepro")
		if outputJSON {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, version.String("palettepro"))
		if info.Revision != "" {
			fmt.Fprintf(w, "  revision   %s\n", info.Revision)
		}
		if !info.Committed.IsZero() {
			fmt.Fprintf(w, "  committed  %s\n", info.Committed.Format(time.DateOnly))
		}
		return nil
	},
}
