package cli

import (
	"github.com/spf13/cobra"
	"invidx/internal/adapter/report"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Print the whole index",
	Args:  cobra.NoArgs,
	RunE:  runDisplay,
}

func init() {
	rootCmd.AddCommand(displayCmd)
}

func runDisplay(cmd *cobra.Command, args []string) error {
	return withSession(func(h *sessionHandle) (bool, error) {
		return false, report.NewTableWriter(cmd.OutOrStdout()).WriteIndex(h.session.Entries())
	})
}
