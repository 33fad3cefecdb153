package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the database file and end the session",
	Long: `Write the index to the configured database path, replacing any previous
file, and reset the session so create and update are allowed again.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	return withSession(func(h *sessionHandle) (bool, error) {
		path, err := h.save()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database saved to %s\n", path)
		return false, nil
	})
}
