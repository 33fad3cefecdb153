package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [database]",
	Short: "Merge a saved database into the session",
	Long: `Load a database file written by save and merge it into the current
session. Counts read from the file are added to the ones already held for
the same word and document. Defaults to the configured database path.

Update is refused after create or a previous update until the session is
saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return withSession(func(h *sessionHandle) (bool, error) {
		path := h.cfg.DatabasePath(h.dir)
		if len(args) > 0 {
			path = args[0]
		}
		// Lines before a malformed one stay merged, so commit either way.
		return updateDatabase(h, path, cmd.OutOrStdout())
	})
}

func updateDatabase(h *sessionHandle, path string, out io.Writer) (bool, error) {
	res, err := h.session.Update(path)
	if res == nil {
		return false, err
	}
	if err != nil {
		fmt.Fprintf(out, "Database partially loaded: %d lines merged before the error.\n", res.Stats.Lines)
		return true, err
	}

	fmt.Fprintf(out, "Database loaded from %s\n", res.Path)
	fmt.Fprintf(out, "  Words:     %d\n", res.Stats.Entries)
	fmt.Fprintf(out, "  Documents: %d new\n", res.Stats.Documents)
	if res.Stats.Short > 0 {
		fmt.Fprintf(out, "  Short lines: %d\n", res.Stats.Short)
	}
	return true, nil
}
