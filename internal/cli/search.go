package cli

import (
	"io"

	"github.com/spf13/cobra"
	"invidx/internal/adapter/report"
)

var searchCmd = &cobra.Command{
	Use:   "search <word>",
	Short: "Look a word up in the index",
	Long: `Print every document containing the word and how often it occurs there.
Matching is exact and case-sensitive.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withSession(func(h *sessionHandle) (bool, error) {
		return false, searchWord(h, args[0], cmd.OutOrStdout())
	})
}

func searchWord(h *sessionHandle, word string, out io.Writer) error {
	tw := report.NewTableWriter(out)
	res, ok := h.session.Search(word)
	if !ok {
		return tw.WriteNotFound(word)
	}
	return tw.WriteSearch(res)
}
