package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"invidx/internal/usecase"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withSession(func(h *sessionHandle) (bool, error) {
		writeStatus(h, cmd.OutOrStdout())
		return false, nil
	})
}

func writeStatus(h *sessionHandle, out io.Writer) {
	s := h.session
	f := s.Flags()
	fmt.Fprintf(out, "Session:   %s\n", s.ID())
	fmt.Fprintf(out, "Started:   %s\n", s.StartedAt().Format(time.RFC3339))
	fmt.Fprintf(out, "Flags:     created=%v updated=%v loaded=%v\n", f.Created, f.Updated, f.Loaded)
	fmt.Fprintf(out, "Words:     %d\n", s.WordCount())
	fmt.Fprintf(out, "Documents: %d\n", len(s.Documents()))
	for _, op := range []usecase.Op{usecase.OpCreate, usecase.OpUpdate} {
		if err := usecase.Allowed(op, f); err != nil {
			fmt.Fprintf(out, "  %-6s no (%s)\n", op, err)
		} else {
			fmt.Fprintf(out, "  %-6s allowed\n", op)
		}
	}
}
