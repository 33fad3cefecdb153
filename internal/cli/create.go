package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"invidx/internal/domain"
	"invidx/internal/usecase"
)

var createCmd = &cobra.Command{
	Use:   "create <path>...",
	Short: "Index documents",
	Long: `Validate the given files and add every word they contain to the index.
Paths may be files, directories (walked with the configured include and
exclude patterns) or glob patterns such as docs/**/*.txt.

Files must have the configured extension, exist and be non-empty. A file
already indexed in this session is skipped.

Examples:
  invidx create doc1.txt doc2.txt
  invidx create notes/
  invidx create 'corpus/**/*.txt'`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	return withSession(func(h *sessionHandle) (bool, error) {
		err := createDocuments(h, args, cmd.OutOrStdout())
		return err == nil, err
	})
}

// createDocuments expands args into paths and indexes them.
func createDocuments(h *sessionHandle, args []string, out io.Writer) error {
	paths, err := h.expander.Expand(args)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	result, err := h.session.Create(paths, newProgress(out))
	if result != nil {
		for _, r := range result.Rejected {
			fmt.Fprintf(out, "Error: %v\n", r)
		}
	}
	switch {
	case errors.Is(err, domain.ErrNoValidInput):
		fmt.Fprintln(out, "Warning: No valid files added to the database.")
		return err
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "\nIndexing complete:\n")
	fmt.Fprintf(out, "  Files indexed:  %d\n", len(result.Ingested))
	fmt.Fprintf(out, "  Files skipped:  %d (already indexed)\n", len(result.Skipped))
	fmt.Fprintf(out, "  Files rejected: %d\n", len(result.Rejected))
	fmt.Fprintf(out, "  Words merged:   %d\n", result.Tokens)
	fmt.Fprintf(out, "  Distinct words: %d\n", h.session.WordCount())

	if len(result.Failed) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, e := range result.Failed {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}
	return nil
}

// newProgress returns a progress callback that draws a bar on out, naming
// the document just handled. Create calls it from a single goroutine.
func newProgress(out io.Writer) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar

	return func(processed, total int, current string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(out),
				progressbar.OptionSetWidth(30),
				progressbar.OptionShowCount(),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(out)
				}),
			)
		}
		bar.Describe(filepath.Base(current))
		_ = bar.Set(processed)
	}
}
