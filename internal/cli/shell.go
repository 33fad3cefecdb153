package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"invidx/internal/adapter/report"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive menu",
	Long: `Run a menu-driven session on standard input:

  1. Create database
  2. Display database
  3. Search database
  4. Update database
  5. Save and exit

The session is journalled after every change, so leaving without saving
keeps it for the next invocation.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	h, err := openSession(GetConfig(), GetRootDir(), resume)
	if err != nil {
		return err
	}
	defer h.Close()

	return shellLoop(h, cmd.InOrStdin(), cmd.OutOrStdout())
}

const shellMenu = `
Menu:
1. Create database
2. Display database
3. Search database
4. Update database
5. Save and exit
Enter your choice: `

// shellLoop reads menu choices from in until save-and-exit or end of input.
func shellLoop(h *sessionHandle, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	prompt := func(msg string) (string, bool) {
		fmt.Fprint(out, msg)
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimSpace(sc.Text()), true
	}

	for {
		choice, ok := prompt(shellMenu)
		if !ok {
			fmt.Fprintln(out)
			return sc.Err()
		}

		switch choice {
		case "1":
			line, ok := prompt("Enter file names separated by spaces: ")
			if !ok {
				continue
			}
			if err := createDocuments(h, strings.Fields(line), out); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			if err := h.commit(); err != nil {
				return err
			}

		case "2":
			if err := report.NewTableWriter(out).WriteIndex(h.session.Entries()); err != nil {
				return err
			}

		case "3":
			word, ok := prompt("Enter the word to search: ")
			if !ok || word == "" {
				continue
			}
			if err := searchWord(h, strings.Fields(word)[0], out); err != nil {
				return err
			}

		case "4":
			path, ok := prompt("Enter the database file name: ")
			if !ok {
				continue
			}
			if path == "" {
				path = h.cfg.DatabasePath(h.dir)
			}
			changed, err := updateDatabase(h, path, out)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			if changed {
				if err := h.commit(); err != nil {
					return err
				}
			}

		case "5":
			path, err := h.save()
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Database saved to %s\n", path)
			return nil

		default:
			fmt.Fprintln(out, "Invalid choice. Try again.")
		}
	}
}
