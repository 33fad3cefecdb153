package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"invidx/config"
	"invidx/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	resume  bool
)

var rootCmd = &cobra.Command{
	Use:   "invidx",
	Short: "Inverted index over plain-text documents",
	Long: `invidx builds a word-level inverted index over .txt documents, answers
exact-match word lookups, and persists the index to a plain-text database.

A session spans invocations until it is saved. Within a session, create may
run once before a save, and update may run once and never after create.

Example usage:
  invidx create doc1.txt doc2.txt   # Index documents
  invidx search cat                 # Look a word up
  invidx display                    # Print the whole index
  invidx save                       # Write database.txt and end the session
  invidx update database.txt        # Merge a saved database into a new session
  invidx shell                      # Interactive menu`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./invidx.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().BoolVar(&resume, "resume", false, "load the saved database when a new session begins")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
