package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docrag/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "docrag",
	Short: "Index documents and answer questions about them",
	Long: `docrag indexes a directory of documents (.txt .md .docx .doc .pdf)
into a persisted vector index and answers questions against it using
retrieval-augmented generation: the most similar chunks are retrieved
and fed to a chat model together with the question.

Example usage:
  docrag index ./data            # Build the index from a directory
  docrag query -q "tuition fees" # Inspect what retrieval returns
  docrag ask -q "what is owed?"  # Ask a question, with cited sources
  docrag chat                    # Interactive session`,
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

		return nil
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docrag.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "working directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}
