package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docrag/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config and create the data directory",
	Long: `Write docrag.yaml with the default configuration into the working
directory and create the data directory it points at. Edit the file to
change models, chunking, or retrieval settings.

Example:
  docrag init
  docrag init -d ./myproject`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	return scaffold(rootDir)
}

// scaffold writes a default config and creates the data directory.
// An existing config is never overwritten.
func scaffold(dir string) error {
	path := filepath.Join(dir, "docrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	dataDir := filepath.Join(dir, cfg.Loader.DataDir)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	fmt.Printf("Add documents to %s and run 'docrag index'.\n", dataDir)
	return nil
}
