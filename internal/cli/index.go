package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docrag/config"
	"docrag/internal/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index [data-dir]",
	Short: "Build the document index",
	Long: `Load documents from the data directory, split them into chunks,
embed each chunk, and persist the vector index. Any existing index at
the configured location is replaced in full.

Examples:
  docrag index            # Index the configured data directory
  docrag index ./papers   # Index a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if len(args) > 0 {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
		cfg.Loader.DataDir = dir
	}

	if err := config.EnsureIndexDir(cfg.Loader.IndexDir); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	engine, err := newEngine(cfg, false)
	if err != nil {
		return err
	}

	fmt.Printf("Scanning %s...\n", cfg.Loader.DataDir)

	var bar *progressbar.ProgressBar
	progress := func(processed, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)
	}

	result, err := engine.Rebuild(cmd.Context(), progress)
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			printWarnings(result.Warnings)
			return fmt.Errorf("no documents loaded from %s (found %d supported files); nothing indexed", cfg.Loader.DataDir, result.FilesFound)
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Files found:      %d\n", result.FilesFound)
	fmt.Printf("  Documents loaded: %d\n", result.DocumentsLoaded)
	fmt.Printf("  Chunks created:   %d\n", result.ChunksCreated)
	printWarnings(result.Warnings)
	fmt.Printf("\nIndex stored at: %s\n", config.IndexDBPath(cfg.Loader.IndexDir))

	return nil
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("\nWarnings:\n")
	for _, w := range warnings {
		fmt.Printf("  - %s\n", w)
	}
}
