package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docrag/internal/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question-answering session",
	Long: `Start an interactive session against the indexed documents. Each
answer cites its sources. The conversation history lives only for the
duration of the session.

Commands inside the session:
  /clear   discard the conversation history
  /quit    exit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()

	engine, err := newEngine(cfg, true)
	if err != nil {
		return err
	}

	if err := engine.Open(ctx); err != nil {
		if !errors.Is(err, domain.ErrIndexAbsent) {
			return err
		}
		// A failed load means rebuild, not crash: the index is a cache.
		fmt.Printf("No index found, building from %s...\n", cfg.Loader.DataDir)
		result, err := engine.Rebuild(ctx, nil)
		if err != nil {
			if errors.Is(err, domain.ErrNoDocuments) {
				return fmt.Errorf("no documents loaded from %s: add documents and run 'docrag index' first", cfg.Loader.DataDir)
			}
			return fmt.Errorf("rebuild failed: %w", err)
		}
		fmt.Printf("Indexed %d documents (%d chunks).\n", result.DocumentsLoaded, result.ChunksCreated)
	}

	if stats, ok := engine.Stats(); ok {
		fmt.Printf("Ready: %d documents, %d chunks indexed. Type a question, /clear, or /quit.\n", stats.TotalDocs, stats.TotalChunks)
	}

	session := engine.NewSession()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("stdin error: %w", err)
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			return nil
		case line == "/clear":
			session.Clear()
			fmt.Println("History cleared.")
			continue
		}

		answer, err := engine.Ask(ctx, session, line)
		if err != nil {
			if errors.Is(err, domain.ErrNotReady) {
				fmt.Println("Please process documents first: run 'docrag index'.")
				continue
			}
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("\n%s\n", answer.Text)
		printSources(answer.Sources)
		fmt.Println()
	}
}
