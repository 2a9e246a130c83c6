package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docrag/internal/domain"
)

var askQuestion string

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask one question against the indexed documents",
	Long: `Answer a single question using retrieval-augmented generation:
the top matching chunks are retrieved and handed to the chat model as
context, and the sources used are printed alongside the answer.

Example:
  docrag ask -q "What accommodations are required?"`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	engine, err := newEngine(cfg, true)
	if err != nil {
		return err
	}

	if err := engine.Open(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrIndexAbsent) {
			return fmt.Errorf("no index found. Run 'docrag index' first")
		}
		return err
	}

	answer, err := engine.Ask(cmd.Context(), nil, askQuestion)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	printSources(answer.Sources)
	return nil
}

func printSources(sources []domain.ScoredChunk) {
	if len(sources) == 0 {
		return
	}
	fmt.Printf("\nSources:\n")
	for i, s := range sources {
		fmt.Printf("  [%d] %s (score: %.3f)\n", i+1, s.Metadata["source"], s.Score)
	}
}
