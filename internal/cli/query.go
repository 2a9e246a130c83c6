package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docrag/internal/domain"
)

var (
	queryText     string
	queryTopK     int
	queryJSON     bool
	queryMinScore float64
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the index without generating an answer",
	Long: `Retrieve the chunks most similar to the query, with scores and
source files. Useful for inspecting what the ask command would feed to
the model.

Examples:
  docrag query -q "tuition refund policy"
  docrag query -q "grading scale" --top-k 8 --json`,
	RunE: runQuery,
}

// queryResult is the JSON output shape for one retrieved chunk.
type queryResult struct {
	Source string  `json:"source"`
	Type   string  `json:"type"`
	Score  float64 `json:"score"`
	Text   string  `json:"text"`
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().Float64Var(&queryMinScore, "min-score", 0, "filter results below this similarity")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if queryMinScore > 0 {
		cfg.Retrieve.MinScore = queryMinScore
	}

	engine, err := newEngine(cfg, false)
	if err != nil {
		return err
	}

	if err := engine.Open(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrIndexAbsent) {
			return fmt.Errorf("no index found. Run 'docrag index' first")
		}
		return err
	}

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	chunks, err := engine.Retrieve(cmd.Context(), queryText, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		results := make([]queryResult, 0, len(chunks))
		for _, c := range chunks {
			results = append(results, queryResult{
				Source: c.Metadata["source"],
				Type:   c.Metadata["type"],
				Score:  c.Score,
				Text:   c.Text,
			})
		}
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(chunks) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(chunks), queryText)
	for i, c := range chunks {
		fmt.Printf("--- [%d] %s (score: %.3f) ---\n", i+1, c.Metadata["source"], c.Score)
		text := c.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
