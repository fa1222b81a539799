package daleel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-shot search against the corpus",
	Long: `Run a single search query and print the results as JSON.

The query goes through the same pipeline as the HTTP API: normalization,
optional LLM refinement, the retrieval waterfall, and cross-encoder
reranking.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	searchLimit   int
	searchSubject string
	searchBranch  string
	searchLevel   string
	searchYear    int
	searchLang    string
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchSubject, "subject", "", "Filter by subject")
	searchCmd.Flags().StringVar(&searchBranch, "branch", "", "Filter by branch")
	searchCmd.Flags().StringVar(&searchLevel, "level", "", "Filter by level")
	searchCmd.Flags().IntVar(&searchYear, "year", 0, "Filter by year")
	searchCmd.Flags().StringVar(&searchLang, "lang", "", "Filter by language")
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, _, _, err := initEngine()
	if err != nil {
		return err
	}
	defer client.Close()

	req := types.SearchRequest{
		Query: strings.Join(args, " "),
		Limit: searchLimit,
		Filters: types.Filters{
			Subject: searchSubject,
			Branch:  searchBranch,
			Level:   searchLevel,
			Year:    searchYear,
			Lang:    searchLang,
		},
	}

	results, err := client.Search(context.Background(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
