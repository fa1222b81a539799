package daleel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index [file.json]",
	Short: "Index documents from a JSON file",
	Long: `Index documents into the content store and the vector index.

The file must contain a JSON array of documents:

  [{"id": "...", "title": "...", "markdown_body": "...",
    "metadata": {"subject": "math", "year": 2024, "lang": "ar"}}]`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

var indexBatchSize int

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().IntVar(&indexBatchSize, "batch-size", 50, "Documents per indexing batch")
}

func runIndex(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var docs []types.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("%s contains no documents", args[0])
	}

	client, _, log, err := initEngine()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	for start := 0; start < len(docs); start += indexBatchSize {
		end := start + indexBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := client.IndexDocuments(ctx, docs[start:end]); err != nil {
			return fmt.Errorf("failed to index batch starting at %d: %w", start, err)
		}
	}

	log.Info("indexing finished", "documents", len(docs))
	return nil
}
