package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/apexmind/internal/retrieval"
)

var ingestGlobs []string

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Ingest a knowledge corpus directory",
	Long: `Ingest chunks every matching file under the directory, embeds the
chunks through the configured provider, and stores them for retrieval
during coaching turns.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		p, err := buildProvider(s)
		if err != nil {
			fmt.Printf("Failed to initialize provider: %v\n", err)
			os.Exit(1)
		}

		r := retrieval.NewRetriever(s, p)
		res, err := r.Ingest(context.Background(), args[0], ingestGlobs)
		if err != nil {
			fmt.Printf("Ingestion failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Ingested %d chunks from %d files.\n", res.Chunks, res.Files)
	},
}

func init() {
	RootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringSliceVarP(&ingestGlobs, "glob", "g", nil, "File globs to ingest (default **/*.md, **/*.txt)")
	ingestCmd.Flags().StringVarP(&providerType, "provider", "p", "gemini", "AI provider for embeddings")
	ingestCmd.Flags().StringVarP(&modelName, "model", "m", "", "Model name")
}
