package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillsync/internal/config"
	"github.com/jonathan/skillsync/internal/embedding"
	"github.com/jonathan/skillsync/internal/logger"
	"github.com/jonathan/skillsync/internal/seeding"
	"github.com/jonathan/skillsync/internal/taxonomy"
	"github.com/jonathan/skillsync/internal/vectorstore"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Embed the taxonomy and load it into the vector index",
	Long: `Embed every (category, skill) pair of the taxonomy and upsert the vectors
into Qdrant. Point ids are deterministic, so re-running replaces the
existing records.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		return fmt.Errorf("failed to load taxonomy: %w", err)
	}

	provider, err := embedding.NewOpenAIClient(embedding.OpenAIConfig{
		BaseURL:   cfg.EmbeddingBaseURL,
		APIKey:    cfg.EmbeddingAPIKey,
		Model:     cfg.EmbeddingModel,
		Dimension: cfg.EmbeddingDim,
		Timeout:   cfg.HTTPTimeout,
	})
	if err != nil {
		return err
	}

	index, err := vectorstore.NewQdrant(vectorstore.QdrantConfig{
		URL:        cfg.QdrantURL,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.Collection,
	})
	if err != nil {
		return err
	}

	count, err := seeding.New(provider, index, log).Seed(cmd.Context(), tax)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d skill embeddings into %q\n", count, cfg.Collection)
	return nil
}
