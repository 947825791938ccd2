package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillsync/internal/config"
	"github.com/jonathan/skillsync/internal/embedding"
	"github.com/jonathan/skillsync/internal/gap"
	"github.com/jonathan/skillsync/internal/logger"
	"github.com/jonathan/skillsync/internal/matching"
	"github.com/jonathan/skillsync/internal/taxonomy"
	"github.com/jonathan/skillsync/internal/vectorstore"
)

var (
	analyzeGoal       string
	analyzeSkillsFile string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot gap analysis from the command line",
	Long: `Run a gap analysis for a goal against a skills file without going through
the HTTP API. The skills file is a JSON object mapping skill names to
levels; entry order matters, earlier skills win ties during resolution.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeGoal, "goal", "", "Career goal to analyze (required)")
	analyzeCmd.Flags().StringVar(&analyzeSkillsFile, "skills", "", "Path to a JSON skills file")
	_ = analyzeCmd.MarkFlagRequired("goal")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	skills := matching.NewSkillMap()
	if analyzeSkillsFile != "" {
		data, err := os.ReadFile(analyzeSkillsFile)
		if err != nil {
			return fmt.Errorf("failed to read skills file: %w", err)
		}
		if err := json.Unmarshal(data, skills); err != nil {
			return fmt.Errorf("failed to parse skills file: %w", err)
		}
	}

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

	// The CLI casts a wider net than the service on purpose.
	matcher := gap.NewMatcher(provider, index, gap.Params{
		Limit:          cfg.GapFinderMatcher.Limit,
		ScoreThreshold: cfg.GapFinderMatcher.ScoreThreshold,
	})
	engine := gap.NewEngine(matcher, tax, log)

	results, err := engine.Analyze(cmd.Context(), analyzeGoal, skills)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no relevant categories found")
		return nil
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
