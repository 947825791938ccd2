// Package seeding populates the vector index with one embedding record per
// (category, skill) pair of the taxonomy. Seeding runs out of band; the
// request-time gap engine only ever reads the index.
package seeding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillsync/internal/embedding"
	"github.com/jonathan/skillsync/internal/taxonomy"
	"github.com/jonathan/skillsync/internal/vectorstore"
)

const defaultConcurrency = 4

// Seeder embeds every taxonomy skill and upserts the vectors.
type Seeder struct {
	provider    embedding.Provider
	index       vectorstore.Index
	log         *zap.Logger
	concurrency int
}

// New creates a seeder. A nil logger disables logging.
func New(provider embedding.Provider, index vectorstore.Index, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		provider:    provider,
		index:       index,
		log:         log,
		concurrency: defaultConcurrency,
	}
}

// Seed ensures the collection exists and upserts one point per taxonomy
// skill. Point ids are assigned from the taxonomy ordering before any
// embedding starts, so re-running overwrites the same records and the
// operation is idempotent. Returns the number of points written.
func (s *Seeder) Seed(ctx context.Context, tax *taxonomy.Taxonomy) (int, error) {
	points := buildPoints(tax)
	if len(points) == 0 {
		return 0, fmt.Errorf("taxonomy has no skills to seed")
	}

	if err := s.index.EnsureCollection(ctx, s.provider.Dimension()); err != nil {
		return 0, fmt.Errorf("failed to prepare collection: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range points {
		g.Go(func() error {
			vector, err := s.provider.Embed(gctx, points[i].Payload.Content)
			if err != nil {
				return fmt.Errorf("failed to embed %q: %w", points[i].Payload.Skill, err)
			}
			points[i].Vector = vector
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := s.index.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("failed to upsert points: %w", err)
	}

	s.log.Info("taxonomy seeded",
		zap.Int("points", len(points)),
		zap.Int("categories", len(tax.Categories)))
	return len(points), nil
}

// buildPoints assigns deterministic ids and embedding content in taxonomy
// order. Ids start at 1 and increase by declaration order.
func buildPoints(tax *taxonomy.Taxonomy) []vectorstore.Point {
	points := make([]vectorstore.Point, 0, tax.SkillCount())
	id := uint64(0)
	for _, cat := range tax.Categories {
		for _, skill := range cat.Skills {
			id++
			points = append(points, vectorstore.Point{
				ID: id,
				Payload: vectorstore.Payload{
					Category:    cat.Name,
					Skill:       skill.Name,
					Description: skill.Description,
					Content:     fmt.Sprintf("%s %s %s", cat.Name, skill.Name, skill.Description),
				},
			})
		}
	}
	return points
}
