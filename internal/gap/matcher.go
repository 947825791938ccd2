// Package gap implements the goal-to-category retrieval and skill
// reconciliation engine: it matches a free-text learning goal against the
// taxonomy via embeddings, aligns detected categories onto canonical ones,
// and classifies every taxonomy skill as gap, present or needs-improvement.
package gap

import (
	"context"
	"fmt"

	"github.com/jonathan/skillsync/internal/embedding"
	"github.com/jonathan/skillsync/internal/vectorstore"
)

// Params bounds a category-matching query. The two call sites deliberately
// use different values: the CLI gap finder casts a wider net than the HTTP
// service. Unifying them would be a behavior change.
type Params struct {
	Limit          int
	ScoreThreshold float64
}

// Matching presets per caller context.
var (
	GapFinderParams = Params{Limit: 10, ScoreThreshold: 0.40}
	ServiceParams   = Params{Limit: 5, ScoreThreshold: 0.45}
)

// CategoryMatch is a taxonomy-adjacent category label inferred from a goal
// string. The label is whatever the index stored, not necessarily an exact
// taxonomy category name; confidence is the maximum neighbor score observed
// for that label.
type CategoryMatch struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// CategoryMatcher finds taxonomy-adjacent categories for a free-text goal.
type CategoryMatcher interface {
	Match(ctx context.Context, goal string) ([]CategoryMatch, error)
}

// Matcher embeds the goal text and queries the skill-embedding index.
// Both collaborators are constructor-injected so tests can substitute fakes.
type Matcher struct {
	provider embedding.Provider
	index    vectorstore.Index
	params   Params
}

// NewMatcher creates a category matcher with the given query bounds.
func NewMatcher(provider embedding.Provider, index vectorstore.Index, params Params) *Matcher {
	return &Matcher{provider: provider, index: index, params: params}
}

// Match returns one entry per distinct category among the goal's nearest
// neighbors, keeping the maximum score per category. An empty result is a
// valid outcome, not an error; embedding and search failures propagate
// unmodified so the caller can tell the stages apart.
func (m *Matcher) Match(ctx context.Context, goal string) ([]CategoryMatch, error) {
	vector, err := m.provider.Embed(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to embed goal: %w", err)
	}

	neighbors, err := m.index.Search(ctx, vector, vectorstore.SearchOptions{
		Limit:          m.params.Limit,
		ScoreThreshold: m.params.ScoreThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search skill index: %w", err)
	}

	// Group by category keeping the best score; preserve first-seen order so
	// the result is deterministic for a fixed neighbor list.
	order := make([]string, 0, len(neighbors))
	best := make(map[string]float64, len(neighbors))
	for _, n := range neighbors {
		category := n.Payload.Category
		if category == "" {
			continue
		}
		if score, seen := best[category]; !seen || n.Score > score {
			if !seen {
				order = append(order, category)
			}
			best[category] = n.Score
		}
	}

	matches := make([]CategoryMatch, 0, len(order))
	for _, category := range order {
		matches = append(matches, CategoryMatch{Category: category, Confidence: best[category]})
	}
	return matches, nil
}
