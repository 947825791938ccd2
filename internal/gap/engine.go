package gap

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/skillsync/internal/matching"
	"github.com/jonathan/skillsync/internal/taxonomy"
)

// Fixed classification texts. Priority is currently a constant; real
// prioritization is a future extension, not implemented logic.
const (
	priorityHigh = "high"

	recommendBeginner     = "focus on intermediate concepts and practice"
	recommendIntermediate = "consider advancing to expert level"
	recommendTopTier      = "strong skill — can mentor others"
)

// SkillGap is a taxonomy skill with no corresponding entry in the user's
// skill map.
type SkillGap struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// SkillStatus is a taxonomy skill the user already reports, with the level
// they reported it at and a fixed recommendation.
type SkillStatus struct {
	Name           string         `json:"name"`
	UserLevel      matching.Level `json:"user_level"`
	Description    string         `json:"description"`
	Recommendation string         `json:"recommendation"`
}

// SkillBreakdown partitions a category's skill list. Every skill of the
// matched taxonomy category appears in exactly one of the three sets.
type SkillBreakdown struct {
	Gaps             []SkillGap    `json:"gaps"`
	Present          []SkillStatus `json:"present"`
	NeedsImprovement []SkillStatus `json:"needs_improvement"`
}

// Result is the gap analysis for one successfully aligned category.
type Result struct {
	DetectedCategory        string         `json:"detected_category"`
	MatchedTaxonomyCategory string         `json:"matched_taxonomy_category"`
	Confidence              float64        `json:"confidence"`
	Similarity              float64        `json:"similarity"`
	Skills                  SkillBreakdown `json:"skills"`
}

// Engine orchestrates category matching, taxonomy alignment and skill
// resolution. It holds no per-request state; every Analyze call is a pure
// function of its inputs plus the injected matcher's external services.
type Engine struct {
	matcher CategoryMatcher
	tax     *taxonomy.Taxonomy
	log     *zap.Logger
}

// NewEngine creates a gap analysis engine. A nil logger disables logging.
func NewEngine(matcher CategoryMatcher, tax *taxonomy.Taxonomy, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{matcher: matcher, tax: tax, log: log}
}

// Analyze produces one Result per matched and aligned category, preserving
// the matcher's category order. No matched categories yields an empty,
// non-nil slice; the caller surfaces that as "no relevant categories found".
// Embedding and search failures are the only error paths.
func (e *Engine) Analyze(ctx context.Context, goal string, skills *matching.SkillMap) ([]Result, error) {
	matches, err := e.matcher.Match(ctx, goal)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		alignment := e.tax.Align(match.Category)
		if alignment.Similarity < taxonomy.MinAlignment {
			e.log.Debug("detected category has no taxonomy alignment",
				zap.String("detected", match.Category),
				zap.Float64("similarity", alignment.Similarity))
			continue
		}

		results = append(results, Result{
			DetectedCategory:        match.Category,
			MatchedTaxonomyCategory: alignment.Category.Name,
			Confidence:              match.Confidence,
			Similarity:              alignment.Similarity,
			Skills:                  classifySkills(alignment.Category, skills),
		})
	}

	e.log.Info("gap analysis complete",
		zap.Int("matched_categories", len(matches)),
		zap.Int("aligned_categories", len(results)))
	return results, nil
}

// classifySkills checks every skill declared by the category against the
// user's skill map. Beginner-level matches need improvement, intermediate
// matches are present with room to grow, and every other level, recognized
// or not, counts as the top tier.
func classifySkills(cat *taxonomy.Category, skills *matching.SkillMap) SkillBreakdown {
	breakdown := SkillBreakdown{
		Gaps:             []SkillGap{},
		Present:          []SkillStatus{},
		NeedsImprovement: []SkillStatus{},
	}

	for _, skill := range cat.Skills {
		resolved := matching.ResolveSkill(skill.Name, skills)
		switch {
		case resolved == nil:
			breakdown.Gaps = append(breakdown.Gaps, SkillGap{
				Name:        skill.Name,
				Description: skill.Description,
				Priority:    priorityHigh,
			})
		case resolved.Level == matching.LevelBeginner:
			breakdown.NeedsImprovement = append(breakdown.NeedsImprovement, SkillStatus{
				Name:           skill.Name,
				UserLevel:      resolved.Level,
				Description:    skill.Description,
				Recommendation: recommendBeginner,
			})
		case resolved.Level == matching.LevelIntermediate:
			breakdown.Present = append(breakdown.Present, SkillStatus{
				Name:           skill.Name,
				UserLevel:      resolved.Level,
				Description:    skill.Description,
				Recommendation: recommendIntermediate,
			})
		default:
			breakdown.Present = append(breakdown.Present, SkillStatus{
				Name:           skill.Name,
				UserLevel:      resolved.Level,
				Description:    skill.Description,
				Recommendation: recommendTopTier,
			})
		}
	}
	return breakdown
}
