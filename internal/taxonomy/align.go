package taxonomy

import "github.com/jonathan/skillsync/internal/matching"

// MinAlignment is the minimum similarity for a detected category label to be
// accepted as naming a taxonomy category. Alignments below it must be
// skipped by the caller; the boundary is inclusive (exactly 0.7 passes).
const MinAlignment = 0.7

// Alignment is the result of snapping a detected category label onto the
// closest taxonomy category.
type Alignment struct {
	Category   *Category
	Similarity float64
}

// Align finds the taxonomy category whose name is most similar to the
// detected label. Ties break toward the category declared first. The caller
// decides whether the similarity clears MinAlignment; a weak alignment is
// normal control flow, not an error.
func (t *Taxonomy) Align(detected string) Alignment {
	best := Alignment{}
	for i := range t.Categories {
		score := matching.Similarity(detected, t.Categories[i].Name)
		if best.Category == nil || score > best.Similarity {
			best = Alignment{Category: &t.Categories[i], Similarity: score}
		}
	}
	return best
}
