// Package matching provides the heuristic string and skill matching used by
// the gap analysis engine: a label similarity scorer, a curated synonym
// table, and a fuzzy resolver from taxonomy skill names to user-reported
// skills.
package matching

import (
	"regexp"
	"strings"
)

// nonWord matches every character that is not a word character or whitespace.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Normalize lowercases s and strips punctuation, keeping only word
// characters and whitespace.
func Normalize(s string) string {
	return nonWord.ReplaceAllString(strings.ToLower(s), "")
}

// Similarity scores how close two short labels are, in [0, 1].
// The checks short-circuit in order: exact match after normalization (1.0),
// substring containment (0.9), then the Jaccard index of the word sets.
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.9
	}
	return jaccard(na, nb)
}

// jaccard returns |A∩B| / |A∪B| over the whitespace-delimited word sets of
// the two strings. Two empty sets score 0.
func jaccard(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
