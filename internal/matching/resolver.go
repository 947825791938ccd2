package matching

import (
	"strings"
	"unicode/utf8"
)

const (
	// matchThreshold is the minimum heuristic score for a user skill to be
	// accepted as a match for a taxonomy skill.
	matchThreshold = 0.7

	substringScore = 0.8
	synonymScore   = 0.9

	// minSubstringLen guards against one- and zero-character substrings
	// matching everything.
	minSubstringLen = 2
	// minLengthRatio rejects substring matches where the shorter label is a
	// tiny fragment of the longer one.
	minLengthRatio = 0.3
)

// ResolvedSkill is a user-reported skill matched against a taxonomy skill
// name. Name is the label exactly as the user reported it.
type ResolvedSkill struct {
	Name  string
	Level Level
}

// ResolveSkill finds the user's best-matching entry for a taxonomy skill
// name, or nil when the skill is absent from the user's map.
//
// Resolution order: exact (case-sensitive) lookup of the punctuation-stripped
// name, then an insertion-order scan scoring each user skill by substring
// containment (0.8) and synonym-table hit (0.9). The first candidate at or
// above the threshold wins; the scan does not continue looking for a better
// one. A single user skill can satisfy several taxonomy skills, matched
// entries are not consumed.
func ResolveSkill(skillName string, userSkills *SkillMap) *ResolvedSkill {
	if userSkills.Len() == 0 {
		return nil
	}

	cleaned := strings.TrimSpace(nonWord.ReplaceAllString(skillName, ""))
	if level, ok := userSkills.Get(cleaned); ok {
		return &ResolvedSkill{Name: cleaned, Level: level}
	}

	target := strings.ToLower(cleaned)
	for _, entry := range userSkills.Entries() {
		candidate := strings.ToLower(entry.Name)

		score := 0.0
		if substringMatch(target, candidate) {
			score = substringScore
		}
		if AreSimilar(target, candidate) {
			score = synonymScore
		}
		if score >= matchThreshold {
			return &ResolvedSkill{Name: entry.Name, Level: entry.Level}
		}
	}
	return nil
}

// substringMatch reports whether one label contains the other, with guards
// on the shorter label's absolute and relative length.
func substringMatch(a, b string) bool {
	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	shortLen := utf8.RuneCountInString(shorter)
	longLen := utf8.RuneCountInString(longer)

	if shortLen < minSubstringLen {
		return false
	}
	if float64(shortLen)/float64(longLen) < minLengthRatio {
		return false
	}
	return strings.Contains(longer, shorter)
}
