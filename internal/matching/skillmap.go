package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Level is a user-reported proficiency for a single skill. The values
// "beginner" and "intermediate" are classified specially by the gap engine;
// every other value, "expert" included, lands in the top tier. Unknown
// strings are deliberately not rejected.
type Level string

// Recognized proficiency levels.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

// SkillEntry is a single user-reported skill with its proficiency level.
type SkillEntry struct {
	Name  string
	Level Level
}

// SkillMap is an insertion-ordered mapping from user-reported skill labels to
// proficiency levels. Insertion order is part of the contract: skill
// resolution scans entries in order and the first candidate above the match
// threshold wins, so iteration must be deterministic.
type SkillMap struct {
	names  []string
	levels map[string]Level
}

// NewSkillMap creates an empty skill map.
func NewSkillMap() *SkillMap {
	return &SkillMap{levels: make(map[string]Level)}
}

// Set records a skill with its level. Re-setting an existing skill updates
// the level but keeps the original position.
func (m *SkillMap) Set(name string, level Level) {
	if m.levels == nil {
		m.levels = make(map[string]Level)
	}
	if _, ok := m.levels[name]; !ok {
		m.names = append(m.names, name)
	}
	m.levels[name] = level
}

// Get returns the level for an exact (case-sensitive) skill name.
func (m *SkillMap) Get(name string) (Level, bool) {
	if m == nil || m.levels == nil {
		return "", false
	}
	level, ok := m.levels[name]
	return level, ok
}

// Len returns the number of recorded skills.
func (m *SkillMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Entries returns the skills in insertion order.
func (m *SkillMap) Entries() []SkillEntry {
	if m == nil {
		return nil
	}
	entries := make([]SkillEntry, 0, len(m.names))
	for _, name := range m.names {
		entries = append(entries, SkillEntry{Name: name, Level: m.levels[name]})
	}
	return entries
}

// MarshalJSON encodes the map as a JSON object, preserving insertion order.
func (m *SkillMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.levels[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the map, preserving the key order
// of the document. A plain map[string]Level would lose that order.
func (m *SkillMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode skill map: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skill map must be a JSON object, got %v", tok)
	}

	m.names = nil
	m.levels = make(map[string]Level)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode skill name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("skill name must be a string, got %v", keyTok)
		}

		var level Level
		if err := dec.Decode(&level); err != nil {
			return fmt.Errorf("failed to decode level for %q: %w", name, err)
		}
		m.Set(name, level)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode skill map: %w", err)
	}
	return nil
}
