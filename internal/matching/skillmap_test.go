package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillMap_InsertionOrder(t *testing.T) {
	m := NewSkillMap()
	m.Set("zsh scripting", LevelExpert)
	m.Set("awk", LevelBeginner)
	m.Set("make", LevelIntermediate)

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "zsh scripting", entries[0].Name)
	assert.Equal(t, "awk", entries[1].Name)
	assert.Equal(t, "make", entries[2].Name)
}

func TestSkillMap_SetExistingKeepsPosition(t *testing.T) {
	m := NewSkillMap()
	m.Set("go", LevelBeginner)
	m.Set("python", LevelExpert)
	m.Set("go", LevelIntermediate)

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "go", entries[0].Name)
	assert.Equal(t, LevelIntermediate, entries[0].Level)
}

func TestSkillMap_JSONRoundTripPreservesOrder(t *testing.T) {
	raw := `{"html": "beginner", "React.js": "intermediate", "Docker": "expert"}`

	var m SkillMap
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "html", entries[0].Name)
	assert.Equal(t, "React.js", entries[1].Name)
	assert.Equal(t, "Docker", entries[2].Name)

	encoded, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(encoded))

	var again SkillMap
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, m.Entries(), again.Entries())
}

func TestSkillMap_UnmarshalRejectsNonObject(t *testing.T) {
	var m SkillMap
	assert.Error(t, json.Unmarshal([]byte(`["html"]`), &m))
	assert.Error(t, json.Unmarshal([]byte(`"html"`), &m))
}

func TestSkillMap_UnknownLevelIsKeptVerbatim(t *testing.T) {
	var m SkillMap
	require.NoError(t, json.Unmarshal([]byte(`{"go": "guru"}`), &m))

	level, ok := m.Get("go")
	require.True(t, ok)
	assert.Equal(t, Level("guru"), level)
}
