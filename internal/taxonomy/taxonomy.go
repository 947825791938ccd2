// Package taxonomy holds the fixed catalog of skill categories and skills
// against which users are evaluated. The taxonomy is loaded once at process
// start and is immutable afterwards; it is the single source of truth for
// which skills exist.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed taxonomy.json
var defaultTaxonomyJSON []byte

//go:embed schema.json
var schemaJSON []byte

// Skill is a single named skill with a human-readable description.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Category groups an ordered list of skills under one category name. Skill
// names are unique within a category but not globally.
type Category struct {
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// Taxonomy is the ordered, immutable catalog of categories.
type Taxonomy struct {
	Categories []Category `json:"categories"`
}

// Default returns the taxonomy embedded in the binary. The embedded data is
// validated at build of the release artifact, so a parse failure here is a
// programmer error.
func Default() *Taxonomy {
	tax, err := Parse(defaultTaxonomyJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return tax
}

// Load reads and parses a taxonomy JSON file. An empty path falls back to
// the embedded default.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}
	tax, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid taxonomy file %s: %w", path, err)
	}
	return tax, nil
}

// Parse validates taxonomy JSON against the embedded schema and decodes it.
func Parse(data []byte) (*Taxonomy, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate taxonomy: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("taxonomy does not match schema:")
		for _, desc := range result.Errors() {
			sb.WriteString(fmt.Sprintf("\n  %s: %s", desc.Field(), desc.Description()))
		}
		return nil, fmt.Errorf("%s", sb.String())
	}

	var tax Taxonomy
	if err := json.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy JSON: %w", err)
	}
	if err := tax.check(); err != nil {
		return nil, err
	}
	return &tax, nil
}

// check enforces the invariants the JSON Schema cannot express.
func (t *Taxonomy) check() error {
	seenCategories := make(map[string]struct{}, len(t.Categories))
	for _, cat := range t.Categories {
		if _, dup := seenCategories[cat.Name]; dup {
			return fmt.Errorf("duplicate category name: %s", cat.Name)
		}
		seenCategories[cat.Name] = struct{}{}

		seenSkills := make(map[string]struct{}, len(cat.Skills))
		for _, skill := range cat.Skills {
			if _, dup := seenSkills[skill.Name]; dup {
				return fmt.Errorf("duplicate skill %q in category %q", skill.Name, cat.Name)
			}
			seenSkills[skill.Name] = struct{}{}
		}
	}
	return nil
}

// SkillCount returns the total number of (category, skill) pairs.
func (t *Taxonomy) SkillCount() int {
	n := 0
	for _, cat := range t.Categories {
		n += len(cat.Skills)
	}
	return n
}

// Category returns the category with the exact given name, or nil.
func (t *Taxonomy) Category(name string) *Category {
	for i := range t.Categories {
		if t.Categories[i].Name == name {
			return &t.Categories[i]
		}
	}
	return nil
}
