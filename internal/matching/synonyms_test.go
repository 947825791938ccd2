package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreSimilar(t *testing.T) {
	tests := []struct {
		name string
		x    string
		y    string
		want bool
	}{
		{"key to variant", "javascript", "js", true},
		{"variant to key", "js", "javascript", true},
		{"variants of same key", "node.js", "nodejs", true},
		{"react shorthand", "react", "react.js", true},
		{"html umbrella", "html and css", "css", true},
		{"kubernetes shorthand", "kubernetes", "k8s", true},
		{"unrelated labels", "python", "docker", false},
		{"variants of different keys", "js", "k8s", false},
		{"unknown labels", "fortran", "cobol", false},
		{"empty input", "", "javascript", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreSimilar(tt.x, tt.y))
			assert.Equal(t, tt.want, AreSimilar(tt.y, tt.x), "AreSimilar must be symmetric")
		})
	}
}
