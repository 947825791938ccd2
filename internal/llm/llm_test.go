package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsync/internal/gap"
	"github.com/jonathan/skillsync/internal/matching"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with language tag", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
		{"backticks inside plain text", "{\"cmd\": \"```\"}", "{\"cmd\": \"```\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.in))
		})
	}
}

func TestParseSkillsResponse(t *testing.T) {
	m, err := ParseSkillsResponse(`{"skills": {"Go": "expert", "SQL": "beginner"}}`)
	require.NoError(t, err)

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Go", entries[0].Name)
	assert.Equal(t, matching.LevelExpert, entries[0].Level)
	assert.Equal(t, "SQL", entries[1].Name)
}

func TestParseSkillsResponse_FencedPayload(t *testing.T) {
	m, err := ParseSkillsResponse("```json\n{\"skills\": {\"Go\": \"expert\"}}\n```")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestParseSkillsResponse_Invalid(t *testing.T) {
	_, err := ParseSkillsResponse(`not json`)
	assert.Error(t, err)

	_, err = ParseSkillsResponse(`{"skills": {}}`)
	assert.Error(t, err)

	_, err = ParseSkillsResponse(`{}`)
	assert.Error(t, err)
}

func TestExtractSkills(t *testing.T) {
	client := &fakeClient{response: `{"skills": {"React": "intermediate"}}`}

	m, err := ExtractSkills(context.Background(), client, "Built dashboards in React for 3 years.")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	assert.Contains(t, client.prompt, "Built dashboards in React")
}

func TestExtractSkills_EmptyResume(t *testing.T) {
	_, err := ExtractSkills(context.Background(), &fakeClient{}, "   ")
	assert.Error(t, err)
}

func TestExtractSkills_ClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	_, err := ExtractSkills(context.Background(), client, "resume")
	assert.Error(t, err)
}

func TestSummarizeReport(t *testing.T) {
	client := &fakeClient{response: "You are well on your way."}
	results := []gap.Result{{
		DetectedCategory:        "Web Dev",
		MatchedTaxonomyCategory: "Web Development",
		Confidence:              0.8,
		Similarity:              0.9,
	}}

	summary, err := SummarizeReport(context.Background(), client, "become a web developer", results)
	require.NoError(t, err)
	assert.Equal(t, "You are well on your way.", summary)
	assert.Contains(t, client.prompt, "Web Development")
	assert.Contains(t, client.prompt, "become a web developer")
}

func TestSummarizeReport_NoResults(t *testing.T) {
	_, err := SummarizeReport(context.Background(), &fakeClient{}, "goal", nil)
	assert.Error(t, err)
}
