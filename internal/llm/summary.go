package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/skillsync/internal/gap"
)

const summaryPrompt = `You are a career advisor. Below is a structured skill
gap analysis for a person with this learning goal: %q.

Write a short, encouraging summary (3-5 sentences) of where they stand:
name the strongest matched categories, the most important missing skills to
start with, and which existing skills to deepen. Plain text only, no
markdown, no lists.

Gap analysis:
%s`

// SummarizeReport turns a finished gap analysis into a short natural-language
// summary. The structured results stay authoritative; this text is garnish
// for the client and failures here must not fail the analysis itself.
func SummarizeReport(ctx context.Context, client Client, goal string, results []gap.Result) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("nothing to summarize: no aligned categories")
	}

	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode gap results: %w", err)
	}

	summary, err := client.GenerateContent(ctx, fmt.Sprintf(summaryPrompt, goal, encoded))
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return summary, nil
}
