package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/skillsync/internal/matching"
)

const skillExtractionPrompt = `You are an expert resume parser.
Extract every technical and professional skill the candidate demonstrably has,
together with a proficiency level judged from seniority, years of use and the
depth of the described work.

Allowed levels: "beginner", "intermediate", "expert".

Return ONLY a JSON object of this exact shape, no markdown, no explanation:
{
  "skills": {
    "<skill name as written in the resume>": "<level>"
  }
}

Order the skills from most to least prominent in the resume.

Resume text:
"""
%s
"""`

// maxResumeRunes bounds how much resume text is sent to the model.
const maxResumeRunes = 12000

// ExtractSkills asks the model to turn raw resume text into a proficiency
// skill map. Key order of the model's JSON object is preserved, which makes
// later fuzzy resolution deterministic.
func ExtractSkills(ctx context.Context, client Client, resumeText string) (*matching.SkillMap, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("resume text is empty")
	}
	if runes := []rune(resumeText); len(runes) > maxResumeRunes {
		resumeText = string(runes[:maxResumeRunes])
	}

	response, err := client.GenerateJSON(ctx, fmt.Sprintf(skillExtractionPrompt, resumeText))
	if err != nil {
		return nil, fmt.Errorf("skill extraction failed: %w", err)
	}
	return ParseSkillsResponse(response)
}

// ParseSkillsResponse decodes the model's {"skills": {...}} payload.
func ParseSkillsResponse(response string) (*matching.SkillMap, error) {
	var out struct {
		Skills *matching.SkillMap `json:"skills"`
	}
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse skill extraction response: %w", err)
	}
	if out.Skills == nil || out.Skills.Len() == 0 {
		return nil, fmt.Errorf("no skills found in resume")
	}
	return out.Skills, nil
}
