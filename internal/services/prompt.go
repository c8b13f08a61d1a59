package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSkillExtractionPrompt asks for the skills a resume demonstrates.
// vocabulary is a hint so the model reuses the spelling used by postings.
func (pb *PromptBuilder) BuildSkillExtractionPrompt(resumeText string, vocabulary []string) string {
	known := "none"
	if len(vocabulary) > 0 {
		known = strings.Join(vocabulary, ", ")
	}

	return fmt.Sprintf(`You are an expert technical recruiter extracting skills from a candidate's resume.

KNOWN SKILL NAMES (reuse this exact spelling when the resume shows the skill):
%s

RESUME:
%s

List every professional skill (programming languages, frameworks, tools, platforms, methods and
soft skills) the resume demonstrates. Do not infer skills that are not supported by the text.

Return your response in the following JSON format:
{
  "skills": ["<skill>", "<skill>"]
}`, known, resumeText)
}

// BuildAnswerValidationPrompt asks for a sentiment judgement of an applicant's answer.
func (pb *PromptBuilder) BuildAnswerValidationPrompt(answer string) string {
	return fmt.Sprintf(`You are assessing how confidently a job applicant describes their experience with a skill.

APPLICANT ANSWER:
%s

Classify the answer's sentiment:
- POSITIVE: the applicant claims real, concrete experience
- NEUTRAL: vague, hedged or purely aspirational
- NEGATIVE: the applicant admits little or no experience

Return your response in the following JSON format:
{
  "label": "<POSITIVE|NEUTRAL|NEGATIVE>",
  "score": <confidence between 0 and 1>
}`, answer)
}

// BuildApplicantSummary renders the text embedded into the applicant index.
func (pb *PromptBuilder) BuildApplicantSummary(jobID string, skills []string, answers map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Job: %s\n", jobID)
	fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(skills, ", "))
	for _, skill := range sortedKeys(answers) {
		fmt.Fprintf(&sb, "%s: %s\n", skill, strings.TrimSpace(answers[skill]))
	}
	return strings.TrimSpace(sb.String())
}

func parseJSONResponse(response string, target any) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON strips markdown fences and anything around the outermost JSON object or array.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj > startObj && (startArr == -1 || startObj < startArr) {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}
