package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/applicant-portal/internal/models"
)

const postingsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["job_id", "title", "required_skills"],
    "properties": {
      "job_id": {"type": "string", "pattern": "\\S"},
      "title": {"type": "string", "pattern": "\\S"},
      "required_skills": {"type": "array", "items": {"type": "string"}}
    },
    "additionalProperties": false
  }
}`

var postingsSchemaLoader = gojsonschema.NewStringLoader(postingsSchema)

// ParsePostings validates a JSON array of job offers and decodes it.
func ParsePostings(data []byte) ([]models.JobPosting, error) {
	result, err := gojsonschema.Validate(postingsSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read postings: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, fmt.Errorf("invalid postings: %s", strings.Join(problems, "; "))
	}

	var raw []struct {
		JobID          string   `json:"job_id"`
		Title          string   `json:"title"`
		RequiredSkills []string `json:"required_skills"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode postings: %w", err)
	}

	postings := make([]models.JobPosting, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, p := range raw {
		jobID := strings.TrimSpace(p.JobID)
		if jobID == "" {
			return nil, fmt.Errorf("job_id must not be blank")
		}
		if seen[jobID] {
			return nil, fmt.Errorf("duplicate job_id %q", jobID)
		}
		seen[jobID] = true
		postings = append(postings, models.JobPosting{
			JobID:          jobID,
			Title:          strings.TrimSpace(p.Title),
			RequiredSkills: models.SkillList(models.NormalizeSkills(p.RequiredSkills)),
		})
	}
	return postings, nil
}
