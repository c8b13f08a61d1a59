package services

import "alfredoptarigan/applicant-portal/internal/models"

// MissingSkills returns required − extracted, sorted.
func MissingSkills(required, extracted []string) []string {
	have := make(map[string]bool, len(extracted))
	for _, skill := range models.NormalizeSkills(extracted) {
		have[skill] = true
	}

	missing := []string{}
	for _, skill := range models.NormalizeSkills(required) {
		if !have[skill] {
			missing = append(missing, skill)
		}
	}
	return missing
}
