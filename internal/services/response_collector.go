package services

import "strings"

// CollectAnswers reads the draft for every missing skill, selected or not, and
// keeps only the non-blank ones.
func CollectAnswers(missing []string, drafts map[string]string) map[string]string {
	answers := make(map[string]string)
	for _, skill := range missing {
		text := strings.TrimSpace(drafts[skill])
		if text == "" {
			continue
		}
		answers[skill] = text
	}
	return answers
}
