package services

import (
	"math"

	"alfredoptarigan/applicant-portal/internal/models"
)

// Scorer computes the matching score of an application.
type Scorer interface {
	Score(extracted []string, validated map[string]models.Validation, required []string) float64
}

type weightedScorer struct {
	answerWeight float64
}

// NewWeightedScorer counts each matched required skill as 1 and each validated
// answer as answerWeight times its credit, scaled to 0-100.
func NewWeightedScorer(answerWeight float64) Scorer {
	return &weightedScorer{answerWeight: answerWeight}
}

func (s *weightedScorer) Score(extracted []string, validated map[string]models.Validation, required []string) float64 {
	required = models.NormalizeSkills(required)
	if len(required) == 0 {
		return 100
	}

	have := make(map[string]bool, len(extracted))
	for _, skill := range models.NormalizeSkills(extracted) {
		have[skill] = true
	}

	var points float64
	for _, skill := range required {
		if have[skill] {
			points++
			continue
		}
		if v, ok := validated[skill]; ok {
			points += s.answerWeight * credit(v)
		}
	}

	score := 100 * points / float64(len(required))
	return round2(math.Min(score, 100))
}

func credit(v models.Validation) float64 {
	switch v.Label {
	case models.LabelPositive:
		return v.Score
	case models.LabelNeutral:
		return v.Score / 2
	default:
		return 0
	}
}
