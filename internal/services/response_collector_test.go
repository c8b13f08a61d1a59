package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectAnswers(t *testing.T) {
	missing := []string{"Docker", "Kubernetes", "Python"}
	drafts := map[string]string{
		"Python":     "  3 years of Django  ",
		"Docker":     "   ",
		"Kubernetes": "",
		"Rust":       "not a missing skill",
	}

	answers := CollectAnswers(missing, drafts)

	assert.Equal(t, map[string]string{"Python": "3 years of Django"}, answers)
}

func TestCollectAnswers_NoDrafts(t *testing.T) {
	answers := CollectAnswers([]string{"Python"}, nil)

	assert.NotNil(t, answers)
	assert.Empty(t, answers)
}
