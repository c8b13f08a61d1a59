package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
)

func TestLexiconAnswerValidator(t *testing.T) {
	validator := NewLexiconAnswerValidator()

	tests := []struct {
		text  string
		label string
		score float64
	}{
		{"I have 3 years of production Python experience", models.LabelPositive, 1},
		{"I have never used it", models.LabelNegative, 1},
		{"Maybe", models.LabelNeutral, 0.5},
		{"I built a few tools but I'm still a beginner", models.LabelNeutral, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := validator.Validate(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.label, v.Label)
			assert.InDelta(t, tt.score, v.Score, 0.001)
		})
	}
}

func TestLexiconAnswerValidator_AnyScript(t *testing.T) {
	validator := NewLexiconAnswerValidator()

	for _, text := range []string{"Опыт работы пять лет", "Έχω εμπειρία", "—", " ... "} {
		t.Run(text, func(t *testing.T) {
			v, err := validator.Validate(ctx, text)
			require.NoError(t, err)
			assert.Equal(t, models.Validation{Label: models.LabelNeutral, Score: 0.5}, v)
		})
	}
}

func TestGeminiAnswerValidator(t *testing.T) {
	gemini := &fakeGemini{text: `{"label": "positive", "score": 1.7}`}

	v, err := NewGeminiAnswerValidator(gemini).Validate(ctx, "Shipped two Django services")

	require.NoError(t, err)
	assert.Equal(t, models.Validation{Label: models.LabelPositive, Score: 1}, v)
	assert.Contains(t, gemini.prompts[0], "Shipped two Django services")
}

func TestGeminiAnswerValidator_UnknownLabel(t *testing.T) {
	gemini := &fakeGemini{text: `{"label": "MIXED", "score": 0.4}`}

	_, err := NewGeminiAnswerValidator(gemini).Validate(ctx, "text")

	assert.Error(t, err)
}

func TestValidateAnswers(t *testing.T) {
	validator := &fakeValidator{results: map[string]models.Validation{
		"no idea": {Label: models.LabelNegative, Score: 0.8},
	}}

	validated, err := ValidateAnswers(ctx, validator, map[string]string{
		"Python": "3 years",
		"Docker": "no idea",
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]models.Validation{
		"Python": {Label: models.LabelPositive, Score: 0.9},
		"Docker": {Label: models.LabelNegative, Score: 0.8},
	}, validated)
	assert.Equal(t, []string{"no idea", "3 years"}, validator.seen)
}

func TestValidateAnswers_Failure(t *testing.T) {
	validator := &fakeValidator{err: errRemote}

	validated, err := ValidateAnswers(ctx, validator, map[string]string{"Python": "3 years"})

	assert.Nil(t, validated)
	assert.True(t, apperror.Is(err, apperror.CodeValidationFailure))
	assert.ErrorIs(t, err, errRemote)
}
