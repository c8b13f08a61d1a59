package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
)

// AnswerValidator judges one free-text answer.
type AnswerValidator interface {
	Validate(ctx context.Context, text string) (models.Validation, error)
}

// ValidateAnswers runs every answer through the validator. The first failure aborts the whole batch.
func ValidateAnswers(ctx context.Context, validator AnswerValidator, answers map[string]string) (map[string]models.Validation, error) {
	validated := make(map[string]models.Validation, len(answers))
	for _, skill := range sortedKeys(answers) {
		validation, err := validator.Validate(ctx, answers[skill])
		if err != nil {
			collaboratorFailures.WithLabelValues("validation").Inc()
			return nil, apperror.ValidationFailure(fmt.Sprintf("failed to validate answer for %s", skill), err)
		}
		validated[skill] = validation
	}
	return validated, nil
}

type geminiAnswerValidator struct {
	gemini  GeminiService
	prompts *PromptBuilder
}

func NewGeminiAnswerValidator(gemini GeminiService) AnswerValidator {
	return &geminiAnswerValidator{
		gemini:  gemini,
		prompts: NewPromptBuilder(),
	}
}

func (v *geminiAnswerValidator) Validate(ctx context.Context, text string) (models.Validation, error) {
	response, err := v.gemini.GenerateText(ctx, v.prompts.BuildAnswerValidationPrompt(text), 0)
	if err != nil {
		return models.Validation{}, fmt.Errorf("failed to generate answer validation: %w", err)
	}

	var result models.Validation
	if err := parseJSONResponse(response, &result); err != nil {
		return models.Validation{}, fmt.Errorf("failed to parse answer validation response: %w", err)
	}

	return normalizeValidation(result)
}

func normalizeValidation(v models.Validation) (models.Validation, error) {
	v.Label = strings.ToUpper(strings.TrimSpace(v.Label))
	switch v.Label {
	case models.LabelPositive, models.LabelNeutral, models.LabelNegative:
	default:
		return models.Validation{}, fmt.Errorf("unknown validation label %q", v.Label)
	}
	v.Score = math.Max(0, math.Min(1, v.Score))
	return v, nil
}

var (
	positiveWords = wordSet(
		"built", "designed", "developed", "led", "shipped", "delivered", "implemented", "maintained",
		"years", "production", "professional", "expert", "advanced", "proficient", "experienced",
		"strong", "extensive", "deployed", "architected", "optimized", "mentored", "certified", "daily",
	)
	negativeWords = wordSet(
		"no", "not", "never", "none", "little", "limited", "basic", "beginner", "unfamiliar",
		"learning", "want", "hope", "plan", "haven't", "havent", "don't", "dont", "lack",
	)
)

type lexiconAnswerValidator struct{}

// NewLexiconAnswerValidator scores answers by counting experience and hedging words.
func NewLexiconAnswerValidator() AnswerValidator {
	return &lexiconAnswerValidator{}
}

func (v *lexiconAnswerValidator) Validate(ctx context.Context, text string) (models.Validation, error) {
	// Answers with no recognised words, in any script, fall through to NEUTRAL.
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})

	var pos, neg int
	for _, token := range tokens {
		switch {
		case positiveWords[token]:
			pos++
		case negativeWords[token]:
			neg++
		}
	}

	total := float64(pos + neg)
	switch {
	case pos > neg:
		return models.Validation{Label: models.LabelPositive, Score: round2(float64(pos) / total)}, nil
	case neg > pos:
		return models.Validation{Label: models.LabelNegative, Score: round2(float64(neg) / total)}, nil
	default:
		return models.Validation{Label: models.LabelNeutral, Score: 0.5}, nil
	}
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
