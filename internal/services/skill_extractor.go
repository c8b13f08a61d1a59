package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/models"
)

// SkillExtractor derives the set of skills a resume demonstrates.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, resume *models.ResumeFile) ([]string, error)
}

// SkillVocabulary supplies the skill names postings use.
type SkillVocabulary interface {
	AllRequiredSkills(ctx context.Context) ([]string, error)
}

type geminiSkillExtractor struct {
	gemini     GeminiService
	pdfParser  PDFParserService
	vocabulary SkillVocabulary
	prompts    *PromptBuilder
	logger     *zap.Logger
}

func NewGeminiSkillExtractor(gemini GeminiService, pdfParser PDFParserService, vocabulary SkillVocabulary, logger *zap.Logger) SkillExtractor {
	return &geminiSkillExtractor{
		gemini:     gemini,
		pdfParser:  pdfParser,
		vocabulary: vocabulary,
		prompts:    NewPromptBuilder(),
		logger:     logger,
	}
}

func (e *geminiSkillExtractor) ExtractSkills(ctx context.Context, resume *models.ResumeFile) ([]string, error) {
	text, err := e.pdfParser.ExtractTextFromBytes(resume.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	vocabulary, err := e.vocabulary.AllRequiredSkills(ctx)
	if err != nil {
		// The hint is optional; extraction still works without it.
		e.logger.Warn("skill vocabulary unavailable", zap.Error(err))
		vocabulary = nil
	}

	response, err := e.gemini.GenerateText(ctx, e.prompts.BuildSkillExtractionPrompt(text, vocabulary), 0.1)
	if err != nil {
		return nil, fmt.Errorf("failed to extract skills: %w", err)
	}

	var result struct {
		Skills []string `json:"skills"`
	}
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("failed to parse skill extraction response: %w", err)
	}

	return models.NormalizeSkills(alignToVocabulary(result.Skills, vocabulary)), nil
}

// alignToVocabulary rewrites case-insensitive matches to the vocabulary's spelling.
func alignToVocabulary(skills, vocabulary []string) []string {
	canonical := make(map[string]string, len(vocabulary))
	for _, v := range vocabulary {
		canonical[strings.ToLower(v)] = v
	}

	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if v, ok := canonical[strings.ToLower(strings.TrimSpace(skill))]; ok {
			skill = v
		}
		out = append(out, skill)
	}
	return out
}

type keywordSkillExtractor struct {
	pdfParser  PDFParserService
	vocabulary SkillVocabulary
}

// NewKeywordSkillExtractor matches resume text against the skills postings ask for.
func NewKeywordSkillExtractor(pdfParser PDFParserService, vocabulary SkillVocabulary) SkillExtractor {
	return &keywordSkillExtractor{
		pdfParser:  pdfParser,
		vocabulary: vocabulary,
	}
}

func (e *keywordSkillExtractor) ExtractSkills(ctx context.Context, resume *models.ResumeFile) ([]string, error) {
	text, err := e.pdfParser.ExtractTextFromBytes(resume.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	vocabulary, err := e.vocabulary.AllRequiredSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill vocabulary: %w", err)
	}

	return MatchSkills(text, vocabulary), nil
}

// MatchSkills returns the vocabulary entries whose every token occurs in text.
func MatchSkills(text string, vocabulary []string) []string {
	words := make(map[string]bool)
	for _, token := range tokenize(text) {
		words[token] = true
	}

	var matched []string
	for _, skill := range vocabulary {
		tokens := tokenize(skill)
		if len(tokens) == 0 {
			continue
		}
		found := true
		for _, token := range tokens {
			if !words[token] {
				found = false
				break
			}
		}
		if found {
			matched = append(matched, skill)
		}
	}

	return models.NormalizeSkills(matched)
}

// tokenize lowercases text and splits it into words, keeping + # . so that
// "C++", "C#" and "Node.js" survive as single tokens.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := strings.Trim(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
