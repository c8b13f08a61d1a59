package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/models"
)

func TestTokenize(t *testing.T) {
	tokens := tokenize("Built APIs in C++, C# and Node.js. Loves Go!")

	assert.Equal(t, []string{"built", "apis", "in", "c++", "c#", "and", "node.js", "loves", "go"}, tokens)
}

func TestMatchSkills(t *testing.T) {
	vocabulary := []string{"Go", "Python", "SQL", "Machine Learning", "C++", "Node.js", "Docker"}
	text := "Five years of go and sql. Some machine learning work, plus C++ and Node.js."

	assert.Equal(t, []string{"C++", "Go", "Machine Learning", "Node.js", "SQL"}, MatchSkills(text, vocabulary))
}

func TestMatchSkills_RequiresEveryToken(t *testing.T) {
	assert.Empty(t, MatchSkills("I enjoy learning", []string{"Machine Learning"}))
}

func TestKeywordSkillExtractor(t *testing.T) {
	postings := newFakePostings(map[string][]string{
		"J1": {"Python", "SQL"},
		"J2": {"Docker"},
	})
	extractor := NewKeywordSkillExtractor(&fakePDFParser{text: "Data analyst: SQL, Excel, Docker"}, postings)

	skills, err := extractor.ExtractSkills(ctx, &models.ResumeFile{Content: []byte("%PDF")})

	require.NoError(t, err)
	assert.Equal(t, []string{"Docker", "SQL"}, skills)
}

func TestKeywordSkillExtractor_ParseFailure(t *testing.T) {
	extractor := NewKeywordSkillExtractor(&fakePDFParser{err: errRemote}, newFakePostings(nil))

	_, err := extractor.ExtractSkills(ctx, &models.ResumeFile{})

	assert.ErrorIs(t, err, errRemote)
}

func TestGeminiSkillExtractor(t *testing.T) {
	gemini := &fakeGemini{text: "```json\n{\"skills\": [\"sql\", \"Tableau\", \" \", \"SQL\"]}\n```"}
	postings := newFakePostings(map[string][]string{"J1": {"Python", "SQL"}})
	extractor := NewGeminiSkillExtractor(gemini, &fakePDFParser{text: "resume text"}, postings, zap.NewNop())

	skills, err := extractor.ExtractSkills(ctx, &models.ResumeFile{Content: []byte("%PDF")})

	require.NoError(t, err)
	assert.Equal(t, []string{"SQL", "Tableau"}, skills)
	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "resume text")
	assert.Contains(t, gemini.prompts[0], "Python, SQL")
}

func TestGeminiSkillExtractor_BadResponse(t *testing.T) {
	gemini := &fakeGemini{text: "I cannot help with that"}
	extractor := NewGeminiSkillExtractor(gemini, &fakePDFParser{text: "resume"}, newFakePostings(nil), zap.NewNop())

	_, err := extractor.ExtractSkills(ctx, &models.ResumeFile{})

	assert.Error(t, err)
}
