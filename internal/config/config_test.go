package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newViper(env map[string]any) *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, value := range env {
		v.Set(key, value)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(newViper(nil))

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "keyword", cfg.Extraction.Extractor)
	assert.Equal(t, "lexicon", cfg.Extraction.Validator)
	assert.Equal(t, 0.5, cfg.Scoring.AnswerWeight)
	assert.False(t, cfg.Qdrant.Enabled())
}

func TestFromViper_GeminiKeySelectsGeminiCollaborators(t *testing.T) {
	cfg := fromViper(newViper(map[string]any{"GEMINI_API_KEY": "key"}))

	assert.Equal(t, "gemini", cfg.Extraction.Extractor)
	assert.Equal(t, "gemini", cfg.Extraction.Validator)
}

func TestFromViper_ExplicitCollaboratorsWin(t *testing.T) {
	cfg := fromViper(newViper(map[string]any{
		"GEMINI_API_KEY":   "key",
		"SKILL_EXTRACTOR":  "Keyword",
		"ANSWER_VALIDATOR": "lexicon",
		"SESSION_TTL":      "5m",
		"QDRANT_URL":       "http://localhost:6334",
	}))

	assert.Equal(t, "keyword", cfg.Extraction.Extractor)
	assert.Equal(t, "lexicon", cfg.Extraction.Validator)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Qdrant.Enabled())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := fromViper(newViper(map[string]any{"DB_HOST": "db", "DB_NAME": "portal"}))

	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=portal sslmode=disable", cfg.GetDatabaseDSN())
}
