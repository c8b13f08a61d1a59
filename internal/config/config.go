package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	S3         S3Config
	Gemini     GeminiConfig
	Qdrant     QdrantConfig
	Redis      RedisConfig
	Session    SessionConfig
	Extraction ExtractionConfig
	Scoring    ScoringConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	AllowOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type StorageConfig struct {
	Driver      string
	UploadPath  string
	MaxFileSize int64
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

// Enabled reports whether the applicant index should be wired.
func (q QdrantConfig) Enabled() bool {
	return strings.TrimSpace(q.URL) != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type ExtractionConfig struct {
	Extractor string
	Validator string
}

type ScoringConfig struct {
	AnswerWeight float64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

var defaults = map[string]any{
	"PORT":                "3000",
	"ENV":                 "development",
	"ALLOW_ORIGIN":        "*",
	"DB_HOST":             "localhost",
	"DB_PORT":             "5432",
	"DB_USER":             "postgres",
	"DB_PASSWORD":         "postgres",
	"DB_NAME":             "applicant_portal",
	"DB_SSLMODE":          "disable",
	"STORAGE_DRIVER":      "local",
	"UPLOAD_PATH":         "./data",
	"MAX_FILE_SIZE":       10485760,
	"S3_REGION":           "auto",
	"GEMINI_MODEL":        "gemini-2.5-flash",
	"GEMINI_EMBED_MODEL":  "text-embedding-004",
	"QDRANT_COLLECTION":   "applicants",
	"REDIS_ADDR":          "localhost:6379",
	"REDIS_DB":            0,
	"SESSION_STORE":       "memory",
	"SESSION_TTL":         "30m",
	"SKILL_EXTRACTOR":     "",
	"ANSWER_VALIDATOR":    "",
	"SCORE_ANSWER_WEIGHT": 0.5,
	"LOG_JSON":            false,
	"LOG_DEBUG":           false,
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			Env:         v.GetString("ENV"),
			AllowOrigin: v.GetString("ALLOW_ORIGIN"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
			UploadPath:  v.GetString("UPLOAD_PATH"),
			MaxFileSize: v.GetInt64("MAX_FILE_SIZE"),
		},
		S3: S3Config{
			Endpoint:  v.GetString("S3_ENDPOINT"),
			Region:    v.GetString("S3_REGION"),
			Bucket:    v.GetString("S3_BUCKET"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
		},
		Gemini: GeminiConfig{
			APIKey:     v.GetString("GEMINI_API_KEY"),
			Model:      v.GetString("GEMINI_MODEL"),
			EmbedModel: v.GetString("GEMINI_EMBED_MODEL"),
		},
		Qdrant: QdrantConfig{
			URL:        v.GetString("QDRANT_URL"),
			APIKey:     v.GetString("QDRANT_API_KEY"),
			Collection: v.GetString("QDRANT_COLLECTION"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Store: strings.ToLower(v.GetString("SESSION_STORE")),
			TTL:   v.GetDuration("SESSION_TTL"),
		},
		Extraction: ExtractionConfig{
			Extractor: strings.ToLower(v.GetString("SKILL_EXTRACTOR")),
			Validator: strings.ToLower(v.GetString("ANSWER_VALIDATOR")),
		},
		Scoring: ScoringConfig{
			AnswerWeight: v.GetFloat64("SCORE_ANSWER_WEIGHT"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("LOG_JSON"),
			Debug: v.GetBool("LOG_DEBUG"),
		},
	}

	// Without a Gemini key the deterministic collaborators are the only option.
	if cfg.Extraction.Extractor == "" {
		cfg.Extraction.Extractor = "keyword"
		if cfg.Gemini.APIKey != "" {
			cfg.Extraction.Extractor = "gemini"
		}
	}
	if cfg.Extraction.Validator == "" {
		cfg.Extraction.Validator = "lexicon"
		if cfg.Gemini.APIKey != "" {
			cfg.Extraction.Validator = "gemini"
		}
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 30 * time.Minute
	}

	return cfg
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
