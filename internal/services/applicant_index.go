package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/models"
)

// ApplicantIndex makes submitted applications searchable by free text.
type ApplicantIndex interface {
	InitCollection(ctx context.Context) error
	IndexApplication(ctx context.Context, record *models.ApplicationRecord) error
	SearchSimilar(ctx context.Context, query string, limit int) ([]models.ApplicantMatch, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type qdrantPointsAPI interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

type applicantIndex struct {
	client         qdrantPointsAPI
	embedder       Embedder
	prompts        *PromptBuilder
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewApplicantIndex(urlStr, apiKey, collectionName string, embedder Embedder, logger *zap.Logger) (ApplicantIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return newApplicantIndex(client, embedder, collectionName, logger), nil
}

func newApplicantIndex(client qdrantPointsAPI, embedder Embedder, collectionName string, logger *zap.Logger) *applicantIndex {
	return &applicantIndex{
		client:         client,
		embedder:       embedder,
		prompts:        NewPromptBuilder(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
		logger:         logger,
	}
}

// InitCollection implements ApplicantIndex.
func (q *applicantIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Debug("qdrant collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// IndexApplication implements ApplicantIndex. The point id is the applicant id.
func (q *applicantIndex) IndexApplication(ctx context.Context, record *models.ApplicationRecord) error {
	applicantID, err := uuid.Parse(record.ApplicantID)
	if err != nil {
		return fmt.Errorf("invalid applicant id: %w", err)
	}

	summary := q.prompts.BuildApplicantSummary(record.JobID, record.ExtractedSkills, record.Answers)
	embedding, err := q.embedder.GenerateEmbedding(ctx, summary)
	if err != nil {
		return fmt.Errorf("failed to embed application: %w", err)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(applicantID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"applicant_id":   record.ApplicantID,
			"job_id":         record.JobID,
			"skills":         strings.Join(record.ExtractedSkills, ", "),
			"matching_score": record.MatchingScore,
			"summary":        summary,
		}),
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements ApplicantIndex.
func (q *applicantIndex) SearchSimilar(ctx context.Context, query string, limit int) ([]models.ApplicantMatch, error) {
	embedding, err := q.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]models.ApplicantMatch, 0, len(points))
	for _, point := range points {
		matches = append(matches, models.ApplicantMatch{
			ApplicantID: payloadString(point.Payload, "applicant_id"),
			JobID:       payloadString(point.Payload, "job_id"),
			Score:       point.Score,
			Summary:     payloadString(point.Payload, "summary"),
		})
	}

	return matches, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			return val.StringValue
		}
	}
	return ""
}
