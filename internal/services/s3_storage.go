package services

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"alfredoptarigan/applicant-portal/internal/config"
)

type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3ResumeStore struct {
	client s3PutObjectAPI
	bucket string
}

// NewS3ResumeStore stores resumes in an S3-compatible bucket (AWS, R2, MinIO).
func NewS3ResumeStore(ctx context.Context, cfg config.S3Config) (ResumeStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 storage driver")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3ResumeStore(client, cfg.Bucket), nil
}

func newS3ResumeStore(client s3PutObjectAPI, bucket string) *s3ResumeStore {
	return &s3ResumeStore{client: client, bucket: bucket}
}

func (s *s3ResumeStore) key(applicantID uuid.UUID) string {
	return path.Join(resumeDir, applicantID.String()+".pdf")
}

func (s *s3ResumeStore) Location(applicantID uuid.UUID) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key(applicantID))
}

func (s *s3ResumeStore) Save(ctx context.Context, applicantID uuid.UUID, content []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(applicantID)),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	return s.Location(applicantID), nil
}
