package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sc "github.com/asorokin/decat/internal/server/config"
	"github.com/asorokin/decat/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for tests: each AWS call goes through a package variable so the
// export flow can be exercised without a real object store.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignValidity = 15 * time.Minute

// ExportService snapshots a user's diary to the S3-compatible object store
// and hands back a short-lived presigned download link.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ExportService {
	return &ExportService{db: db, repomanager: m, config: cfg}
}

func exportStorageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("exports/%s/%d/%d/%d/%v.json", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ExportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export marshals all of the user's entries to JSON, uploads the document,
// and returns the object key plus a presigned GET URL valid for 15 minutes.
func (s *ExportService) Export(ctx context.Context, userID string) (string, string, error) {

	rows, err := s.repomanager.Entries(s.db).SelectAll(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("error selecting entries: %w", err)
	}

	body, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("error marshalling export: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := exportStorageKey(userID)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", "", fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", fmt.Errorf("error presigning export: %w", err)
	}

	return key, req.URL, nil
}
