package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/asorokin/decat/internal/server/config"
	"github.com/asorokin/decat/internal/server/models"
)

func stubAWS(t *testing.T, put func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error), presignErr error) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewClient := newS3ClientFromConfig
	origNewPresign := newS3PresignClient
	origPut := putObject
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewClient
		newS3PresignClient = origNewPresign
		putObject = origPut
		presignGetObject = origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return put(in)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		return &v4.PresignedHTTPRequest{URL: "https://s3.example/" + *in.Key}, nil
	}
}

func newExportService(t *testing.T, repo *fakeEntriesRepo) *ExportService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewExportService(db, &fakeRepoManager{e: repo}, &config.Config{S3Bucket: "decat-exports"})
}

func TestExport_UploadsAndPresigns(t *testing.T) {
	var uploadedKey string
	var uploadedBody []byte

	stubAWS(t, func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		uploadedKey = *in.Key
		b, err := io.ReadAll(in.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		uploadedBody = b
		return &s3.PutObjectOutput{}, nil
	}, nil)

	repo := &fakeEntriesRepo{all: []models.Entry{{ID: 1, CreatedBy: "u-1", WorstCase: "wc"}}}
	svc := newExportService(t, repo)

	key, url, err := svc.Export(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if !strings.HasPrefix(key, "exports/u-1/") || !strings.HasSuffix(key, ".json") {
		t.Fatalf("unexpected key: %s", key)
	}
	if key != uploadedKey {
		t.Fatalf("presigned key %s does not match uploaded key %s", key, uploadedKey)
	}
	if !strings.Contains(url, key) {
		t.Fatalf("unexpected url: %s", url)
	}
	if !strings.Contains(string(uploadedBody), `"worst_case": "wc"`) {
		t.Fatalf("export body missing entry: %s", uploadedBody)
	}
}

func TestExport_UploadError(t *testing.T) {
	boom := errors.New("bucket on fire")
	stubAWS(t, func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, boom
	}, nil)

	svc := newExportService(t, &fakeEntriesRepo{})

	_, _, err := svc.Export(context.Background(), "u-1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected upload error, got %v", err)
	}
}

func TestExport_PresignError(t *testing.T) {
	boom := errors.New("presign failed")
	stubAWS(t, func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	}, boom)

	svc := newExportService(t, &fakeEntriesRepo{})

	_, _, err := svc.Export(context.Background(), "u-1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected presign error, got %v", err)
	}
}
