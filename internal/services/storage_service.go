// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/noodl/inventory/internal/config"
)

// ErrStorageDisabled is returned when no S3 credentials are configured.
var ErrStorageDisabled = errors.New("report storage is not configured")

type StorageService struct {
	s3Client s3iface.S3API
	config   config.AWSConfig
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(cfg config.AWSConfig) (*StorageService, error) {
	if cfg.AccessKeyID == "" {
		// Reports can still be downloaded, just not archived
		return &StorageService{config: cfg}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewStorageServiceWithClient(s3.New(sess), cfg), nil
}

func NewStorageServiceWithClient(client s3iface.S3API, cfg config.AWSConfig) *StorageService {
	return &StorageService{
		s3Client: client,
		config:   cfg,
	}
}

func (s *StorageService) Enabled() bool {
	return s != nil && s.s3Client != nil
}

// UploadReport stores a generated report under the configured prefix, keyed
// by the day it was generated.
func (s *StorageService) UploadReport(ctx context.Context, name string, generatedAt time.Time, contentType string, body []byte) (*UploadResult, error) {
	if !s.Enabled() {
		return nil, ErrStorageDisabled
	}

	key := s.reportKey(name, generatedAt)
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.ReportBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(body)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) reportKey(name string, generatedAt time.Time) string {
	filename := fmt.Sprintf("%s_%s", generatedAt.UTC().Format("20060102T150405Z"), name)
	prefix := strings.Trim(s.config.ReportPrefix, "/")
	if prefix == "" {
		return fmt.Sprintf("%s/%s", generatedAt.UTC().Format("2006/01/02"), filename)
	}
	return fmt.Sprintf("%s/%s/%s", prefix, generatedAt.UTC().Format("2006/01/02"), filename)
}

func (s *StorageService) getS3URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.ReportBucket, s.config.Region, key)
}
