package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/echolens/echolens/internal/models"
)

const presignTTL = 24 * time.Hour

// Store persists finished reports to S3 and hands out time-limited download
// links.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewStore(client *s3.Client) *Store {
	bucket := os.Getenv("REPORTS_BUCKET_NAME")
	if bucket == "" {
		bucket = "social-listening-reports"
	}
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}
}

// Save uploads the report as pretty-printed JSON under
// reports/<type>_<timestamp>.json and returns a presigned URL valid for 24h.
func (s *Store) Save(ctx context.Context, report models.Report) (string, error) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	key := fmt.Sprintf("reports/%s_%s.json", report.ReportType, time.Now().UTC().Format("20060102_150405"))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"report-type":  report.ReportType,
			"generated-at": report.GeneratedAt,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}

	presigned, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign report %s: %w", key, err)
	}

	slog.Info("[ReportStore] Report saved to S3",
		slog.String("bucket", s.bucket),
		slog.String("key", key))
	return presigned.URL, nil
}
