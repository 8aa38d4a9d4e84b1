// Package storage implements the document store for verification attachments.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"mankab/internal/config"
	"mankab/internal/middleware"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// DocumentStore stores verification document attachments and hands out
// stable references (object keys) plus time-limited signed URLs for review.
type DocumentStore interface {
	// Upload stores content under a path scoped to the owning user and
	// returns the reference identifier.
	Upload(ctx context.Context, userID uint, filename string, content []byte) (string, error)
	// Remove deletes a stored document. Failures are logged and swallowed:
	// document cleanup is never on the critical path of a transition.
	Remove(ctx context.Context, ref string)
	// SignedURL produces an externally fetchable URL valid for ttl.
	SignedURL(ctx context.Context, ref string, ttl time.Duration) (string, error)
}

type s3Store struct {
	client *s3.S3
	bucket string
}

// NewS3Store builds a DocumentStore backed by S3 (or an S3-compatible
// endpoint such as MinIO when S3_ENDPOINT is set).
func NewS3Store(cfg *config.Config) (DocumentStore, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.S3Region)
	if cfg.S3Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.S3Endpoint).WithS3ForcePathStyle(true)
	}
	if cfg.S3AccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &s3Store{client: s3.New(sess), bucket: cfg.S3Bucket}, nil
}

// objectKey builds the storage path for an uploaded document. The randomized
// component keeps collisions negligible; it is not a uniqueness guarantee.
func objectKey(userID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d/%d-%s%s", userID, userID, uuid.NewString(), ext)
}

func (s *s3Store) Upload(ctx context.Context, userID uint, filename string, content []byte) (string, error) {
	key := objectKey(userID, filename)

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		middleware.DocumentStoreOps.WithLabelValues("upload", "error").Inc()
		return "", fmt.Errorf("failed to upload document %q: %w", filename, err)
	}

	middleware.DocumentStoreOps.WithLabelValues("upload", "ok").Inc()
	return key, nil
}

func (s *s3Store) Remove(ctx context.Context, ref string) {
	if ref == "" || !strings.Contains(ref, "/") {
		return
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		middleware.DocumentStoreOps.WithLabelValues("remove", "error").Inc()
		middleware.Logger.WarnContext(ctx, "failed to delete document from storage",
			slog.String("ref", ref),
			slog.String("error", err.Error()),
		)
		return
	}
	middleware.DocumentStoreOps.WithLabelValues("remove", "ok").Inc()
}

func (s *s3Store) SignedURL(ctx context.Context, ref string, ttl time.Duration) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	req.SetContext(ctx)

	url, err := req.Presign(ttl)
	if err != nil {
		middleware.DocumentStoreOps.WithLabelValues("sign", "error").Inc()
		return "", fmt.Errorf("failed to sign URL for %q: %w", ref, err)
	}
	middleware.DocumentStoreOps.WithLabelValues("sign", "ok").Inc()
	return url, nil
}
