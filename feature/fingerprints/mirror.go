package fingerprints

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/Spritualkb/xingrin/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Mirror publishes exported fingerprint files into an object-storage bucket
// so container workers can fetch them over S3 instead of the management API.
type Mirror struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewMirror creates a mirror that writes under prefix/ in the given bucket.
func NewMirror(client storage.Client, bucket, prefix string, logger *zap.Logger) *Mirror {
	return &Mirror{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// EnsureBucket creates the target bucket if it does not exist yet.
func (m *Mirror) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check mirror bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create mirror bucket: %w", err)
	}
	return nil
}

// ObjectName returns the object key the variant's export is published under.
func (m *Mirror) ObjectName(v Variant) string {
	return path.Join(m.prefix, v.ExportFilename())
}

// Publish uploads one variant's serialized export.
func (m *Mirror) Publish(ctx context.Context, v Variant, data []byte) error {
	contentType := "application/json"
	if v.Encoding() == EncodingYAML {
		contentType = "application/x-yaml"
	}

	objectName := m.ObjectName(v)
	_, err := m.client.PutObject(ctx, m.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s to mirror: %w", v, err)
	}

	m.logger.Info("Fingerprint library mirrored",
		zap.String("variant", string(v)),
		zap.String("object", objectName),
		zap.Int("bytes", len(data)),
	)
	return nil
}
