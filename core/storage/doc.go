// Package storage provides the object-storage client used by the export mirror.
//
// It wraps the MinIO SDK behind a small Client interface so the mirror can be
// tested against the mock in storage/mocks. Exported fingerprint files are
// published into the configured bucket so scan workers can fetch them over S3
// instead of the management API.
package storage
