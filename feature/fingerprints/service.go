package fingerprints

import (
	"context"
	"fmt"

	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service ties the import pipeline, export engine and store together behind
// the operations the HTTP layer and the CLI commands need.
type Service struct {
	store    *Store
	pipeline *Pipeline
	engine   *Engine
	mirror   *Mirror
	logger   *zap.Logger
}

// NewService creates a fingerprint service. mirror may be nil when the
// export mirror is disabled.
func NewService(db *gorm.DB, mirror *Mirror, logger *zap.Logger) *Service {
	store := NewStore(db)
	return &Service{
		store:    store,
		pipeline: NewPipeline(store, logger),
		engine:   NewEngine(store, logger),
		mirror:   mirror,
		logger:   logger,
	}
}

// Store exposes the underlying store, mainly for the cache manager.
func (s *Service) Store() *Store { return s.store }

// Engine exposes the export engine, mainly for the cache manager.
func (s *Service) Engine() *Engine { return s.engine }

// List returns one page of records matching the filter expression.
func (s *Service) List(ctx context.Context, v Variant, filter string, page, pageSize int) ([]models.Record, int64, error) {
	conds, err := ParseFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	return s.store.List(ctx, v, conds, page, pageSize)
}

// Count returns the number of stored records for the variant.
func (s *Service) Count(ctx context.Context, v Variant) (int64, error) {
	return s.store.Count(ctx, v)
}

// Version returns the current content token for the variant.
func (s *Service) Version(ctx context.Context, v Variant) (string, error) {
	return s.store.Version(ctx, v)
}

// Create validates and upserts a single raw record. An existing record with
// the same unique key is overwritten.
func (s *Service) Create(ctx context.Context, v Variant, raw RawRecord) (models.Record, error) {
	e, err := entryFor(v)
	if err != nil {
		return nil, err
	}
	if !e.adapter.Validate(raw) {
		return nil, fmt.Errorf("invalid %s fingerprint record", v)
	}
	rec := e.adapter.ToNormalized(raw)
	if _, err := s.store.BulkUpsert(ctx, v, []models.Record{rec}); err != nil {
		return nil, err
	}
	s.republish(ctx, v)
	return rec, nil
}

// Update validates the raw record and overwrites the row with the given id.
// Returns the updated record as stored.
func (s *Service) Update(ctx context.Context, v Variant, id uint, raw RawRecord) (models.Record, error) {
	e, err := entryFor(v)
	if err != nil {
		return nil, err
	}
	if !e.adapter.Validate(raw) {
		return nil, fmt.Errorf("invalid %s fingerprint record", v)
	}
	if err := s.store.UpdateByID(ctx, v, id, e.adapter.ToNormalized(raw)); err != nil {
		return nil, err
	}
	s.republish(ctx, v)
	return s.store.GetByID(ctx, v, id)
}

// Delete removes one record by its numeric id.
func (s *Service) Delete(ctx context.Context, v Variant, id uint) error {
	if err := s.store.DeleteByID(ctx, v, id); err != nil {
		return err
	}
	s.republish(ctx, v)
	return nil
}

// ImportBatch imports an already-flat record slice (batch create API).
func (s *Service) ImportBatch(ctx context.Context, v Variant, raws []RawRecord) (ImportResult, error) {
	result, err := s.pipeline.ImportBatch(ctx, v, raws)
	if err == nil && result.Created > 0 {
		s.republish(ctx, v)
	}
	return result, err
}

// ImportFile imports uploaded file content, inferring the encoding from the
// filename with the variant's canonical encoding as fallback.
func (s *Service) ImportFile(ctx context.Context, v Variant, filename string, data []byte) (ImportResult, error) {
	enc := EncodingForFilename(filename, v.Encoding())
	result, err := s.pipeline.ImportBytes(ctx, v, data, enc)
	if err == nil && result.Created > 0 {
		s.republish(ctx, v)
	}
	return result, err
}

// Export serializes the complete current record set in the variant's wire
// format and returns the bytes together with the record count.
func (s *Service) Export(ctx context.Context, v Variant) ([]byte, int, error) {
	return s.engine.ExportBytes(ctx, v)
}

// DeleteAll removes every record of the variant.
func (s *Service) DeleteAll(ctx context.Context, v Variant) error {
	if err := s.store.DeleteAll(ctx, v); err != nil {
		return err
	}
	s.republish(ctx, v)
	return nil
}

// BulkDelete removes the records whose unique keys are listed.
func (s *Service) BulkDelete(ctx context.Context, v Variant, keys []string) error {
	if err := s.store.BulkDelete(ctx, v, keys); err != nil {
		return err
	}
	s.republish(ctx, v)
	return nil
}

// republish refreshes the variant's object-storage mirror after a mutation.
// Mirror failures are logged, not surfaced: the store is the source of truth
// and workers fall back to the API export.
func (s *Service) republish(ctx context.Context, v Variant) {
	if s.mirror == nil {
		return
	}
	data, _, err := s.engine.ExportBytes(ctx, v)
	if err != nil {
		s.logger.Warn("Failed to export for mirror", zap.String("variant", string(v)), zap.Error(err))
		return
	}
	if err := s.mirror.Publish(ctx, v, data); err != nil {
		s.logger.Warn("Failed to publish to mirror", zap.String("variant", string(v)), zap.Error(err))
	}
}
