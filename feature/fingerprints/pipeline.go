package fingerprints

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ImportResult reports the outcome of one batch import.
type ImportResult struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// Pipeline orchestrates batch imports: per-record validation and
// normalization through the variant's adapter, followed by a single bulk
// upsert. Invalid records are counted and skipped, never aborting the batch;
// only container-level (structural) problems reject the whole import.
type Pipeline struct {
	store  *Store
	logger *zap.Logger
}

// NewPipeline creates an import pipeline on top of the store.
func NewPipeline(store *Store, logger *zap.Logger) *Pipeline {
	return &Pipeline{store: store, logger: logger}
}

// ImportBatch validates and persists an already-flattened record sequence.
func (p *Pipeline) ImportBatch(ctx context.Context, v Variant, raws []RawRecord) (ImportResult, error) {
	e, err := entryFor(v)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	staged := make([]models.Record, 0, len(raws))
	for _, raw := range raws {
		if !e.adapter.Validate(raw) {
			result.Failed++
			continue
		}
		staged = append(staged, e.adapter.ToNormalized(raw))
	}

	written, err := p.store.BulkUpsert(ctx, v, staged)
	if err != nil {
		return result, err
	}
	result.Created = int(written)

	p.logger.Info("Fingerprint batch imported",
		zap.String("variant", string(v)),
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// ImportBytes decodes raw file content, flattens the variant's container
// shape, and runs ImportBatch. Decode and flatten failures are structural:
// nothing is written and the error carries the parse detail.
func (p *Pipeline) ImportBytes(ctx context.Context, v Variant, data []byte, enc Encoding) (ImportResult, error) {
	e, err := entryFor(v)
	if err != nil {
		return ImportResult{}, err
	}

	doc, err := DecodeDocument(data, enc)
	if err != nil {
		return ImportResult{}, err
	}

	raws, err := e.adapter.Flatten(doc)
	if err != nil {
		return ImportResult{}, err
	}

	return p.ImportBatch(ctx, v, raws)
}

// DecodeDocument parses file bytes in the declared encoding into a generic
// document value.
func DecodeDocument(data []byte, enc Encoding) (any, error) {
	var doc any
	switch enc {
	case EncodingYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, structuralErr("invalid YAML document", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, structuralErr("invalid JSON document", err)
		}
	}
	return doc, nil
}

// EncodingForFilename guesses the payload encoding from an uploaded file's
// name, defaulting to the variant's canonical encoding.
func EncodingForFilename(name string, fallback Encoding) Encoding {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return EncodingYAML
	case strings.HasSuffix(lower, ".json"):
		return EncodingJSON
	default:
		return fallback
	}
}
