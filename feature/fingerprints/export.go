package fingerprints

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Engine reconstructs a variant's external wire format from the store. Its
// single correctness contract is the round-trip property: exporting what was
// imported reproduces the original file, modulo key ordering and optional
// fields that held their default value.
type Engine struct {
	store  *Store
	logger *zap.Logger
}

// NewEngine creates an export engine on top of the store.
func NewEngine(store *Store, logger *zap.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Export reads the complete current record set and rebuilds the variant's
// container shape: a flat record array for most variants, the keyed
// {"apps": {...}} object for Wappalyzer. It returns the wire value and the
// number of records it contains.
func (e *Engine) Export(ctx context.Context, v Variant) (any, int, error) {
	ent, err := entryFor(v)
	if err != nil {
		return nil, 0, err
	}

	recs, err := e.store.All(ctx, v)
	if err != nil {
		return nil, 0, fmt.Errorf("export failed for %s: %w", v, err)
	}

	raws := make([]RawRecord, 0, len(recs))
	for _, rec := range recs {
		raws = append(raws, ent.adapter.ToRaw(rec))
	}
	return ent.adapter.Collapse(raws), len(raws), nil
}

// ExportBytes serializes the current record set in the variant's canonical
// encoding (JSON, or YAML for ARL).
func (e *Engine) ExportBytes(ctx context.Context, v Variant) ([]byte, int, error) {
	wire, count, err := e.Export(ctx, v)
	if err != nil {
		return nil, 0, err
	}
	data, err := encodeWire(v.Encoding(), wire)
	if err != nil {
		return nil, 0, fmt.Errorf("export encoding failed for %s: %w", v, err)
	}
	return data, count, nil
}

// ExportToFile writes the serialized record set to path atomically: the
// content goes to a temporary file in the same directory first and is then
// renamed into place, so a concurrent reader never observes a half-written
// file. Returns the number of records written.
func (e *Engine) ExportToFile(ctx context.Context, v Variant, path string) (int, error) {
	data, count, err := e.ExportBytes(ctx, v)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary export file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to close export file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to move export file into place: %w", err)
	}

	e.logger.Info("Fingerprint library exported",
		zap.String("variant", string(v)),
		zap.String("path", path),
		zap.Int("records", count),
	)
	return count, nil
}

func encodeWire(enc Encoding, wire any) ([]byte, error) {
	if enc == EncodingYAML {
		return yaml.Marshal(wire)
	}
	return json.Marshal(wire)
}
