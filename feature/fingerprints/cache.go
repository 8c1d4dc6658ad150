package fingerprints

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// CacheManager keeps worker-local copies of exported fingerprint files in
// sync with the central store. Each variant owns a (data file, version
// marker) pair under the configured base directory; Ensure compares the
// marker against the store's current content token and only re-exports on a
// mismatch.
//
// Workers run an arbitrary number of these managers with no coordination.
// The check-then-export sequence is deliberately not atomic as a whole: a
// worker may export a version that is stale by the time it finishes, and
// will self-correct on its next Ensure call. Only the file writes themselves
// are atomic (temp file + rename).
type CacheManager struct {
	baseDir string
	store   *Store
	engine  *Engine
	logger  *zap.Logger
}

// NewCacheManager creates a cache manager rooted at baseDir. The base path
// is injected rather than read from global configuration so the manager can
// be exercised in isolation.
func NewCacheManager(baseDir string, store *Store, engine *Engine, logger *zap.Logger) *CacheManager {
	return &CacheManager{
		baseDir: baseDir,
		store:   store,
		engine:  engine,
		logger:  logger,
	}
}

// DataPath returns the local data file path for the variant.
func (m *CacheManager) DataPath(v Variant) string {
	return filepath.Join(m.baseDir, v.CacheFilename())
}

// markerPath returns the version marker file path for the variant.
func (m *CacheManager) markerPath(v Variant) string {
	return filepath.Join(m.baseDir, v.MarkerFilename())
}

// Ensure returns the path of an up-to-date local fingerprint file for the
// variant, exporting a fresh copy only when the stored version marker does
// not match the store's current content token.
//
// When the export fails but a previously synced file still exists, that
// stale file is returned as a best-effort fallback; the error is only
// surfaced when there is nothing local to scan with.
func (m *CacheManager) Ensure(ctx context.Context, v Variant) (string, error) {
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	dataPath := m.DataPath(v)
	markerPath := m.markerPath(v)

	current, err := m.store.Version(ctx, v)
	if err != nil {
		return m.fallback(v, dataPath, err)
	}

	cached := m.readMarker(markerPath)
	if cached == current && fileExists(dataPath) {
		m.logger.Debug("Fingerprint cache valid",
			zap.String("variant", string(v)),
			zap.String("path", dataPath),
		)
		return dataPath, nil
	}

	m.logger.Info("Fingerprint cache out of date",
		zap.String("variant", string(v)),
		zap.String("cached", cached),
		zap.String("current", current),
	)

	if _, err := m.engine.ExportToFile(ctx, v, dataPath); err != nil {
		return m.fallback(v, dataPath, err)
	}

	if err := os.WriteFile(markerPath, []byte(current), 0o644); err != nil {
		// The data file is newer than its marker; the next Ensure call
		// re-exports and retries the marker write.
		m.logger.Warn("Failed to write version marker",
			zap.String("variant", string(v)),
			zap.Error(err),
		)
	}

	return dataPath, nil
}

// EnsureAll refreshes the local cache for each listed variant, logging and
// skipping failures so one broken library does not block the rest. The
// returned map contains a local path for every variant that succeeded.
func (m *CacheManager) EnsureAll(ctx context.Context, variants []Variant) map[Variant]string {
	paths := make(map[Variant]string, len(variants))
	for _, v := range variants {
		path, err := m.Ensure(ctx, v)
		if err != nil {
			m.logger.Error("Failed to ensure fingerprint library",
				zap.String("variant", string(v)),
				zap.Error(err),
			)
			continue
		}
		paths[v] = path
	}
	return paths
}

func (m *CacheManager) readMarker(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("Failed to read version marker", zap.Error(err))
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (m *CacheManager) fallback(v Variant, dataPath string, cause error) (string, error) {
	if fileExists(dataPath) {
		m.logger.Warn("Fingerprint refresh failed, serving stale cache",
			zap.String("variant", string(v)),
			zap.String("path", dataPath),
			zap.Error(cause),
		)
		return dataPath, nil
	}
	return "", fmt.Errorf("fingerprint cache unavailable for %s: %w", v, cause)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
