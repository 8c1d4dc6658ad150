package fingerprints_test

import (
	"context"
	"testing"

	"github.com/Spritualkb/xingrin/feature/fingerprints"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPipelineImportBatchCountsFailures(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	pipeline := fingerprints.NewPipeline(store, zap.NewNop())
	ctx := context.Background()

	result, err := pipeline.ImportBatch(ctx, fingerprints.VariantGoby, []fingerprints.RawRecord{
		{"name": "Tomcat", "logic": "a", "rule": []any{}},
		{"name": "NoLogic", "rule": []any{}},
		{"name": "NoRule", "logic": "a"},
		nil,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 3, result.Failed)

	count, err := store.Count(ctx, fingerprints.VariantGoby)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPipelineImportBytesJSON(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	pipeline := fingerprints.NewPipeline(store, zap.NewNop())
	ctx := context.Background()

	data := []byte(`{"fingerprint": [
		{"name": "Nginx", "rule": "header=\"nginx\""},
		{"name": "", "rule": "ignored"}
	]}`)

	result, err := pipeline.ImportBytes(ctx, fingerprints.VariantEhole, data, fingerprints.EncodingJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
}

func TestPipelineImportBytesYAML(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	pipeline := fingerprints.NewPipeline(store, zap.NewNop())
	ctx := context.Background()

	data := []byte("- name: GitLab\n  rule: body=\"gitlab\"\n- name: Gitea\n  rule: body=\"gitea\"\n")

	result, err := pipeline.ImportBytes(ctx, fingerprints.VariantARL, data, fingerprints.EncodingYAML)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Failed)
}

func TestPipelineStructuralErrorWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	pipeline := fingerprints.NewPipeline(store, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"fingerprint": [`},
		{"wrong container", `{"rules": []}`},
		{"scalar top level", `"a string"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.ImportBytes(ctx, fingerprints.VariantEhole, []byte(tt.data), fingerprints.EncodingJSON)
			require.Error(t, err)
			assert.True(t, fingerprints.IsStructural(err))
		})
	}

	count, err := store.Count(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPipelineEmptyBatch(t *testing.T) {
	db := setupTestDB(t)
	pipeline := fingerprints.NewPipeline(fingerprints.NewStore(db), zap.NewNop())

	result, err := pipeline.ImportBatch(context.Background(), fingerprints.VariantEhole, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Failed)
}
