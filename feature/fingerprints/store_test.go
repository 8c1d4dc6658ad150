package fingerprints_test

import (
	"context"
	"testing"

	"github.com/Spritualkb/xingrin/core/database"
	"github.com/Spritualkb/xingrin/feature/fingerprints"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with all fingerprint tables
// migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestStoreBulkUpsertAndCount(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	written, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: `header="nginx"`},
		models.EholeFingerprint{Name: "Apache", Rule: `header="apache"`},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), written)

	count, err := store.Count(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Other variants are untouched.
	count, err = store.Count(ctx, fingerprints.VariantGoby)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStoreUpsertOverwritesExistingKey(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: "old"},
	})
	require.NoError(t, err)

	written, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: "new"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), written)

	count, err := store.Count(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	recs, err := store.All(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "new", recs[0].(models.EholeFingerprint).Rule)
}

func TestStoreAllOrdersByKey(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "zabbix", Rule: "r"},
		models.EholeFingerprint{Name: "apache", Rule: "r"},
		models.EholeFingerprint{Name: "mysql", Rule: "r"},
	})
	require.NoError(t, err)

	recs, err := store.All(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "apache", recs[0].UniqueKey())
	assert.Equal(t, "mysql", recs[1].UniqueKey())
	assert.Equal(t, "zabbix", recs[2].UniqueKey())
}

func TestStoreBulkDelete(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "a", Rule: "r"},
		models.EholeFingerprint{Name: "b", Rule: "r"},
		models.EholeFingerprint{Name: "c", Rule: "r"},
	})
	require.NoError(t, err)

	require.NoError(t, store.BulkDelete(ctx, fingerprints.VariantEhole, []string{"a", "c", "missing"}))

	recs, err := store.All(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "b", recs[0].UniqueKey())

	// Empty key list is a no-op.
	require.NoError(t, store.BulkDelete(ctx, fingerprints.VariantEhole, nil))
}

func TestStoreUpdateByID(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: "old"},
	})
	require.NoError(t, err)

	recs, err := store.All(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	id := recs[0].(models.EholeFingerprint).ID

	err = store.UpdateByID(ctx, fingerprints.VariantEhole, id,
		models.EholeFingerprint{Name: "Nginx", Rule: "new"})
	require.NoError(t, err)

	rec, err := store.GetByID(ctx, fingerprints.VariantEhole, id)
	require.NoError(t, err)
	assert.Equal(t, "new", rec.(models.EholeFingerprint).Rule)

	// Unknown ids surface the not-found error.
	err = store.UpdateByID(ctx, fingerprints.VariantEhole, 9999,
		models.EholeFingerprint{Name: "x", Rule: "r"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStoreDeleteByID(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: "r"},
	})
	require.NoError(t, err)

	recs, err := store.All(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	id := recs[0].(models.EholeFingerprint).ID

	require.NoError(t, store.DeleteByID(ctx, fingerprints.VariantEhole, id))

	count, err := store.Count(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, store.DeleteByID(ctx, fingerprints.VariantEhole, id), gorm.ErrRecordNotFound)
}

func TestStoreDeleteAll(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, fingerprints.VariantARL, []models.Record{
		models.ARLFingerprint{Name: "a", Rule: "r"},
		models.ARLFingerprint{Name: "b", Rule: "r"},
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteAll(ctx, fingerprints.VariantARL))

	count, err := store.Count(ctx, fingerprints.VariantARL)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStoreVersionTracksContent(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	empty, err := store.Version(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)

	_, err = store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: "v1"},
	})
	require.NoError(t, err)

	v1, err := store.Version(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.NotEqual(t, empty, v1)

	// Re-importing identical content keeps the token stable.
	_, err = store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: "v1"},
	})
	require.NoError(t, err)
	again, err := store.Version(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.Equal(t, v1, again)

	// Editing a record changes the token even though the count does not.
	_, err = store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "Nginx", Rule: "v2"},
	})
	require.NoError(t, err)
	v2, err := store.Version(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	// Deleting changes it again.
	require.NoError(t, store.DeleteAll(ctx, fingerprints.VariantEhole))
	after, err := store.Version(ctx, fingerprints.VariantEhole)
	require.NoError(t, err)
	assert.Equal(t, empty, after)
}

func TestStoreList(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.BulkUpsert(ctx, fingerprints.VariantEhole, []models.Record{
		models.EholeFingerprint{Name: "WordPress", Rule: `body="wp-content"`},
		models.EholeFingerprint{Name: "wordpress-plugin", Rule: `body="wp-plugin"`},
		models.EholeFingerprint{Name: "Nginx", Rule: `header="nginx"`},
	})
	require.NoError(t, err)

	// Fuzzy match on name.
	recs, total, err := store.List(ctx, fingerprints.VariantEhole,
		[]fingerprints.Condition{{Field: "name", Value: "word"}}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, recs, 2)

	// Exact match.
	recs, total, err = store.List(ctx, fingerprints.VariantEhole,
		[]fingerprints.Condition{{Field: "name", Value: "Nginx", Exact: true}}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recs, 1)
	assert.Equal(t, "Nginx", recs[0].UniqueKey())

	// Pagination returns the total while slicing the page.
	recs, total, err = store.List(ctx, fingerprints.VariantEhole, nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, recs, 2)

	recs, _, err = store.List(ctx, fingerprints.VariantEhole, nil, 2, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	// Unknown filter fields are rejected.
	_, _, err = store.List(ctx, fingerprints.VariantEhole,
		[]fingerprints.Condition{{Field: "severity", Value: "high"}}, 1, 20)
	assert.Error(t, err)
}

func TestStoreUnknownVariant(t *testing.T) {
	db := setupTestDB(t)
	store := fingerprints.NewStore(db)
	ctx := context.Background()

	_, err := store.Count(ctx, fingerprints.Variant("bogus"))
	assert.Error(t, err)
	_, err = store.Version(ctx, fingerprints.Variant("bogus"))
	assert.Error(t, err)
}
