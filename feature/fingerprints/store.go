package fingerprints

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence boundary for normalized fingerprint rows. All
// methods dispatch through the variant registry; the store itself never
// branches on variant identity.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on top of an open GORM connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Count returns the number of stored records for the variant.
func (s *Store) Count(ctx context.Context, v Variant) (int64, error) {
	e, err := entryFor(v)
	if err != nil {
		return 0, err
	}
	return e.ops.count(ctx, s.db)
}

// BulkUpsert writes the given normalized records in one statement, matching
// on the variant's unique key. Conflict policy is last-write-wins: a record
// whose key already exists overwrites the stored row and still counts as
// written. Returns the number of staged rows.
func (s *Store) BulkUpsert(ctx context.Context, v Variant, recs []models.Record) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	e, err := entryFor(v)
	if err != nil {
		return 0, err
	}
	if err := e.ops.upsert(ctx, s.db, recs); err != nil {
		return 0, fmt.Errorf("bulk upsert failed for %s: %w", v, err)
	}
	return int64(len(recs)), nil
}

// GetByID returns one record by its numeric row id.
func (s *Store) GetByID(ctx context.Context, v Variant, id uint) (models.Record, error) {
	e, err := entryFor(v)
	if err != nil {
		return nil, err
	}
	return e.ops.get(ctx, s.db, id)
}

// UpdateByID overwrites every content field of the row with the given id.
func (s *Store) UpdateByID(ctx context.Context, v Variant, id uint, rec models.Record) error {
	e, err := entryFor(v)
	if err != nil {
		return err
	}
	return e.ops.update(ctx, s.db, id, rec)
}

// DeleteByID removes one row by its numeric id.
func (s *Store) DeleteByID(ctx context.Context, v Variant, id uint) error {
	e, err := entryFor(v)
	if err != nil {
		return err
	}
	return e.ops.deleteID(ctx, s.db, id)
}

// All returns every stored record for the variant, ordered by unique key so
// exports and version digests are deterministic.
func (s *Store) All(ctx context.Context, v Variant) ([]models.Record, error) {
	e, err := entryFor(v)
	if err != nil {
		return nil, err
	}
	return e.ops.all(ctx, s.db)
}

// List returns one page of records matching the given filter conditions,
// plus the total match count.
func (s *Store) List(ctx context.Context, v Variant, conds []Condition, page, pageSize int) ([]models.Record, int64, error) {
	e, err := entryFor(v)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 1000 {
		pageSize = 20
	}
	return e.ops.list(ctx, s.db, conds, e.filters, (page-1)*pageSize, pageSize)
}

// DeleteAll removes every record of the variant.
func (s *Store) DeleteAll(ctx context.Context, v Variant) error {
	e, err := entryFor(v)
	if err != nil {
		return err
	}
	return e.ops.deleteAll(ctx, s.db)
}

// BulkDelete removes the records whose unique keys are listed.
func (s *Store) BulkDelete(ctx context.Context, v Variant, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	e, err := entryFor(v)
	if err != nil {
		return err
	}
	return e.ops.deleteKeys(ctx, s.db, keys)
}

// Version computes the opaque content token for the variant's record set: a
// SHA-256 digest over the row count and every record's wire form in unique-key
// order. Two observations with no intervening mutation yield equal tokens;
// any content change (including same-count edits and deletes) yields a new
// one.
func (s *Store) Version(ctx context.Context, v Variant) (string, error) {
	e, err := entryFor(v)
	if err != nil {
		return "", err
	}
	recs, err := e.ops.all(ctx, s.db)
	if err != nil {
		return "", fmt.Errorf("version computation failed for %s: %w", v, err)
	}

	h := sha256.New()
	fmt.Fprintf(h, "%s:%d\n", v, len(recs))
	for _, rec := range recs {
		// json.Marshal sorts map keys, so the digest input is stable.
		b, err := json.Marshal(e.adapter.ToRaw(rec))
		if err != nil {
			return "", fmt.Errorf("version computation failed for %s: %w", v, err)
		}
		h.Write(b)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// storeOps is the typed table access behind the registry. One instantiation
// of tableOps per variant keeps GORM working against concrete row types
// while the Store stays variant-agnostic.
type storeOps interface {
	upsert(ctx context.Context, db *gorm.DB, recs []models.Record) error
	get(ctx context.Context, db *gorm.DB, id uint) (models.Record, error)
	update(ctx context.Context, db *gorm.DB, id uint, rec models.Record) error
	deleteID(ctx context.Context, db *gorm.DB, id uint) error
	all(ctx context.Context, db *gorm.DB) ([]models.Record, error)
	count(ctx context.Context, db *gorm.DB) (int64, error)
	deleteAll(ctx context.Context, db *gorm.DB) error
	deleteKeys(ctx context.Context, db *gorm.DB, keys []string) error
	list(ctx context.Context, db *gorm.DB, conds []Condition, columns map[string]string, offset, limit int) ([]models.Record, int64, error)
}

type tableOps[T models.Record] struct {
	keyColumn string
}

func (o tableOps[T]) upsert(ctx context.Context, db *gorm.DB, recs []models.Record) error {
	rows := make([]T, 0, len(recs))
	for _, rec := range recs {
		row, ok := rec.(T)
		if !ok {
			return fmt.Errorf("record type %T does not belong to this table", rec)
		}
		rows = append(rows, row)
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: o.keyColumn}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}

func (o tableOps[T]) get(ctx context.Context, db *gorm.DB, id uint) (models.Record, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (o tableOps[T]) update(ctx context.Context, db *gorm.DB, id uint, rec models.Record) error {
	row, ok := rec.(T)
	if !ok {
		return fmt.Errorf("record type %T does not belong to this table", rec)
	}
	// Existence check first: Updates reports zero affected rows both for a
	// missing id and for an unchanged row.
	var existing T
	if err := db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(row).Error
}

func (o tableOps[T]) deleteID(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (o tableOps[T]) all(ctx context.Context, db *gorm.DB) ([]models.Record, error) {
	var rows []T
	if err := db.WithContext(ctx).Order(o.keyColumn + " ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	recs := make([]models.Record, len(rows))
	for i, row := range rows {
		recs[i] = row
	}
	return recs, nil
}

func (o tableOps[T]) count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}

func (o tableOps[T]) deleteAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(new(T)).Error
}

func (o tableOps[T]) deleteKeys(ctx context.Context, db *gorm.DB, keys []string) error {
	return db.WithContext(ctx).
		Where(o.keyColumn+" IN ?", keys).
		Delete(new(T)).Error
}

func (o tableOps[T]) list(ctx context.Context, db *gorm.DB, conds []Condition, columns map[string]string, offset, limit int) ([]models.Record, int64, error) {
	q := db.WithContext(ctx).Model(new(T))
	for _, c := range conds {
		column, ok := columns[c.Field]
		if !ok {
			return nil, 0, fmt.Errorf("unknown filter field: %q", c.Field)
		}
		if c.Exact {
			q = q.Where(column+" = ?", c.Value)
		} else {
			q = q.Where(column+" LIKE ?", "%"+c.Value+"%")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []T
	if err := q.Order(o.keyColumn + " ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	recs := make([]models.Record, len(rows))
	for i, row := range rows {
		recs[i] = row
	}
	return recs, total, nil
}
