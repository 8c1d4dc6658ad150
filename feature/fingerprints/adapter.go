package fingerprints

import (
	"bytes"
	"encoding/json"

	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"gorm.io/datatypes"
)

// RawRecord is one fingerprint record exactly as expressed in a variant's
// external wire format, decoded into a generic map.
type RawRecord map[string]any

// FormatAdapter is the capability interface implemented once per variant.
// It is the single point where variant-specific wire knowledge lives: the
// pipeline, store, export engine and cache manager dispatch through the
// registry and never branch on variant identity themselves.
//
// Validate is a pure predicate and never errors on malformed input.
// ToNormalized assumes Validate passed. ToRaw is its inverse restricted to
// the subset reachable by import: optional fields that hold their default
// value are omitted from the output, so a round-tripped file never grows
// keys its author did not write.
type FormatAdapter interface {
	// Variant returns the variant this adapter serves.
	Variant() Variant
	// Validate reports whether the raw record can be normalized.
	Validate(raw RawRecord) bool
	// ToNormalized converts a validated raw record into its database row.
	ToNormalized(raw RawRecord) models.Record
	// ToRaw reconstructs the external record shape from a database row.
	ToRaw(rec models.Record) RawRecord
	// Flatten converts a decoded wire document into a flat record list.
	// It returns a StructuralError when the document's container shape is
	// wrong; individual non-mapping entries surface later as validation
	// failures instead.
	Flatten(doc any) ([]RawRecord, error)
	// Collapse is the inverse of Flatten: it rebuilds the variant's
	// top-level container shape from a flat record list.
	Collapse(list []RawRecord) any
}

// flattenList is the identity flatten shared by the array-shaped variants:
// the wire document itself must be the record list.
func flattenList(doc any) ([]RawRecord, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, structuralErr("top level must be an array of fingerprint records", nil)
	}
	records := make([]RawRecord, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, RawRecord(m))
		} else {
			// Counted as a per-record validation failure downstream.
			records = append(records, nil)
		}
	}
	return records, nil
}

// collapseList is the identity collapse for array-shaped variants.
func collapseList(list []RawRecord) any {
	if list == nil {
		return []RawRecord{}
	}
	return list
}

// jsonColumn captures the raw wire value of a field verbatim for storage.
// Absent fields stay nil so exports can tell "never set" from "set empty".
func jsonColumn(raw RawRecord, key string) datatypes.JSON {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// jsonEmpty reports whether a stored JSON value equals its type's empty
// value: absent, null, empty array, empty object, or empty string.
func jsonEmpty(j datatypes.JSON) bool {
	s := bytes.TrimSpace(j)
	switch string(s) {
	case "", "null", "[]", "{}", `""`:
		return true
	}
	return false
}

// jsonValue decodes a stored JSON column back into its generic wire value.
func jsonValue(j datatypes.JSON) any {
	var v any
	if err := json.Unmarshal(j, &v); err != nil {
		return nil
	}
	return v
}

// putJSON sets out[key] to the decoded column value unless it is empty.
// This is the per-field omission predicate shared by all adapters.
func putJSON(out RawRecord, key string, j datatypes.JSON) {
	if jsonEmpty(j) {
		return
	}
	out[key] = jsonValue(j)
}

// putString sets out[key] unless the value equals the given default.
func putString(out RawRecord, key, value, defaultValue string) {
	if value != defaultValue {
		out[key] = value
	}
}

// isArray reports whether a raw field decoded as a JSON/YAML array.
func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}
