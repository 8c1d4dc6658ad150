// Package models defines the normalized database rows for each fingerprint
// library variant.
//
// Every variant stores a different schema, but all rows share two properties:
// a single unique identifying key (name, or fp_id for FingerPrintHub) and
// self-contained content with no reference to the original wire document.
// Array- and object-typed fields are kept as raw JSON (gorm.io/datatypes) so
// the export engine can reproduce the external format byte-for-byte.
package models
