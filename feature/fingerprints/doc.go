// Package fingerprints implements the fingerprint library subsystem: storage,
// conversion and distribution of the rule sets scan workers use to recognize
// running web technologies.
//
// Six independently evolving ecosystems are supported (EHole, Goby,
// Wappalyzer, Fingers, FingerPrintHub, ARL), each with its own wire format.
// A FormatAdapter per variant maps between the external shape and one
// normalized database row type; a static registry is the single dispatch
// point, so the pipeline, store, export engine and cache manager stay
// variant-agnostic.
//
// # Import
//
// file bytes -> DecodeDocument (JSON/YAML) -> adapter.Flatten -> per-record
// Validate/ToNormalized -> one bulk upsert -> {created, failed} counts.
// Invalid records are dropped and counted; only container-shape problems
// abort the import.
//
// # Export
//
// store.All -> adapter.ToRaw per record -> adapter.Collapse -> canonical
// encoding. Optional fields holding their default are omitted, so an
// imported file round-trips without growing keys.
//
// # Distribution
//
// Store.Version derives an opaque content token per variant; CacheManager
// compares it against a worker-local marker file and re-exports only on
// mismatch, with atomic temp-file-then-rename writes. The optional Mirror
// publishes exports to object storage.
package fingerprints
