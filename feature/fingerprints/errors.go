package fingerprints

import (
	"errors"
	"fmt"
)

// StructuralError reports a document-level problem with an import payload:
// undecodable JSON/YAML, or a top level that is not an array of records once
// flattened. Structural errors abort the whole import before any row is
// written; per-record validation failures never produce one.
type StructuralError struct {
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *StructuralError) Unwrap() error { return e.Err }

// IsStructural reports whether err is (or wraps) a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

func structuralErr(reason string, err error) *StructuralError {
	return &StructuralError{Reason: reason, Err: err}
}
