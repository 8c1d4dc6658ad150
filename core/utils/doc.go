// Package utils contains small type-coercion helpers shared by the format
// adapters when reading loosely-typed values out of decoded JSON/YAML records.
package utils
