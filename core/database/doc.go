// Package database provides the MySQL connection used by the fingerprint store.
//
// It wraps GORM connection setup with sane pool defaults and DSN timeouts.
// The fingerprint tables themselves are created by GORM auto-migration at
// server startup (see cmd/start.go).
package database
