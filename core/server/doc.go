// Package server holds the HTTP server configuration.
//
// It defines the listening port and the API key used by the auth middleware
// to protect the fingerprint management endpoints.
package server
