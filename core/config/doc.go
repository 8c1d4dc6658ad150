// Package config provides configuration management for the fingerprint platform.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with struct-tag driven defaults.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings for the export mirror
//   - Log: Logging level and format
//   - Fingerprints: local cache base path, built-in seed files, mirror toggle
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Fingerprints.BasePath)
package config
