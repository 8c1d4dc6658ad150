package fingerprints

// Config holds configuration for the fingerprint library subsystem.
type Config struct {
	// BasePath is the directory where workers keep their local copies of the
	// exported fingerprint files, one data file plus one version marker per
	// library.
	BasePath string `mapstructure:"base_path" default:"/opt/xingrin/fingerprints"`
	// BuiltinDir is the directory containing the built-in fingerprint files
	// used to seed an empty database (init-fingerprints command).
	BuiltinDir string `mapstructure:"builtin_dir" default:"./fingerprints"`
	// MirrorEnabled publishes exported fingerprint files to the object
	// storage bucket after every import, so workers can fetch them over S3
	// instead of the API.
	MirrorEnabled bool `mapstructure:"mirror_enabled" default:"false"`
	// MirrorPrefix is the object key prefix used by the storage mirror.
	MirrorPrefix string `mapstructure:"mirror_prefix" default:"fingerprints"`
}
