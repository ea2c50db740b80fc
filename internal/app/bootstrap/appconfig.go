// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds Tujitume's configuration.
//
// Values come from defaults, a config file, TUJITUME_* environment
// variables (including a .env file) and command-line flags, in increasing
// order of precedence. See appConfigKeys for every key and its default.
type AppConfig struct {
	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json or console

	// Slot storage
	SlotBackend   string // memory, bolt, sqlite, postgres, mongo
	BoltPath      string
	SQLitePath    string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string

	// Session
	SessionKey         string // derives token signing and encryption keys
	LoginRatePerMinute int

	// Mail
	AdminEmail    string // receives form notifications
	MailFrom      string
	MailFromName  string
	MailMockDelay time.Duration

	// Media storage
	StorageType       string // local or s3
	StorageLocalPath  string
	StorageLocalURL   string
	StorageS3Region   string
	StorageS3Bucket   string
	StorageS3Prefix   string
	StorageS3Endpoint string

	// Audit and metrics
	AuditLog        string // all, db, log, off
	MetricsTextfile string // written at shutdown when set
}
