// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/dalemusser/tujitume/internal/app/store/media"
	"github.com/dalemusser/tujitume/internal/app/store/slots"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix namespaces environment variables, e.g. TUJITUME_SLOT_BACKEND.
const EnvPrefix = "TUJITUME"

// DevSessionKey is the built-in session key. It is fine for a laptop and
// nothing else; ValidateConfig warns when it is in use.
const DevSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// AppKey describes one configuration key.
type AppKey struct {
	Name    string
	Default any
	Desc    string
}

// appConfigKeys defines the configuration keys for Tujitume.
// Each key can be set in the config file (slot_backend), the environment
// (TUJITUME_SLOT_BACKEND) or as a flag (--slot_backend).
var appConfigKeys = []AppKey{
	{Name: "log_level", Default: "info", Desc: "Log level: debug, info, warn, error"},
	{Name: "log_format", Default: "console", Desc: "Log format: 'json' or 'console'"},

	// Slot storage
	{Name: "slot_backend", Default: slots.BackendBolt, Desc: "Slot backend: memory, bolt, sqlite, postgres or mongo"},
	{Name: "bolt_path", Default: "tujitume.db", Desc: "bbolt database file"},
	{Name: "sqlite_path", Default: "tujitume.sqlite", Desc: "SQLite database file"},
	{Name: "postgres_dsn", Default: "postgres://localhost/tujitume?sslmode=disable", Desc: "PostgreSQL connection string"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tujitume", Desc: "MongoDB database name"},

	// Session
	{Name: "session_key", Default: DevSessionKey, Desc: "Session token key (must be strong in production)"},
	{Name: "login_rate_per_minute", Default: 5, Desc: "Login attempts allowed per email per minute"},

	// Mail
	{Name: "admin_email", Default: "info@tujitume.org", Desc: "Address that receives form notifications"},
	{Name: "mail_from", Default: "noreply@tujitume.org", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Tujitume", Desc: "From display name"},
	{Name: "mail_mock_delay", Default: "500ms", Desc: "Artificial delay of the mock mail sender"},

	// Media storage
	{Name: "storage_type", Default: media.BackendLocal, Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: media.DefaultLocalPath, Desc: "Local storage path for uploaded media"},
	{Name: "storage_local_url", Default: media.DefaultLocalURL, Desc: "URL prefix for serving local media"},
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "media/", Desc: "S3 key prefix"},
	{Name: "storage_s3_endpoint", Default: "", Desc: "S3-compatible endpoint (e.g. MinIO)"},

	// Audit and metrics
	{Name: "audit_log", Default: "all", Desc: "Audit logging: 'all' (slot+log), 'db', 'log', or 'off'"},
	{Name: "metrics_textfile", Default: "", Desc: "Write Prometheus metrics to this file at exit"},
}

// BindFlags registers --config and one flag per key.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Config file (default ./tujitume.{yaml,json,toml})")
	for _, k := range appConfigKeys {
		switch d := k.Default.(type) {
		case int:
			flags.Int(k.Name, d, k.Desc)
		case bool:
			flags.Bool(k.Name, d, k.Desc)
		default:
			flags.String(k.Name, fmt.Sprint(d), k.Desc)
		}
	}
}

// LoadConfig merges defaults, the config file, the environment and flags.
// flags may be nil; only flags that were set on the command line override.
func LoadConfig(flags *pflag.FlagSet, logger *zap.Logger) (AppConfig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not load .env", zap.Error(err))
	}

	v := viper.New()
	for _, k := range appConfigKeys {
		v.SetDefault(k.Name, k.Default)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("tujitume")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		logger.Debug("loaded config file", zap.String("path", v.ConfigFileUsed()))
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if bindErr == nil && isKey(f.Name) {
				bindErr = v.BindPFlag(f.Name, f)
			}
		})
		if bindErr != nil {
			return AppConfig{}, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	delay, err := time.ParseDuration(v.GetString("mail_mock_delay"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("mail_mock_delay: %w", err)
	}

	return AppConfig{
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),

		SlotBackend:   strings.ToLower(v.GetString("slot_backend")),
		BoltPath:      v.GetString("bolt_path"),
		SQLitePath:    v.GetString("sqlite_path"),
		PostgresDSN:   v.GetString("postgres_dsn"),
		MongoURI:      v.GetString("mongo_uri"),
		MongoDatabase: v.GetString("mongo_database"),

		SessionKey:         v.GetString("session_key"),
		LoginRatePerMinute: v.GetInt("login_rate_per_minute"),

		AdminEmail:    v.GetString("admin_email"),
		MailFrom:      v.GetString("mail_from"),
		MailFromName:  v.GetString("mail_from_name"),
		MailMockDelay: delay,

		StorageType:       strings.ToLower(v.GetString("storage_type")),
		StorageLocalPath:  v.GetString("storage_local_path"),
		StorageLocalURL:   v.GetString("storage_local_url"),
		StorageS3Region:   v.GetString("storage_s3_region"),
		StorageS3Bucket:   v.GetString("storage_s3_bucket"),
		StorageS3Prefix:   v.GetString("storage_s3_prefix"),
		StorageS3Endpoint: v.GetString("storage_s3_endpoint"),

		AuditLog:        v.GetString("audit_log"),
		MetricsTextfile: v.GetString("metrics_textfile"),
	}, nil
}

func isKey(name string) bool {
	for _, k := range appConfigKeys {
		if k.Name == name {
			return true
		}
	}
	return false
}

// ValidateConfig rejects configurations that cannot start.
func ValidateConfig(cfg AppConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.SlotBackend {
	case slots.BackendMemory:
	case slots.BackendBolt:
		if cfg.BoltPath == "" {
			return errors.New("bolt backend requires bolt_path")
		}
	case slots.BackendSQLite:
		if cfg.SQLitePath == "" {
			return errors.New("sqlite backend requires sqlite_path")
		}
	case slots.BackendPostgres:
		if cfg.PostgresDSN == "" {
			return errors.New("postgres backend requires postgres_dsn")
		}
	case slots.BackendMongo:
		if err := wafflemongo.ValidateURI(cfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if cfg.MongoDatabase == "" {
			return errors.New("mongo backend requires mongo_database")
		}
	default:
		return fmt.Errorf("unknown slot_backend %q (want one of %s)", cfg.SlotBackend, strings.Join(slots.Backends, ", "))
	}

	switch cfg.StorageType {
	case media.BackendLocal:
	case media.BackendS3:
		if cfg.StorageS3Bucket == "" {
			return errors.New("s3 storage requires storage_s3_bucket")
		}
	default:
		return fmt.Errorf("unknown storage_type %q", cfg.StorageType)
	}

	if strings.TrimSpace(cfg.SessionKey) == "" {
		return errors.New("session_key must not be empty")
	}
	if cfg.SessionKey == DevSessionKey {
		logger.Warn("using the built-in development session_key; set TUJITUME_SESSION_KEY in production")
	}
	if cfg.LoginRatePerMinute < 1 {
		return fmt.Errorf("login_rate_per_minute must be at least 1, got %d", cfg.LoginRatePerMinute)
	}
	if cfg.MailMockDelay < 0 {
		return errors.New("mail_mock_delay must not be negative")
	}
	return nil
}
