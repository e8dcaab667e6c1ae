package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageLocal    = "local"
	StorageFirebase = "firebase"
)

type Config struct {
	Port            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration

	MongoURI      string
	MongoDatabase string

	// PostgresConnStr selects PostgreSQL for the file ledger; SQLitePath is used when it is empty
	PostgresConnStr string
	SQLitePath      string

	StorageBackend  string
	UploadDir       string
	UploadURLPrefix string
	MaxUploadSize   int64

	FirebaseCredentialsPath string
	FirebaseStorageBucket   string

	VerificationCodeTTL time.Duration
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	envFileErr := godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout:         getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "bluenote"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		SQLitePath:              getEnv("SQLITE_PATH", "./data/ledger.db"),
		StorageBackend:          getEnv("STORAGE_BACKEND", StorageLocal),
		UploadDir:               getEnv("UPLOAD_DIR", "./uploads"),
		UploadURLPrefix:         getEnv("UPLOAD_URL_PREFIX", "/uploads"),
		MaxUploadSize:           getInt64Env("MAX_UPLOAD_SIZE", 10*1024*1024),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		FirebaseStorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		VerificationCodeTTL:     getDurationEnv("VERIFICATION_CODE_TTL", 180*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		if envFileErr != nil {
			return nil, fmt.Errorf("%w (no .env file loaded: %v)", err, envFileErr)
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and consistent
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageFirebase:
		if c.FirebaseCredentialsPath == "" || c.FirebaseStorageBucket == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH and FIREBASE_STORAGE_BUCKET are required for firebase storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	if c.VerificationCodeTTL < time.Second {
		return fmt.Errorf("VERIFICATION_CODE_TTL must be at least one second")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
