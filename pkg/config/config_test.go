package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("VERIFICATION_CODE_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StorageBackend != StorageLocal {
		t.Errorf("expected local storage, got %s", cfg.StorageBackend)
	}
	if cfg.VerificationCodeTTL != 180*time.Second {
		t.Errorf("expected 180s ttl, got %s", cfg.VerificationCodeTTL)
	}
	if cfg.MongoDatabase == "" || cfg.UploadURLPrefix == "" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("VERIFICATION_CODE_TTL", "30s")
	t.Setenv("MAX_UPLOAD_SIZE", "2048")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.VerificationCodeTTL != 30*time.Second || cfg.MaxUploadSize != 2048 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		MongoURI:            "mongodb://localhost",
		StorageBackend:      StorageLocal,
		UploadDir:           "./uploads",
		MaxUploadSize:       1,
		VerificationCodeTTL: time.Minute,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing mongo", func(c *Config) { c.MongoURI = "" }, true},
		{"firebase without bucket", func(c *Config) { c.StorageBackend = StorageFirebase; c.FirebaseCredentialsPath = "creds.json" }, true},
		{"firebase complete", func(c *Config) {
			c.StorageBackend = StorageFirebase
			c.FirebaseCredentialsPath = "creds.json"
			c.FirebaseStorageBucket = "bucket"
		}, false},
		{"unknown backend", func(c *Config) { c.StorageBackend = "s3" }, true},
		{"zero upload size", func(c *Config) { c.MaxUploadSize = 0 }, true},
		{"sub-second ttl", func(c *Config) { c.VerificationCodeTTL = time.Millisecond }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
