package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Setenv registers the restore; Unsetenv makes the key truly absent.
	for _, k := range []string{"PORT", "DB_TYPE", "SESSION_TTL", "R2_BUCKET"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBType != "sqlite" || cfg.SessionTTL != 336*time.Hour {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.R2().Enabled() {
		t.Error("R2 enabled without a bucket")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("POSTGRES_URL", "postgres://localhost/feedback?sslmode=disable")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_SECURE", "true")
	t.Setenv("R2_BUCKET", "reports")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" || cfg.SessionTTL != 2*time.Hour || !cfg.SessionSecure {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.R2().Enabled() {
		t.Error("R2 should be enabled")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{DBType: "sqlite", SessionTTL: time.Hour}
	}
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"sqlite", func(*Config) {}, false},
		{"unknown db", func(c *Config) { c.DBType = "oracle" }, true},
		{"postgres without url", func(c *Config) { c.DBType = "postgres" }, true},
		{"postgres with url", func(c *Config) { c.DBType = "postgres"; c.PostgresURL = "postgres://x" }, false},
		{"mongo without url", func(c *Config) { c.DBType = "mongo" }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			if err := c.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	c := Config{LogLevel: "verbose"}
	if err := c.ConfigureLogging(); err == nil {
		t.Error("expected error for unknown level")
	}
	c = Config{LogLevel: "debug", LogFormat: "json"}
	if err := c.ConfigureLogging(); err != nil {
		t.Errorf("ConfigureLogging: %v", err)
	}
}
