package config

import (
	"fmt"
	"time"

	"feedbackportal/db"
	"feedbackportal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	DBType        string `envconfig:"DB_TYPE" default:"sqlite"`
	PostgresURL   string `envconfig:"POSTGRES_URL"`
	MongoURL      string `envconfig:"MONGO_URL"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"feedback_portal"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"./data/feedback.db"`

	RedisURL      string        `envconfig:"REDIS_URL"`
	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"session"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"336h"`
	SessionSecure bool          `envconfig:"SESSION_SECURE" default:"false"`

	SeedPassword string `envconfig:"SEED_PASSWORD" default:"password"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	ChromePath string `envconfig:"CHROME_PATH"`

	R2AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	R2Bucket          string `envconfig:"R2_BUCKET"`
	R2PublicURL       string `envconfig:"R2_PUBLIC_URL"`
	R2AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system environment variables")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	t, err := db.ParseDBType(c.DBType)
	if err != nil {
		return err
	}
	switch t {
	case db.Postgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when DB_TYPE=%s", t)
		}
	case db.Mongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when DB_TYPE=%s", t)
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

func (c *Config) R2() utils.R2Config {
	return utils.R2Config{
		AccountID:       c.R2AccountID,
		Bucket:          c.R2Bucket,
		PublicURL:       c.R2PublicURL,
		AccessKeyID:     c.R2AccessKeyID,
		SecretAccessKey: c.R2SecretAccessKey,
	}
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the standard logger.
func (c *Config) ConfigureLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
