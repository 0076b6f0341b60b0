package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN           string
	Environment     string
	HTTPAddr        string
	JWTSecret       string
	CORSOrigins     []string
	AutoMigrate     bool
	ShutdownTimeout time.Duration

	// Optional. The notifier stays disabled unless both are set.
	TelegramToken       string
	TelegramAdminChatID int64
}

func Load() (*Config, error) {
	// .env is optional, real environment variables win
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   os.Getenv("ENV"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	var err error
	cfg.AutoMigrate, err = boolEnv("DB_AUTO_MIGRATE", true)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout = 10 * time.Second
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		cfg.ShutdownTimeout, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); v != "" {
		cfg.TelegramAdminChatID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NotificationsEnabled reports whether the telegram notifier has what it needs.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramAdminChatID != 0
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
