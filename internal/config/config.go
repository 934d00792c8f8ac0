package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// DatasetConfig locates the event dataset consumed by the dashboard.
type DatasetConfig struct {
	Path   string `mapstructure:"path"`   // JSON file, default mockData.json in the working directory
	Region string `mapstructure:"region"` // region tag for imported events
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LockConfig controls the optional redis lock around imports.
type LockConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     string `mapstructure:"ttl"` // duration string, e.g., "2m"
}

// OpenAIConfig enables analyst notes on imported events.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// ServerConfig controls the read-only feed server.
type ServerConfig struct {
	Addr         string   `mapstructure:"addr"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// BriefingConfig controls markdown briefs.
type BriefingConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	TopN      int    `mapstructure:"top_n"`
	Title     string `mapstructure:"title"`   // supports {.CurrentDate} and {.Count}
	Preface   string `mapstructure:"preface"` // same variables as title
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Lock     LockConfig     `mapstructure:"lock"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Server   ServerConfig   `mapstructure:"server"`
	Briefing BriefingConfig `mapstructure:"briefing"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "mockData.json"
	}
	if c.Dataset.Region == "" {
		c.Dataset.Region = "National"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Lock.TTL == "" {
		c.Lock.TTL = "2m"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.Timeout == "" {
		c.OpenAI.Timeout = "60s"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Briefing.OutputDir == "" {
		c.Briefing.OutputDir = "./out"
	}
	if c.Briefing.TopN == 0 {
		c.Briefing.TopN = 10
	}
	if c.Briefing.Title == "" {
		c.Briefing.Title = "OSINT brief {.CurrentDate}"
	}
}

// Validate checks values that FillDefaults cannot repair.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.App.LogLevel); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.Lock.TTL); err != nil {
		return fmt.Errorf("invalid lock.ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.OpenAI.Timeout); err != nil {
		return fmt.Errorf("invalid openai.timeout: %w", err)
	}
	if c.Briefing.TopN < 0 {
		return fmt.Errorf("briefing.top_n must be positive, got %d", c.Briefing.TopN)
	}
	return nil
}

// ParseLevel maps app.log_level to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid app.log_level: %q", s)
	}
}
