// Package config loads runtime settings from YAML and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Environment string          `yaml:"environment" env:"ENVIRONMENT" env-default:"dev"`
	Translate   TranslateConfig `yaml:"translate"`
	Batch       BatchConfig     `yaml:"batch"`
	Log         LogConfig       `yaml:"log"`
}

// TranslateConfig holds settings for the translation service client.
type TranslateConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"TRANSLATE_BASE_URL"    env-default:"http://translate.google.com"`
	UserAgent  string        `yaml:"user_agent"  env:"TRANSLATE_USER_AGENT"  env-default:"Mozilla/5.0 (X11; U; Linux i686) Gecko/20071127 Firefox/2.0.0.11"`
	Timeout    time.Duration `yaml:"timeout"     env:"TRANSLATE_TIMEOUT"     env-default:"10s"`
	TargetLang string        `yaml:"target_lang" env:"TRANSLATE_TARGET_LANG" env-default:"en"`
	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"TRANSLATE_MAX_BODY_BYTES" env-default:"1048576"`
}

// BatchConfig bounds how a batch of phrases is processed.
type BatchConfig struct {
	MaxTokens   int `yaml:"max_tokens"  env:"BATCH_MAX_TOKENS"  env-default:"200"`
	Concurrency int `yaml:"concurrency" env:"BATCH_CONCURRENCY" env-default:"8"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is taken from CONFIG_PATH; when it is unset,
// configuration comes from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded values. Load calls it automatically.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Translate.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("translate.base_url must be an absolute URL (got %q)", c.Translate.BaseURL)
	}
	if c.Translate.Timeout <= 0 {
		return fmt.Errorf("translate.timeout must be > 0 (got %v)", c.Translate.Timeout)
	}
	if c.Translate.MaxBodyBytes <= 0 {
		return fmt.Errorf("translate.max_body_bytes must be > 0 (got %d)", c.Translate.MaxBodyBytes)
	}
	if c.Translate.TargetLang == "" {
		return fmt.Errorf("translate.target_lang is required")
	}
	if c.Batch.MaxTokens <= 0 {
		return fmt.Errorf("batch.max_tokens must be > 0 (got %d)", c.Batch.MaxTokens)
	}
	if c.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch.concurrency must be > 0 (got %d)", c.Batch.Concurrency)
	}
	return nil
}
