// Package config loads settings from an optional YAML file, a .env file, and
// environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the coach process needs to run.
type Config struct {
	Addr         string        `yaml:"addr"`
	DBPath       string        `yaml:"db_path"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	Model        string        `yaml:"model"`
	LLMTimeout   time.Duration `yaml:"llm_timeout"`
	CacheSize    int           `yaml:"cache_size"`
	LogLevel     string        `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		Addr:       ":8080",
		DBPath:     "data/coach.db",
		Model:      "gemini-2.0-flash",
		LLMTimeout: 30 * time.Second,
		CacheSize:  256,
		LogLevel:   "info",
	}
}

// Load reads the config. path may be empty; a missing file is not an error.
// A .env file in the working directory is applied before reading the
// environment.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	if v := os.Getenv("COACH_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("COACH_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("COACH_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("COACH_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parsing COACH_LLM_TIMEOUT: %w", err)
		}
		cfg.LLMTimeout = d
	}
	if v := os.Getenv("COACH_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parsing COACH_CACHE_SIZE: %w", err)
		}
		cfg.CacheSize = n
	}
	if v := os.Getenv("COACH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.GeminiAPIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return cfg, nil
}
