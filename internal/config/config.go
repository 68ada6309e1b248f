// internal/config/config.go
//
// Runtime configuration.
//
// Precedence, lowest to highest:
//   1. Defaults().
//   2. An optional YAML file (--config).
//   3. Environment variables (a .env file is loaded into the environment by main).
//
// Environment variables:
//   PORT, LOG_LEVEL, WORDS_FILE, HISTORY_DB, JWT_SECRET, DAILY_SALT,
//   CLIENT_ORIGIN, FILTER_WORKERS

package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DevSecret is the JWT secret used when none is configured.
const DevSecret = "dev_secret_change_me"

// Config holds every tunable of the CLI and the HTTP service.
type Config struct {
	Port          string `yaml:"port"`
	LogLevel      string `yaml:"log_level"`
	WordsFile     string `yaml:"words_file"` // "" = embedded list
	HistoryDB     string `yaml:"history_db"` // "" = history disabled
	JWTSecret     string `yaml:"jwt_secret"`
	DailySalt     string `yaml:"daily_salt"`
	ClientOrigin  string `yaml:"client_origin"`
	FilterWorkers int    `yaml:"filter_workers"` // goroutines per eligibility query
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:          "5175",
		LogLevel:      "info",
		JWTSecret:     DevSecret,
		DailySalt:     "local_dev_salt",
		ClientOrigin:  "http://localhost:5173",
		FilterWorkers: runtime.GOMAXPROCS(0),
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is ""), and the environment.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"PORT":          &c.Port,
		"LOG_LEVEL":     &c.LogLevel,
		"WORDS_FILE":    &c.WordsFile,
		"HISTORY_DB":    &c.HistoryDB,
		"JWT_SECRET":    &c.JWTSecret,
		"DAILY_SALT":    &c.DailySalt,
		"CLIENT_ORIGIN": &c.ClientOrigin,
	}
	for k, dst := range str {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("FILTER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FILTER_WORKERS: %w", err)
		}
		c.FilterWorkers = n
	}
	return nil
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is empty")
	}
	if c.FilterWorkers < 1 {
		return fmt.Errorf("config: filter_workers must be >= 1, got %d", c.FilterWorkers)
	}
	return nil
}
