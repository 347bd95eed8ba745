package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/textsec/blockmatch/internal/matcher"
	"github.com/textsec/blockmatch/pkg/log"
)

// Config holds all application configuration.
// Supports environment variables with sensible defaults; a .env file in
// the working directory is loaded first when present.
//
// Environment Variables:
// Matcher Configuration:
// - MATCHER_ALGO: engine to use: brute_force, native, ac, wm (default: ac)
// - MATCHER_BLOCK_SIZE: Wu-Manber block size in bytes (default: 2)
// - MATCHER_ENABLE_RADICAL: enable radical-evasion expansion (default: false)
// - MATCHER_ENABLE_PINYIN: enable pinyin-evasion expansion (default: false)
// - BLOCKLIST_PATH: blocklist file to load (default: blocklist/blocklist_10.txt)
//
// Scan Configuration:
// - SCAN_DIRS: comma-separated directories of text files to scan (default: /texts)
// - SCAN_CONCURRENCY: files scanned in parallel (default: 4)
// - SCAN_DB: SQLite path for scan history, empty disables it (default: empty)
// - CRON_EXPR: schedule for watch mode (default: 0 0 * * *)
//
// Bench Configuration:
// - BENCH_SUITE: suite YAML path (default: bench/suite.yaml)
// - OUTPUT_DIR: directory for CSV/JSON outputs (default: results)
//
// System Configuration:
// - LOG_LEVEL: debug, info, warn, error (default: info)

type Config struct {
	// Matcher Configuration
	Matcher MatcherConfig `json:"matcher"`

	// Scan Configuration
	Scan ScanConfig `json:"scan"`

	// Bench Configuration
	Bench BenchConfig `json:"bench"`

	// System Configuration
	System SystemConfig `json:"system"`
}

type MatcherConfig struct {
	Algorithm     string `json:"algorithm"`
	BlockSize     int    `json:"block_size"`
	EnableRadical bool   `json:"enable_radical"`
	EnablePinyin  bool   `json:"enable_pinyin"`
	BlocklistPath string `json:"blocklist_path"`
}

// Options translates the configuration into matcher construction options.
func (c MatcherConfig) Options() matcher.Options {
	return matcher.Options{
		Algorithm:     matcher.Algo(c.Algorithm),
		BlockSize:     c.BlockSize,
		EnableRadical: c.EnableRadical,
		EnablePinyin:  c.EnablePinyin,
	}
}

type ScanConfig struct {
	Dirs        []string `json:"dirs"`
	Concurrency int      `json:"concurrency"`
	DBPath      string   `json:"db_path"`
	CronExpr    string   `json:"cron_expr"`
}

type BenchConfig struct {
	SuitePath string `json:"suite_path"`
	OutputDir string `json:"output_dir"`
}

type SystemConfig struct {
	LogLevel string `json:"log_level"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Matcher: MatcherConfig{
			Algorithm:     getEnvString("MATCHER_ALGO", string(matcher.AlgoAC)),
			BlockSize:     getEnvInt("MATCHER_BLOCK_SIZE", matcher.DefaultBlockSize),
			EnableRadical: getEnvBool("MATCHER_ENABLE_RADICAL", false),
			EnablePinyin:  getEnvBool("MATCHER_ENABLE_PINYIN", false),
			BlocklistPath: getEnvString("BLOCKLIST_PATH", "blocklist/blocklist_10.txt"),
		},
		Scan: ScanConfig{
			Dirs:        getEnvStrings("SCAN_DIRS", []string{"/texts"}),
			Concurrency: getEnvInt("SCAN_CONCURRENCY", 4),
			DBPath:      getEnvString("SCAN_DB", ""),
			CronExpr:    getEnvString("CRON_EXPR", "0 0 * * *"),
		},
		Bench: BenchConfig{
			SuitePath: getEnvString("BENCH_SUITE", "bench/suite.yaml"),
			OutputDir: getEnvString("OUTPUT_DIR", "results"),
		},
		System: SystemConfig{
			LogLevel: getEnvString("LOG_LEVEL", "info"),
		},
	}

	log.Debug("Config: %+v", config)

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	// Validate required configuration
	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	switch matcher.Algo(c.Matcher.Algorithm) {
	case matcher.AlgoBruteForce, matcher.AlgoNative, matcher.AlgoAC, matcher.AlgoWM:
	default:
		return fmt.Errorf("MATCHER_ALGO %q is not one of brute_force, native, ac, wm", c.Matcher.Algorithm)
	}
	if c.Matcher.BlockSize < 1 {
		return fmt.Errorf("MATCHER_BLOCK_SIZE must be at least 1")
	}
	if c.Matcher.BlocklistPath == "" {
		return fmt.Errorf("BLOCKLIST_PATH is required")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvStrings gets a comma-separated list from environment variables with default
func getEnvStrings(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
