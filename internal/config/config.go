package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces all environment variables read by Load.
const envPrefix = "DATALENS"

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Quality   QualityConfig   `yaml:"quality" envconfig:"QUALITY"`
	Cleaning  CleaningConfig  `yaml:"cleaning" envconfig:"CLEANING"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
}

// AnalyticsConfig describes the remote analytics engine the service
// forwards finalized datasets to.
type AnalyticsConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// SecurityConfig contains security-related configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// QualityConfig holds the thresholds and penalties used by the quality
// assessor. Keeping them here rather than in the assessment code lets
// scoring policy change without touching the algorithm.
type QualityConfig struct {
	CompletenessWarnRatio float64 `yaml:"completeness_warn_ratio" envconfig:"COMPLETENESS_WARN_RATIO"`
	CompletenessFailRatio float64 `yaml:"completeness_fail_ratio" envconfig:"COMPLETENESS_FAIL_RATIO"`
	MinRobustRows         int     `yaml:"min_robust_rows" envconfig:"MIN_ROBUST_ROWS"`
	MinDiverseColumns     int     `yaml:"min_diverse_columns" envconfig:"MIN_DIVERSE_COLUMNS"`
	FailPenalty           int     `yaml:"fail_penalty" envconfig:"FAIL_PENALTY"`
	WarningPenalty        int     `yaml:"warning_penalty" envconfig:"WARNING_PENALTY"`
}

// CleaningConfig holds cleaning policy knobs.
type CleaningConfig struct {
	// TextFill is substituted for missing values in text columns.
	TextFill string `yaml:"text_fill" envconfig:"TEXT_FILL"`
}

// ExportConfig holds delimited export settings.
type ExportConfig struct {
	Separator string `yaml:"separator" envconfig:"SEPARATOR"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  10 << 20,
		},
		Analytics: AnalyticsConfig{
			BaseURL: "http://127.0.0.1:5000",
			Timeout: 60 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/datalens.log",
		},
		Quality:  DefaultQuality(),
		Cleaning: CleaningConfig{TextFill: "Unspecified"},
		Export:   ExportConfig{Separator: ","},
	}
}

// DefaultQuality returns the default assessment thresholds.
func DefaultQuality() QualityConfig {
	return QualityConfig{
		CompletenessWarnRatio: 0.05,
		CompletenessFailRatio: 0.20,
		MinRobustRows:         50,
		MinDiverseColumns:     3,
		FailPenalty:           40,
		WarningPenalty:        15,
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// configFilePath returns the config file to overlay, or empty when none
// exists. DATALENS_CONFIG_FILE wins over the conventional local file.
func configFilePath() string {
	if path := os.Getenv(envPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}
	for _, candidate := range []string{"datalens.yml", "datalens.yaml"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Analytics.BaseURL == "" {
		return fmt.Errorf("analytics base URL is required")
	}
	if !strings.HasPrefix(c.Analytics.BaseURL, "http://") && !strings.HasPrefix(c.Analytics.BaseURL, "https://") {
		return fmt.Errorf("analytics base URL %q must be http or https", c.Analytics.BaseURL)
	}
	if c.Export.Separator == "" {
		return fmt.Errorf("export separator is required")
	}
	return c.Quality.Validate()
}

// Validate checks quality thresholds for internal consistency.
func (q QualityConfig) Validate() error {
	if q.CompletenessWarnRatio < 0 || q.CompletenessWarnRatio > 1 {
		return fmt.Errorf("completeness warn ratio %v out of range [0,1]", q.CompletenessWarnRatio)
	}
	if q.CompletenessFailRatio < 0 || q.CompletenessFailRatio > 1 {
		return fmt.Errorf("completeness fail ratio %v out of range [0,1]", q.CompletenessFailRatio)
	}
	if q.CompletenessWarnRatio > q.CompletenessFailRatio {
		return fmt.Errorf("completeness warn ratio %v exceeds fail ratio %v",
			q.CompletenessWarnRatio, q.CompletenessFailRatio)
	}
	if q.MinRobustRows < 0 {
		return fmt.Errorf("minimum robust rows must not be negative")
	}
	if q.MinDiverseColumns < 0 {
		return fmt.Errorf("minimum diverse columns must not be negative")
	}
	if q.FailPenalty < 0 || q.WarningPenalty < 0 {
		return fmt.Errorf("score penalties must not be negative")
	}
	return nil
}
