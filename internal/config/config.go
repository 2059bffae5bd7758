// Package config loads the service configuration from a YAML file with
// environment variable overrides. A missing config file is not an error: the
// service runs on defaults so a bare binary still starts.
package config

import (
	"time"

	"github.com/khabarcheck/khabarcheck/internal/extractor"
	"github.com/khabarcheck/khabarcheck/internal/heuristics"
	"github.com/khabarcheck/khabarcheck/internal/scoring"
)

// Default configuration values.
const (
	defaultServiceName     = "khabarcheck"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8090
	defaultConcurrency     = 10
	defaultShutdownTimeout = 10 * time.Second
	defaultMLServiceURL    = "http://fakenews-ml:8081"
	defaultMLTimeout       = 5 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)

// Config holds all configuration for the credibility service.
type Config struct {
	Service   ServiceConfig    `yaml:"service"`
	ML        MLConfig         `yaml:"ml"`
	Extractor extractor.Config `yaml:"extractor"`
	Scoring   ScoringConfig    `yaml:"scoring"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"KHABARCHECK_PORT"        yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"               yaml:"debug"`
	Concurrency     int           `env:"KHABARCHECK_CONCURRENCY" yaml:"concurrency"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MLConfig holds the ML sidecar connection settings.
type MLConfig struct {
	URL     string        `env:"ML_SERVICE_URL" yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ScoringConfig holds the blend weights and heuristic penalties.
type ScoringConfig struct {
	TextWeight float64              `env:"SCORING_TEXT_WEIGHT" yaml:"text_weight"`
	Blend      scoring.BlendWeights `yaml:"blend"`
	Heuristics heuristics.Config    `yaml:"heuristics"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setMLDefaults(&cfg.ML)
	setExtractorDefaults(&cfg.Extractor)
	setScoringDefaults(&cfg.Scoring)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownTimeout
	}
}

func setMLDefaults(m *MLConfig) {
	if m.URL == "" {
		m.URL = defaultMLServiceURL
	}
	if m.Timeout == 0 {
		m.Timeout = defaultMLTimeout
	}
}

func setExtractorDefaults(e *extractor.Config) {
	defaults := extractor.DefaultConfig()
	if e.Timeout == 0 {
		e.Timeout = defaults.Timeout
	}
	if e.RequestsPerSecond == 0 {
		e.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if e.Burst == 0 {
		e.Burst = defaults.Burst
	}
	if e.UserAgent == "" {
		e.UserAgent = defaults.UserAgent
	}
}

func setScoringDefaults(s *ScoringConfig) {
	if s.TextWeight == 0 {
		s.TextWeight = scoring.DefaultTextWeight
	}
	if s.Blend == (scoring.BlendWeights{}) {
		s.Blend = scoring.DefaultBlendWeights()
	}
	if s.Heuristics == (heuristics.Config{}) {
		s.Heuristics = heuristics.DefaultConfig()
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
