package config

import (
	"fmt"
	"runtime"

	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/tabclean/pkg/errors"
	"github.com/ajitpratap0/tabclean/pkg/logger"
	"github.com/ajitpratap0/tabclean/pkg/observability"
)

// Config is the configuration of a cleaning run. It is organized into
// sections:
//   - Logging: zap level, encoding and outputs
//   - Pipeline: converter concurrency and snapshot retention
//   - Metrics: Prometheus recording
//   - Tracing: OpenTelemetry spans exported to stdout
type Config struct {
	// Logging configures the zap logger
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`

	// Pipeline controls how stages run
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`

	// Metrics toggles Prometheus recording
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`

	// Tracing configures stage spans
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing" json:"tracing"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level" json:"level"`
	// Encoding is json or console
	Encoding    string   `mapstructure:"encoding" yaml:"encoding" json:"encoding"`
	Development bool     `mapstructure:"development" yaml:"development" json:"development"`
	OutputPaths []string `mapstructure:"output_paths" yaml:"output_paths" json:"output_paths"`
}

// PipelineConfig contains stage execution settings
type PipelineConfig struct {
	// Workers bounds how many value/unit pairs are converted at once
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
	// KeepSnapshots retains every stage output in the run result
	KeepSnapshots bool `mapstructure:"keep_snapshots" yaml:"keep_snapshots" json:"keep_snapshots"`
}

// MetricsConfig contains metrics settings
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// TracingConfig contains tracing settings
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	ServiceName string  `mapstructure:"service_name" yaml:"service_name" json:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate" yaml:"sample_rate" json:"sample_rate"`
}

// Default returns a configuration with defaults that work for most tables
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:       "info",
			Encoding:    "json",
			OutputPaths: []string{"stdout"},
		},
		Pipeline: PipelineConfig{
			Workers: runtime.NumCPU(),
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "tabclean",
			SampleRate:  1.0,
		},
	}
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, fmt.Sprintf("invalid logging.level %q", c.Logging.Level))
	}
	if c.Logging.Encoding != "json" && c.Logging.Encoding != "console" {
		return errors.Newf(errors.ErrorTypeConfig, "logging.encoding must be json or console, got %q", c.Logging.Encoding)
	}
	if c.Pipeline.Workers < 0 {
		return errors.New(errors.ErrorTypeConfig, "pipeline.workers cannot be negative")
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return errors.Newf(errors.ErrorTypeConfig, "tracing.sample_rate must be within [0, 1], got %g", c.Tracing.SampleRate)
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return errors.New(errors.ErrorTypeConfig, "tracing.service_name is required when tracing is enabled")
	}
	return nil
}

// GetWorkers returns the number of workers, falling back to the CPU count
func (p *PipelineConfig) GetWorkers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}

// ToLogger converts the logging section for pkg/logger
func (l LoggingConfig) ToLogger() logger.Config {
	return logger.Config{
		Level:       l.Level,
		Development: l.Development,
		Encoding:    l.Encoding,
		OutputPaths: l.OutputPaths,
	}
}

// ToTracing converts the tracing section for pkg/observability
func (t TracingConfig) ToTracing() observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:      t.Enabled,
		ServiceName:  t.ServiceName,
		SamplingRate: t.SampleRate,
	}
}
