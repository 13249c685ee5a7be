// Package config loads the performance layer settings.
//
// Settings come from an optional YAML file named by
// VK_PERFORMANCE_LAYERS_CONFIG and from environment variables, which take
// precedence over the file:
//
//	event_log_file: /tmp/events.csv   # VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE
//	log_file: /tmp/compile_time.csv   # VK_PERFORMANCE_LAYERS_LOG_FILE
//	debug: true
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/vk-perflayers/errors"
)

// Environment variables read by Load.
const (
	EnvEventLogFile = "VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE"
	EnvLogFile      = "VK_PERFORMANCE_LAYERS_LOG_FILE"
	EnvConfigFile   = "VK_PERFORMANCE_LAYERS_CONFIG"
	EnvDebug        = "VK_PERFORMANCE_LAYERS_DEBUG"
)

// Config holds the layer settings.
type Config struct {
	// EventLogFile is the shared event log. Empty disables it.
	EventLogFile string `yaml:"event_log_file"`
	// LogFile is the primary log. Empty means stderr.
	LogFile string `yaml:"log_file"`
	// Debug enables development diagnostics.
	Debug bool `yaml:"debug"`
}

// Load reads the file named by VK_PERFORMANCE_LAYERS_CONFIG, if set, and
// applies the environment on top of it.
func Load() (Config, error) {
	var cfg Config
	if path, ok := os.LookupEnv(EnvConfigFile); ok && path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fc
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// FromEnv returns the settings given by environment variables alone.
func FromEnv() Config {
	var cfg Config
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// LoadFile reads settings from a YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, errors.ConfigFailed("read "+path, err)
	}
	return Parse(data)
}

// Parse decodes YAML settings. Unknown keys are rejected and an empty
// document yields the zero Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Config{}, nil
		}
		return Config{}, errors.ConfigFailed("decode yaml", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields whose variables are set. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvEventLogFile); ok {
		c.EventLogFile = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := lookup(EnvDebug); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// ZapLogger builds a diagnostic logger: development output when Debug is
// set, production JSON otherwise. Diagnostics always go to stderr.
func (c Config) ZapLogger() (*zap.Logger, error) {
	var zc zap.Config
	if c.Debug {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	l, err := zc.Build()
	if err != nil {
		return nil, errors.ConfigFailed("build logger", err)
	}
	return l, nil
}
