// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"

	"github.com/jeranaias/cipherchart/internal/canvas"
	"github.com/jeranaias/cipherchart/internal/chartstyle"
	"github.com/jeranaias/cipherchart/internal/themewatch"
	"github.com/jeranaias/cipherchart/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete cipherchart configuration.
type Config struct {
	Theme  ThemeConfig  `toml:"theme" json:"theme"`
	Chart  ChartConfig  `toml:"chart" json:"chart"`
	Export ExportConfig `toml:"export" json:"export"`
	Format FormatConfig `toml:"format" json:"format"`
	Log    LogConfig    `toml:"log" json:"log"`
}

// ThemeConfig selects the initial theme and the optional appearance file.
type ThemeConfig struct {
	// Mode is "light", "dark" or "auto" (follow the terminal background).
	Mode string `toml:"mode" json:"mode"`
	// PreferencesFile is watched for theme changes when set.
	PreferencesFile string `toml:"preferences_file" json:"preferences_file"`
}

// ChartConfig controls rendered charts.
type ChartConfig struct {
	Width  int    `toml:"width" json:"width"`
	Height int    `toml:"height" json:"height"`
	Metric string `toml:"metric" json:"metric"`
	// ColorBy is "score" or "algorithm".
	ColorBy string `toml:"color_by" json:"color_by"`
}

// ExportConfig controls where chart images are written.
type ExportConfig struct {
	Dir      string `toml:"dir" json:"dir"`
	Filename string `toml:"filename" json:"filename"`
}

// FormatConfig controls number formatting on the command line.
type FormatConfig struct {
	Decimals int `toml:"decimals" json:"decimals"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
}

// Chart size bounds accepted by Validate.
const (
	MinChartSize = 100
	MaxChartSize = 8000
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Theme: ThemeConfig{
			Mode: themewatch.ThemeAuto,
		},
		Chart: ChartConfig{
			Width:   canvas.DefaultWidth,
			Height:  canvas.DefaultHeight,
			Metric:  string(canvas.MetricOverall),
			ColorBy: string(canvas.ColorByScore),
		},
		Export: ExportConfig{
			Dir:      ".",
			Filename: canvas.DefaultFilename,
		},
		Format: FormatConfig{
			Decimals: chartstyle.DefaultDecimals,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the cipherchart configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cipherchart"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads ~/.cipherchart/config.toml. A missing file yields the
// defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. Keys absent from
// the file keep their defaults. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}
	fillDefaults(cfg)

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults replaces empty strings and zero sizes with defaults.
// Decimals is left alone since zero is meaningful.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Theme.Mode == "" {
		cfg.Theme.Mode = defaults.Theme.Mode
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = defaults.Chart.Width
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = defaults.Chart.Height
	}
	if cfg.Chart.Metric == "" {
		cfg.Chart.Metric = defaults.Chart.Metric
	}
	if cfg.Chart.ColorBy == "" {
		cfg.Chart.ColorBy = defaults.Chart.ColorBy
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = defaults.Export.Dir
	}
	if cfg.Export.Filename == "" {
		cfg.Export.Filename = defaults.Export.Filename
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# cipherchart configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"console": true, "json": true}
)

// Validate checks every field and returns all problems as ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := themewatch.ParseTheme(c.Theme.Mode); err != nil {
		errs = append(errs, ValidationError{
			Field:   "theme.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: light, dark, auto", c.Theme.Mode),
		})
	}

	if c.Chart.Width < MinChartSize || c.Chart.Width > MaxChartSize {
		errs = append(errs, ValidationError{
			Field:   "chart.width",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinChartSize, MaxChartSize, c.Chart.Width),
		})
	}
	if c.Chart.Height < MinChartSize || c.Chart.Height > MaxChartSize {
		errs = append(errs, ValidationError{
			Field:   "chart.height",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinChartSize, MaxChartSize, c.Chart.Height),
		})
	}
	if _, err := canvas.ParseMetric(c.Chart.Metric); err != nil {
		errs = append(errs, ValidationError{Field: "chart.metric", Message: err.Error()})
	}
	if _, err := canvas.ParseColorMode(c.Chart.ColorBy); err != nil {
		errs = append(errs, ValidationError{Field: "chart.color_by", Message: err.Error()})
	}

	if strings.TrimSpace(c.Export.Dir) == "" {
		errs = append(errs, ValidationError{Field: "export.dir", Message: "must not be empty"})
	}
	if name := c.Export.Filename; name == "" || strings.ContainsAny(name, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "export.filename",
			Message: fmt.Sprintf("must be a plain file name, got '%s'", name),
		})
	}

	if c.Format.Decimals < 0 || c.Format.Decimals > chartstyle.MaxDecimals {
		errs = append(errs, ValidationError{
			Field:   "format.decimals",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", chartstyle.MaxDecimals, c.Format.Decimals),
		})
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: console, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CIPHERCHART_THEME: overrides theme.mode
//   - CIPHERCHART_EXPORT_DIR: overrides export.dir
//   - CIPHERCHART_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv("CIPHERCHART_THEME"); theme != "" {
		c.Theme.Mode = strings.ToLower(theme)
	}
	if dir := os.Getenv("CIPHERCHART_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if level := os.Getenv("CIPHERCHART_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its TOML key path, e.g. "chart.width".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value by its TOML key path. Strings are converted to the
// field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		s, err := cast.ToStringE(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		field.SetString(s)
	case reflect.Int:
		n, err := cast.ToIntE(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("%s: unsupported field type %s", key, field.Kind())
	}
	return nil
}

// lookup walks the struct by TOML tag names.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, strings.ReplaceAll(part, "-", "_"))
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tomlName(t.Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tomlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	return name
}

// GetAllKeys returns every leaf key in dot notation.
func GetAllKeys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, tomlName(section)+"."+tomlName(section.Type.Field(j)))
		}
	}
	return keys
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	_ = toml.NewEncoder(&buf).Encode(c)
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
