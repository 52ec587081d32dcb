// Package config loads calculator settings from defaults, a TOML file, and
// SCICALC_* environment variables, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/scicalc"
)

// Config is the full calculator configuration.
type Config struct {
	Evaluator EvaluatorConfig `mapstructure:"evaluator" toml:"evaluator" yaml:"evaluator" json:"evaluator"`
	History   HistoryConfig   `mapstructure:"history" toml:"history" yaml:"history" json:"history"`
	Display   DisplayConfig   `mapstructure:"display" toml:"display" yaml:"display" json:"display"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// EvaluatorConfig mirrors scicalc.Config.
type EvaluatorConfig struct {
	DecimalPrecision    int  `mapstructure:"decimal_precision" toml:"decimal_precision" yaml:"decimal_precision" json:"decimal_precision"`
	MaxExpressionLength int  `mapstructure:"max_expression_length" toml:"max_expression_length" yaml:"max_expression_length" json:"max_expression_length"`
	PrecisionBits       uint `mapstructure:"precision_bits" toml:"precision_bits" yaml:"precision_bits" json:"precision_bits"`
}

// HistoryConfig selects and sizes the history store.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	Limit   int    `mapstructure:"limit" toml:"limit" yaml:"limit" json:"limit"`
	Backend string `mapstructure:"backend" toml:"backend" yaml:"backend" json:"backend"` // memory, file, or sqlite
	Path    string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`             // directory for file, database for sqlite
	Key     string `mapstructure:"key" toml:"key" yaml:"key" json:"key"`
}

// DisplayConfig configures result formatting.
type DisplayConfig struct {
	Locale string `mapstructure:"locale" toml:"locale" yaml:"locale" json:"locale"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Level string `mapstructure:"level" toml:"level" yaml:"level" json:"level"`
}

// History backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// FileName is the base name of the configuration file.
const FileName = "scicalc.toml"

// EnvPrefix prefixes environment overrides, e.g. SCICALC_EVALUATOR_DECIMAL_PRECISION.
const EnvPrefix = "SCICALC"

// DefaultDir is the per-user directory for configuration and history.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".scicalc"
	}
	return filepath.Join(dir, "scicalc")
}

// SetDefaults configures default values for all keys.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("evaluator.decimal_precision", scicalc.DefaultDecimalPrecision)
	v.SetDefault("evaluator.max_expression_length", scicalc.DefaultMaxExpressionLength)
	v.SetDefault("evaluator.precision_bits", scicalc.DefaultPrecisionBits)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.limit", 50)
	v.SetDefault("history.backend", BackendFile)
	v.SetDefault("history.path", DefaultDir())
	v.SetDefault("history.key", "calculatorHistory")

	v.SetDefault("display.locale", "en")

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "warn")
}

// New creates a Viper instance with defaults and environment binding. If path
// is not empty, it is the configuration file to read; otherwise scicalc.toml
// is looked up in the working directory and DefaultDir.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		return v, nil
	}
	v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
	v.AddConfigPath(".")
	v.AddConfigPath(DefaultDir())
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}
	return v, nil
}

// Load reads and validates the configuration. See New for how path is used.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithViper unmarshals configuration from a provided Viper instance
// without validating it.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// EvalConfig converts the evaluator section for scicalc.WithConfig.
func (c *Config) EvalConfig() scicalc.Config {
	return scicalc.Config{
		DecimalPrecision:    c.Evaluator.DecimalPrecision,
		MaxExpressionLength: c.Evaluator.MaxExpressionLength,
		PrecisionBits:       c.Evaluator.PrecisionBits,
	}
}
