package scicalc

import "strconv"

// Config is the configuration of an Evaluator.
type Config struct {
	// DecimalPrecision is the number of decimal places results are rounded
	// to. It must not be negative.
	DecimalPrecision int
	// MaxExpressionLength is the maximum number of runes in an expression,
	// not counting whitespace. It must be positive.
	MaxExpressionLength int
	// PrecisionBits is the mantissa precision of intermediate arithmetic.
	// 53 matches float64.
	PrecisionBits uint
}

// Defaults for Config.
const (
	DefaultDecimalPrecision    = 10
	DefaultMaxExpressionLength = 100
	DefaultPrecisionBits       = 53

	// MinPrecisionBits is the smallest allowed PrecisionBits.
	MinPrecisionBits = 24
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DecimalPrecision:    DefaultDecimalPrecision,
		MaxExpressionLength: DefaultMaxExpressionLength,
		PrecisionBits:       DefaultPrecisionBits,
	}
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	switch {
	case c.DecimalPrecision < 0:
		return &ConfigError{Field: "DecimalPrecision", Value: strconv.Itoa(c.DecimalPrecision), Want: "at least 0"}
	case c.MaxExpressionLength <= 0:
		return &ConfigError{Field: "MaxExpressionLength", Value: strconv.Itoa(c.MaxExpressionLength), Want: "positive"}
	case c.PrecisionBits < MinPrecisionBits:
		return &ConfigError{Field: "PrecisionBits", Value: strconv.FormatUint(uint64(c.PrecisionBits), 10), Want: "at least " + strconv.Itoa(MinPrecisionBits)}
	}
	return nil
}

// ConfigError is an error indicating an invalid configuration value.
type ConfigError struct {
	// Field is the name of the Config field.
	Field string
	// Value is the rejected value.
	Value string
	// Want describes the allowed values.
	Want string
}

func (err *ConfigError) Error() string {
	return "scicalc: " + err.Field + " is " + err.Value + ", must be " + err.Want
}

// Option is an option for creating an Evaluator.
type Option interface {
	option(Config) Config
}

type (
	placesopt int
	lenopt    int
	precopt   uint
	cfgopt    Config
)

func (o placesopt) option(c Config) Config {
	c.DecimalPrecision = int(o)
	return c
}

func (o lenopt) option(c Config) Config {
	c.MaxExpressionLength = int(o)
	return c
}

func (o precopt) option(c Config) Config {
	c.PrecisionBits = uint(o)
	return c
}

func (o cfgopt) option(Config) Config {
	return Config(o)
}

// DecimalPlaces sets the number of decimal places results are rounded to.
func DecimalPlaces(n int) Option {
	return placesopt(n)
}

// MaxLength sets the maximum expression length.
func MaxLength(n int) Option {
	return lenopt(n)
}

// Prec sets the precision of intermediate calculations in bits.
func Prec(bits uint) Option {
	return precopt(bits)
}

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(c Config) Option {
	return cfgopt(c)
}

// applyOptions applies opts in order to c.
func applyOptions(c Config, opts []Option) Config {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}
