// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It discards everything until Initialize is
// called, so packages can log unconditionally.
var Logger = zap.NewNop().Sugar()

// JSONOutput records whether the last Initialize selected JSON output.
var JSONOutput bool

// Initialize replaces Logger. JSON output uses zap's production config;
// otherwise logs are short console lines on stderr, leaving stdout to
// calculation results.
func Initialize(jsonOutput bool, level zapcore.Level) error {
	l, err := build(jsonOutput, level, os.Stderr)
	if err != nil {
		return err
	}
	JSONOutput = jsonOutput
	Logger = l.Sugar()
	return nil
}

func build(jsonOutput bool, level zapcore.Level, w io.Writer) (*zap.Logger, error) {
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		return config.Build()
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// Named returns a child of Logger for a component.
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ParseLevel converts a level name from configuration. Unknown names are
// info.
func ParseLevel(s string) zapcore.Level {
	l, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// VerbosityToLevel maps a count of -v flags to a level, lowering base by one
// step per flag down to debug.
func VerbosityToLevel(base zapcore.Level, verbosity int) zapcore.Level {
	l := base - zapcore.Level(verbosity)
	if l < zapcore.DebugLevel {
		return zapcore.DebugLevel
	}
	return l
}
