package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := Logger
			defer func() { Logger = old; JSONOutput = false }()

			require.NoError(t, Initialize(tt.jsonOutput, zapcore.InfoLevel))
			assert.NotSame(t, old, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
		})
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := build(false, zapcore.WarnLevel, &buf)
	require.NoError(t, err)

	s := l.Sugar()
	s.Infow("hidden", "k", 1)
	s.Warnw("history unreadable", "key", "calculatorHistory")
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "history unreadable")
	assert.Contains(t, out, "calculatorHistory")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(zapcore.WarnLevel, 0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(zapcore.WarnLevel, 1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(zapcore.WarnLevel, 2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(zapcore.WarnLevel, 5))
}
