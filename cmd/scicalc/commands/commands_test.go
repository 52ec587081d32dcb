package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/scicalc/logger"
)

// writeConfig writes a configuration file keeping history under a temporary
// directory.
func writeConfig(t *testing.T, backend string, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scicalc.toml")
	hist := filepath.Join(dir, "history")
	if backend == "sqlite" {
		hist = filepath.Join(dir, "history.db")
	}
	data := "[history]\nbackend = \"" + backend + "\"\npath = " + `"` + filepath.ToSlash(hist) + `"` + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	pterm.DisableColor()
	var out, errOut bytes.Buffer
	root := NewRoot()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestEval(t *testing.T) {
	cfg := writeConfig(t, "file", "")
	out, _, err := run(t, "", "--config", cfg, "eval", "2+3*4", "(2+1)!", "2*PI")
	require.NoError(t, err)
	assert.Equal(t, "2+3×4 = 14\n(2+1)! = 6\n2×π = 6.2831853072\n", out)
}

func TestEval_Quiet(t *testing.T) {
	cfg := writeConfig(t, "memory", "")
	out, _, err := run(t, "", "--config", cfg, "eval", "-q", "1234.5")
	require.NoError(t, err)
	assert.Equal(t, "1,234.5\n", out)
}

func TestEval_Failures(t *testing.T) {
	cfg := writeConfig(t, "memory", "")
	out, errOut, err := run(t, "", "--config", cfg, "eval", "1+1", "sqrt(-1)", "2+x", "1/0", "(1+2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 of 5 expressions failed")
	assert.Equal(t, "1+1 = 2\n", out)
	assert.Contains(t, errOut, "Math error")
	assert.Contains(t, errOut, "Invalid characters")
	assert.Contains(t, errOut, "Result too large")
	assert.Contains(t, errOut, "Invalid expression")
}

func TestEval_Locale(t *testing.T) {
	cfg := writeConfig(t, "memory", "[display]\nlocale = \"de\"\n[evaluator]\ndecimal_precision = 2\n")
	out, _, err := run(t, "", "--config", cfg, "eval", "-q", "1000/3")
	require.NoError(t, err)
	assert.Equal(t, "333,33\n", out)
}

func TestHistory(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := writeConfig(t, backend, "")
			_, _, err := run(t, "", "--config", cfg, "eval", "1+1", "sqrt(-1)", "5!")
			require.Error(t, err)

			out, _, err := run(t, "", "--config", cfg, "history", "list")
			require.NoError(t, err)
			assert.Contains(t, out, "5!")
			assert.Contains(t, out, "120")
			assert.Contains(t, out, "1+1")
			assert.NotContains(t, out, "sqrt")
			assert.Less(t, strings.Index(out, "5!"), strings.Index(out, "1+1"), "newest first")

			out, _, err = run(t, "", "--config", cfg, "history", "list", "-n", "1")
			require.NoError(t, err)
			assert.NotContains(t, out, "1+1")

			_, _, err = run(t, "", "--config", cfg, "history", "clear")
			require.NoError(t, err)
			out, _, err = run(t, "", "--config", cfg, "history", "list")
			require.NoError(t, err)
			assert.Equal(t, "No history\n", out)
		})
	}
}

func TestHistory_Disabled(t *testing.T) {
	cfg := writeConfig(t, "file", "")
	require.NoError(t, os.WriteFile(cfg, []byte("[history]\nenabled = false\n"), 0o644))
	_, _, err := run(t, "", "--config", cfg, "history", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history is disabled")
}

func TestRepl(t *testing.T) {
	cfg := writeConfig(t, "file", "")
	in := strings.Join([]string{
		"2+3",
		"*4",
		"sqrt(-1)",
		":m+",
		"+1",
		"10",
		":m+",
		"3",
		"*",
		":mr",
		"+1",
		":history",
		":q",
		"99",
	}, "\n")
	out, _, err := run(t, in, "--config", cfg, "repl")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 11)
	assert.Equal(t, "= 5", lines[0])
	assert.Equal(t, "= 20", lines[1])
	assert.Contains(t, lines[2], "Math error")
	assert.Contains(t, lines[3], "Math error", "the failed expression is kept")
	assert.Equal(t, "= 1", lines[4], "no result to continue after a failure")
	assert.Equal(t, "= 10", lines[5])
	assert.Equal(t, "M = 10", lines[6])
	assert.Equal(t, "= 3", lines[7])
	assert.Contains(t, lines[8], "Invalid expression")
	assert.Equal(t, "10", lines[9])
	assert.Equal(t, "= 11", lines[10])
	assert.Contains(t, out, "2+3")
	assert.NotContains(t, out, "99")
}

func TestConfigShow(t *testing.T) {
	cfg := writeConfig(t, "memory", "[evaluator]\ndecimal_precision = 3\n")
	out, _, err := run(t, "", "--config", cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "decimal_precision = 3")
	assert.Regexp(t, `backend = ['"]memory['"]`, out)

	out, _, err = run(t, "", "--config", cfg, "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"decimal_precision": 3`)

	_, _, err = run(t, "", "--config", cfg, "config", "show", "--format", "xml")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "memory", "[evaluator]\nmax_expression_length = 0\n")
	_, _, err := run(t, "", "--config", cfg, "eval", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxExpressionLength")
}

func TestJSONLog(t *testing.T) {
	t.Cleanup(func() { logger.JSONOutput = false })
	cfg := writeConfig(t, "memory", "")
	_, _, err := run(t, "", "--config", cfg, "--json-log", "eval", "1")
	require.NoError(t, err)
	assert.True(t, logger.JSONOutput)

	cfg = writeConfig(t, "memory", "[log]\njson = false\n")
	_, _, err = run(t, "", "--config", cfg, "eval", "1")
	require.NoError(t, err)
	assert.False(t, logger.JSONOutput)
}
