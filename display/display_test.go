package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/scicalc"
)

func TestExpression(t *testing.T) {
	f := New()
	tests := []struct {
		raw  string
		want string
	}{
		{"2*3", "2×3"},
		{"8/2-1", "8÷2−1"},
		{"2*PI", "2×π"},
		{"sqrt(2)", "sqrt(2)"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Expression(tt.raw), "Expression(%q)", tt.raw)
	}
}

func TestResult_English(t *testing.T) {
	f := New()
	tests := []struct {
		res  scicalc.Result
		want string
	}{
		{scicalc.Value(0), "0"},
		{scicalc.Value(120), "120"},
		{scicalc.Value(1234.5), "1,234.5"},
		{scicalc.Value(0.3333333333), "0.3333333333"},
		{scicalc.Failure(scicalc.InvalidCharacters, "x", nil), "Invalid characters"},
		{scicalc.Failure(scicalc.MathError, "sqrt(-1)", nil), "Math error"},
		{scicalc.Failure(scicalc.ResultTooLarge, "1/0", nil), "Result too large"},
		{scicalc.Failure(scicalc.MalformedExpression, "(1", nil), "Invalid expression"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Result(tt.res), "Result(%v)", tt.res)
	}
}

func TestResult_German(t *testing.T) {
	f := New(Locale(language.German))
	assert.Equal(t, "1.234,5", f.Result(scicalc.Value(1234.5)))
	assert.Equal(t, "Mathematischer Fehler", f.Result(scicalc.Failure(scicalc.MathError, "0/0", nil)))
	assert.Equal(t, language.German, f.Tag())
}

func TestResult_UntranslatedLocale(t *testing.T) {
	f := New(Locale(language.Japanese))
	assert.Equal(t, "Math error", f.Message(scicalc.MathError))
}

func TestNumber_Places(t *testing.T) {
	f := New(Places(2))
	assert.Equal(t, "3.14", f.Number(3.14159))
	assert.Equal(t, "2", f.Number(2))

	f = New(Places(-1))
	assert.Equal(t, "0.1234567891", f.Number(0.12345678912))
}

func TestNumber_Large(t *testing.T) {
	f := New()
	s := f.Number(7.257415615307994e306)
	assert.Less(t, len(s), 40, "got %q", s)
	assert.True(t, strings.Contains(s, "306"), "got %q", s)
}

func TestMessage_UnknownKind(t *testing.T) {
	assert.Equal(t, "Invalid expression", New().Message(scicalc.Kind(99)))
}
