// Package display renders expressions and results the way the calculator
// screen shows them.
package display

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"

	"github.com/zephyrtronium/scicalc"
)

// Messages shown in place of a result, keyed by failure kind.
var Messages = map[scicalc.Kind]string{
	scicalc.InvalidCharacters:   "Invalid characters",
	scicalc.MathError:           "Math error",
	scicalc.ResultTooLarge:      "Result too large",
	scicalc.MalformedExpression: "Invalid expression",
}

var translations = map[language.Tag]map[string]string{
	language.German: {
		"Invalid characters": "Ungültige Zeichen",
		"Math error":         "Mathematischer Fehler",
		"Result too large":   "Ergebnis zu groß",
		"Invalid expression": "Ungültiger Ausdruck",
	},
	language.French: {
		"Invalid characters": "Caractères non valides",
		"Math error":         "Erreur mathématique",
		"Result too large":   "Résultat trop grand",
		"Invalid expression": "Expression non valide",
	},
}

var cat = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, msg := range Messages {
		b.SetString(language.English, msg, msg)
	}
	for tag, msgs := range translations {
		for key, msg := range msgs {
			b.SetString(tag, key, msg)
		}
	}
	return b
}()

// sciThreshold is the magnitude from which values are shown in scientific
// notation.
const sciThreshold = 1e21

var glyphs = strings.NewReplacer("*", "×", "/", "÷", "-", "−", "PI", "π")

// Formatter formats for one locale. It is safe for concurrent use.
type Formatter struct {
	tag    language.Tag
	places int
	p      *message.Printer
}

// Option configures a Formatter.
type Option func(*Formatter)

// Locale sets the locale for numbers and messages. The default is English.
func Locale(tag language.Tag) Option {
	return func(f *Formatter) {
		f.tag = tag
	}
}

// Places sets the maximum number of fraction digits shown.
func Places(n int) Option {
	return func(f *Formatter) {
		if n >= 0 {
			f.places = n
		}
	}
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{tag: language.English, places: scicalc.DefaultDecimalPrecision}
	for _, opt := range opts {
		opt(f)
	}
	f.p = message.NewPrinter(f.tag, message.Catalog(cat))
	return f
}

// Tag returns the formatter's locale.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Expression replaces ASCII operators and PI with the glyphs on the keypad.
func (f *Formatter) Expression(raw string) string {
	return glyphs.Replace(raw)
}

// Number formats a value with locale digit grouping and separators.
func (f *Formatter) Number(v float64) string {
	if v == 0 {
		v = 0
	}
	if a := math.Abs(v); a >= sciThreshold && !math.IsInf(v, 0) {
		return f.p.Sprint(number.Scientific(v, number.MaxFractionDigits(f.places)))
	}
	return f.p.Sprint(number.Decimal(v, number.MaxFractionDigits(f.places)))
}

// Result formats a value, or the localized message for a failure.
func (f *Formatter) Result(res scicalc.Result) string {
	if res.Ok() {
		return f.Number(res.Value())
	}
	return f.Message(res.Kind())
}

// Message returns the localized message for a failure kind. Unknown kinds get
// the message for a malformed expression.
func (f *Formatter) Message(k scicalc.Kind) string {
	msg, ok := Messages[k]
	if !ok {
		msg = Messages[scicalc.MalformedExpression]
	}
	return f.p.Sprintf(msg)
}
