// Package input builds calculator expressions from key presses.
package input

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/zephyrtronium/scicalc"
)

// Evaluator evaluates a complete expression. *scicalc.Evaluator implements
// it.
type Evaluator interface {
	Evaluate(expr string) scicalc.Result
}

var (
	// ErrTooLong is returned when a key would make the expression longer
	// than the maximum length.
	ErrTooLong = errors.New("input: expression too long")
	// ErrUnknownKey is returned for a key that is not on the keypad.
	ErrUnknownKey = errors.New("input: unknown key")
)

// Functions are the function keys. Pressing one appends its name and an open
// parenthesis.
var Functions = []string{"sqrt", "pow", "abs", "sin", "cos", "tan", "log", "ln", "deg", "factorial"}

// glyphs maps keypad operator glyphs to what is stored in the expression.
var glyphs = map[string]string{"×": "*", "÷": "/", "−": "-", "PI": "π"}

const binaryOps = "+-*/%^"

// Controller is the expression being typed. It is not safe for concurrent
// use.
type Controller struct {
	ev     Evaluator
	maxLen int
	logger *zap.SugaredLogger

	// toks are the key presses making up the expression, so that Backspace
	// can remove a function name in one step.
	toks []string
	// calculated is set when toks hold the result of the last calculation.
	calculated bool
	memory     float64
	hooks      []func(expr string, res scicalc.Result)
}

// Option configures a Controller.
type Option func(*Controller)

// MaxLength sets the maximum expression length in runes.
func MaxLength(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxLen = n
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Controller with an empty expression.
func New(ev Evaluator, opts ...Option) *Controller {
	c := &Controller{
		ev:     ev,
		maxLen: scicalc.DefaultMaxExpressionLength,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnResult registers a function called after each successful Calculate with
// the expression and its result.
func (c *Controller) OnResult(f func(expr string, res scicalc.Result)) {
	c.hooks = append(c.hooks, f)
}

// Expression returns the current expression.
func (c *Controller) Expression() string {
	return strings.Join(c.toks, "")
}

// Press applies one key. Keys are digits, ".", operators including the
// glyphs × ÷ −, parentheses, "!", ",", the constants π, PI, and E, and
// function names. A key that would be meaningless at the current position,
// such as a second decimal point in a number, is ignored.
func (c *Controller) Press(key string) error {
	if g, ok := glyphs[key]; ok {
		key = g
	}
	switch {
	case isDigit(key):
		c.startFresh()
		return c.push(key)
	case key == ".":
		c.startFresh()
		if c.numberHasPoint() {
			return nil
		}
		return c.push(key)
	case len(key) == 1 && strings.Contains(binaryOps, key):
		return c.operator(key)
	case key == "(", key == "π", key == "E":
		c.startFresh()
		return c.push(key)
	case key == ")", key == "!", key == ",":
		c.calculated = false
		return c.push(key)
	case isFunction(key):
		c.startFresh()
		return c.push(key + "(")
	}
	return errors.Wrapf(ErrUnknownKey, "%q", key)
}

// operator appends a binary operator. A new operator replaces trailing
// operators, except that - after * / % ^ or ( is a sign and is appended.
func (c *Controller) operator(op string) error {
	c.calculated = false
	last := c.last()
	switch {
	case opens(last):
		if op != "-" {
			return nil
		}
	case isOp(last):
		if op == "-" && strings.Contains("*/%^", last) {
			break
		}
		old := c.toks
		for len(c.toks) > 0 && isOp(c.last()) {
			c.toks = c.toks[:len(c.toks)-1]
		}
		if opens(c.last()) {
			// Only a sign was removed; a binary operator can't go here.
			if op != "-" {
				c.toks = old
				return nil
			}
		}
		if err := c.push(op); err != nil {
			c.toks = old
			return err
		}
		return nil
	}
	return c.push(op)
}

// startFresh clears a calculated result before a key that begins a new
// operand.
func (c *Controller) startFresh() {
	if c.calculated {
		c.toks = c.toks[:0]
		c.calculated = false
	}
}

// opens reports whether tok begins an operand list, so that only a sign can
// follow it.
func opens(tok string) bool {
	return tok == "" || tok == "," || strings.HasSuffix(tok, "(")
}

func (c *Controller) push(tok string) error {
	if utf8.RuneCountInString(c.Expression())+utf8.RuneCountInString(tok) > c.maxLen {
		return ErrTooLong
	}
	c.toks = append(c.toks, tok)
	return nil
}

func (c *Controller) last() string {
	if len(c.toks) == 0 {
		return ""
	}
	return c.toks[len(c.toks)-1]
}

// numberHasPoint reports whether the number at the end of the expression
// already has a decimal point.
func (c *Controller) numberHasPoint() bool {
	for i := len(c.toks) - 1; i >= 0; i-- {
		switch t := c.toks[i]; {
		case t == ".":
			return true
		case !isDigit(t):
			return false
		}
	}
	return false
}

// Backspace removes the last key.
func (c *Controller) Backspace() {
	c.calculated = false
	if len(c.toks) > 0 {
		c.toks = c.toks[:len(c.toks)-1]
	}
}

// Clear empties the expression.
func (c *Controller) Clear() {
	c.toks = c.toks[:0]
	c.calculated = false
}

// Set replaces the expression, e.g. with one recalled from history.
func (c *Controller) Set(expr string) error {
	if utf8.RuneCountInString(expr) > c.maxLen {
		return ErrTooLong
	}
	c.toks = tokenize(expr)
	c.calculated = false
	return nil
}

// Calculate evaluates the expression. On success, the expression is replaced
// by the result, which the next operator continues from and the next operand
// replaces, and OnResult functions are called. On failure, the expression is
// left as it was.
func (c *Controller) Calculate() scicalc.Result {
	expr := c.Expression()
	res := c.ev.Evaluate(expr)
	if !res.Ok() {
		c.logger.Debugw("Calculation failed", "expression", expr, "kind", res.Kind(), "error", res.Err())
		return res
	}
	c.toks = valueToks(res.Value())
	c.calculated = true
	if utf8.RuneCountInString(c.Expression()) > c.maxLen {
		c.logger.Debugw("Result does not fit the expression", "expression", expr, "value", res.Value())
		c.toks = c.toks[:0]
		c.calculated = false
	}
	for _, f := range c.hooks {
		f(expr, res)
	}
	return res
}

// Memory returns the memory register.
func (c *Controller) Memory() float64 {
	return c.memory
}

// MemoryAdd evaluates the expression and adds it to memory. An empty
// expression adds nothing.
func (c *Controller) MemoryAdd() error {
	v, err := c.value()
	if err != nil {
		return err
	}
	c.memory += v
	return nil
}

// MemorySubtract evaluates the expression and subtracts it from memory.
func (c *Controller) MemorySubtract() error {
	v, err := c.value()
	if err != nil {
		return err
	}
	c.memory -= v
	return nil
}

// MemoryRecall inserts the memory value as an operand.
func (c *Controller) MemoryRecall() error {
	c.startFresh()
	s := formatValue(c.memory)
	if utf8.RuneCountInString(c.Expression()+s) > c.maxLen {
		return ErrTooLong
	}
	c.toks = append(c.toks, valueToks(c.memory)...)
	return nil
}

// MemoryClear sets memory to zero.
func (c *Controller) MemoryClear() {
	c.memory = 0
}

func (c *Controller) value() (float64, error) {
	if len(c.toks) == 0 {
		return 0, nil
	}
	res := c.ev.Evaluate(c.Expression())
	return res.Value(), res.Err()
}

// formatValue writes v as an operand. Magnitudes that would need more than
// 21 digits either way are written as a bracketed power of ten, e.g.
// (7.257415615307999*10^306), since the grammar has no exponent notation.
func formatValue(v float64) string {
	if a := math.Abs(v); a == 0 || 1e-6 <= a && a < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	m, e, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	x, _ := strconv.Atoi(e)
	return "(" + m + "*10^" + strconv.Itoa(x) + ")"
}

// valueToks is the keys for v. A bracketed value is one key, so Backspace
// removes it whole.
func valueToks(v float64) []string {
	s := formatValue(v)
	if strings.HasPrefix(s, "(") {
		return []string{s}
	}
	return tokenize(s)
}

// tokenize splits an expression into keys: names, with the open parenthesis
// of a function call, and single runes otherwise.
func tokenize(s string) []string {
	var toks []string
	for len(s) > 0 {
		n := strings.IndexFunc(s, func(r rune) bool { return !isLetter(r) })
		if n < 0 {
			n = len(s)
		}
		if n == 0 {
			_, n = utf8.DecodeRuneInString(s)
		} else if strings.HasPrefix(s[n:], "(") && isFunction(s[:n]) {
			n++
		}
		toks = append(toks, s[:n])
		s = s[n:]
	}
	return toks
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(s string) bool {
	return len(s) == 1 && '0' <= s[0] && s[0] <= '9'
}

func isOp(s string) bool {
	return len(s) == 1 && strings.Contains(binaryOps, s)
}

func isFunction(s string) bool {
	for _, f := range Functions {
		if s == f {
			return true
		}
	}
	return false
}
