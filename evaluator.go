package scicalc

import (
	"math"
)

const maxFloat = math.MaxFloat64

// Evaluator evaluates calculator expressions. An Evaluator holds only its
// configuration, so it is safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// New creates an Evaluator. Options apply in order on top of DefaultConfig.
func New(opts ...Option) (*Evaluator, error) {
	cfg := applyOptions(DefaultConfig(), opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{cfg: cfg}, nil
}

// Config returns the evaluator's configuration.
func (ev *Evaluator) Config() Config {
	return ev.cfg
}

// Evaluate validates, parses, and evaluates an expression. The result is
// rounded half away from zero to the configured number of decimal places.
func (ev *Evaluator) Evaluate(raw string) Result {
	src, err := validate(raw, ev.cfg.MaxExpressionLength)
	if err != nil {
		return Failure(Classify(err), raw, err)
	}
	e, err := parse(src)
	if err != nil {
		return Failure(Classify(err), raw, err)
	}
	v, err := newEvalctx(ev.cfg.PrecisionBits).run(e)
	if err != nil {
		return Failure(Classify(err), raw, err)
	}
	f, _ := v.Float64()
	switch {
	case math.IsNaN(f):
		return Failure(MathError, raw, &DomainError{})
	case math.IsInf(f, 0):
		return Failure(ResultTooLarge, raw, &OverflowError{Neg: f < 0})
	}
	return Value(Round(f, ev.cfg.DecimalPrecision))
}

// Eval evaluates an expression and returns its value or an *EvalError.
func (ev *Evaluator) Eval(raw string) (float64, error) {
	r := ev.Evaluate(raw)
	return r.Value(), r.Err()
}

// Round rounds x half away from zero to places decimal places. Values with no
// representable digits beyond that are returned unchanged, and -0 becomes 0.
func Round(x float64, places int) float64 {
	switch {
	case x == 0:
		return 0
	case math.IsNaN(x), math.IsInf(x, 0):
		return x
	}
	scale := math.Pow10(places)
	// 2^52 is where float64 stops having fractional bits.
	if s := math.Abs(x) * scale; s >= 1<<52 {
		return x
	}
	r := math.Round(x*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
