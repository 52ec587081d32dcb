package scicalc

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestFactorial(t *testing.T) {
	cases := []struct {
		x    float64
		want float64
		err  bool
	}{
		{0, 1, false},
		{1, 1, false},
		{5, 120, false},
		{20, 2432902008176640000, false},
		{171, math.Inf(1), false},
		{1e9, math.Inf(1), false},
		{math.Inf(1), math.Inf(1), false},
		{-1, 0, true},
		{2.5, 0, true},
		{math.Inf(-1), 0, true},
	}
	ctx := newEvalctx(DefaultPrecisionBits)
	for _, c := range cases {
		var r big.Float
		err := factorial(ctx, &r, big.NewFloat(c.x))
		if c.err {
			var de *DomainError
			if !errors.As(err, &de) {
				t.Errorf("factorial(%v): want *DomainError, got %v", c.x, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("factorial(%v): %v", c.x, err)
			continue
		}
		if got, _ := r.Float64(); got != c.want {
			t.Errorf("factorial(%v): want %v, got %v", c.x, c.want, got)
		}
	}
}

func TestPower(t *testing.T) {
	cases := []struct {
		x, y float64
		want float64
		err  bool
	}{
		{2, 10, 1024, false},
		{2, -2, 0.25, false},
		{-2, 3, -8, false},
		{-2, 2, 4, false},
		{0, 0, 1, false},
		{0, 3, 0, false},
		{0, -1, math.Inf(1), false},
		{-2, 1e6 + 1, math.Inf(-1), false},
		{-2, -1e6 - 1, math.Copysign(0, -1), false},
		{0.5, 1e6, 0, false},
		{math.Inf(1), 2, math.Inf(1), false},
		{2, math.Inf(-1), 0, false},
		{-8, 1.0 / 3, 0, true},
	}
	for _, c := range cases {
		z := new(big.Float).SetPrec(DefaultPrecisionBits)
		err := power(z, big.NewFloat(c.x), big.NewFloat(c.y))
		if c.err {
			var de *DomainError
			if !errors.As(err, &de) {
				t.Errorf("%v^%v: want *DomainError, got %v", c.x, c.y, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v^%v: %v", c.x, c.y, err)
			continue
		}
		got, _ := z.Float64()
		if got != c.want || math.Signbit(got) != math.Signbit(c.want) {
			t.Errorf("%v^%v: want %v, got %v", c.x, c.y, c.want, got)
		}
	}
}

func TestDomainErrorNames(t *testing.T) {
	cases := []struct {
		src  string
		name string
	}{
		{"sqrt(-1)", "sqrt"},
		{"ln(0)", "ln"},
		{"log(-1)", "log"},
		{"factorial(-1)", "factorial"},
		{"(-1)!", "factorial"},
		{"5%0", "%"},
		{"0/0", "/"},
		{"(-8)^0.5", "^"},
	}
	for _, c := range cases {
		e, err := parse(c.src)
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		_, err = newEvalctx(DefaultPrecisionBits).run(e)
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("%q: want *DomainError, got %v", c.src, err)
			continue
		}
		if de.Func != c.name {
			t.Errorf("%q: want error from %s, got %s", c.src, c.name, de.Func)
		}
	}
}

func TestModOperands(t *testing.T) {
	cases := []struct {
		src string
		arg int
	}{
		{"5%0", 2},
		{"171!%3", 1},
	}
	for _, c := range cases {
		e, err := parse(c.src)
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		_, err = newEvalctx(DefaultPrecisionBits).run(e)
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("%q: want *DomainError, got %v", c.src, err)
			continue
		}
		if de.Arg != c.arg {
			t.Errorf("%q: want argument %d, got %d (%v)", c.src, c.arg, de.Arg, err)
		}
	}
	// A finite dividend too large for float64 overflows rather than
	// blaming the divisor.
	e, err := parse("10^400%3")
	if err != nil {
		t.Fatal(err)
	}
	_, err = newEvalctx(DefaultPrecisionBits).run(e)
	var oe *OverflowError
	if !errors.As(err, &oe) || oe.Neg {
		t.Errorf("10^400%%3: want positive *OverflowError, got %v", err)
	}
}

func TestConstants(t *testing.T) {
	ctx := newEvalctx(DefaultPrecisionBits)
	if got, _ := ctx.constant("π").Float64(); got != math.Pi {
		t.Errorf("π: want %v, got %v", math.Pi, got)
	}
	if got, _ := ctx.constant("PI").Float64(); got != math.Pi {
		t.Errorf("PI: want %v, got %v", math.Pi, got)
	}
	if got, _ := ctx.constant("E").Float64(); math.Abs(got-math.E) > 1e-15 {
		t.Errorf("E: want %v, got %v", math.E, got)
	}
}
