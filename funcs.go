package scicalc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// function is an entry in the function table. The table is closed: nothing
// outside this file adds to it.
type function interface {
	// call evaluates the function. args has a length for which canCall
	// returned true and may be modified. The function must set r to its
	// result, to the precision of ctx, and should not use the value of r
	// otherwise.
	call(ctx *evalctx, args []*big.Float, r *big.Float) error
	// canCall returns whether the function can be called with n arguments.
	canCall(n int) bool
}

const factorialName = "factorial"

// maxFactorial is the largest argument to factorial with a finite float64
// result.
const maxFactorial = 170

var functions = map[string]function{
	"sqrt": monadic(sqrt),
	"pow":  powfn{},
	"abs": monadic(func(ctx *evalctx, r, x *big.Float) error {
		r.Abs(x)
		return nil
	}),
	"sin": float64fn(math.Sin),
	"cos": float64fn(math.Cos),
	"tan": float64fn(math.Tan),
	"log": monadic(log10),
	"ln":  monadic(ln),
	"deg": monadic(func(ctx *evalctx, r, x *big.Float) error {
		r.Mul(x, ctx.constant("π"))
		r.Quo(r, big.NewFloat(180))
		return nil
	}),
	factorialName: monadic(factorial),
}

// constants maps each constant name to a function computing it at a given
// precision.
var constants = map[string]func(prec uint) *big.Float{
	"π":  pi,
	"PI": pi,
	"E": func(prec uint) *big.Float {
		one := new(big.Float).SetPrec(prec).SetInt64(1)
		return bigfloat.Exp(new(big.Float).SetPrec(prec), one)
	},
}

func pi(prec uint) *big.Float {
	return bigfloat.Pi(new(big.Float).SetPrec(prec))
}

// monadic is a function of one argument.
type monadic func(ctx *evalctx, r, x *big.Float) error

func (f monadic) call(ctx *evalctx, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.prec)
	return f(ctx, r, args[0])
}

func (monadic) canCall(n int) bool {
	return n == 1
}

// float64fn is a function of one argument computed in float64. It is used
// for functions without an arbitrary-precision implementation.
type float64fn func(float64) float64

func (f float64fn) call(ctx *evalctx, args []*big.Float, r *big.Float) error {
	x := args[0]
	if x.IsInf() {
		return &DomainError{X: x, Arg: 1}
	}
	v, _ := x.Float64()
	y := f(v)
	if math.IsNaN(y) {
		return &DomainError{X: x, Arg: 1}
	}
	r.SetPrec(ctx.prec).SetFloat64(y)
	return nil
}

func (float64fn) canCall(n int) bool {
	return n == 1
}

// powfn is pow(base, exp) with exp defaulting to 2.
type powfn struct{}

func (powfn) call(ctx *evalctx, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.prec)
	if len(args) == 1 {
		return power(r, args[0], big.NewFloat(2))
	}
	return power(r, args[0], args[1])
}

func (powfn) canCall(n int) bool {
	return n == 1 || n == 2
}

func sqrt(ctx *evalctx, r, x *big.Float) error {
	switch {
	case x.Sign() < 0:
		return &DomainError{X: x, Arg: 1}
	case x.IsInf():
		r.SetInf(false)
	default:
		r.Sqrt(x)
	}
	return nil
}

func ln(ctx *evalctx, r, x *big.Float) error {
	switch {
	case x.Sign() <= 0:
		return &DomainError{X: x, Arg: 1}
	case x.IsInf():
		r.SetInf(false)
	default:
		bigfloat.Log(r, x)
	}
	return nil
}

func log10(ctx *evalctx, r, x *big.Float) error {
	if err := ln(ctx, r, x); err != nil || r.IsInf() {
		return err
	}
	ten := new(big.Float).SetPrec(ctx.prec).SetInt64(10)
	bigfloat.Log(ten, ten)
	r.Quo(r, ten)
	return nil
}

func factorial(ctx *evalctx, r, x *big.Float) error {
	switch {
	case x.Sign() < 0, !x.IsInf() && !x.IsInt():
		return &DomainError{X: x, Arg: 1}
	case x.IsInf(), x.Cmp(big.NewFloat(maxFactorial)) > 0:
		r.SetInf(false)
		return nil
	}
	n, _ := x.Int64()
	var f big.Int
	// MulRange gives 1 for an empty range, covering 0! and 1!.
	r.SetInt(f.MulRange(1, n))
	return nil
}

// maxPowBits bounds the binary magnitude of a power computed exactly. Results
// beyond it are far outside float64 range and are set to Inf or zero
// directly.
const maxPowBits = 1 << 16

// power sets z to x^y. z must already have its precision set.
func power(z, x, y *big.Float) error {
	if y.Sign() == 0 {
		z.SetInt64(1)
		return nil
	}
	if x.IsInf() || y.IsInf() {
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		v := math.Pow(xf, yf)
		if math.IsNaN(v) {
			return &DomainError{X: x, Func: "^"}
		}
		z.SetFloat64(v)
		return nil
	}
	if x.Sign() == 0 {
		if y.Sign() < 0 {
			z.SetInf(false)
		} else {
			z.SetInt64(0)
		}
		return nil
	}
	yint := y.IsInt()
	if x.Sign() < 0 && !yint {
		return &DomainError{X: x, Func: "^"}
	}
	// Estimate log2|x^y| to catch results that overflow or underflow any
	// representation before computing them.
	var mant big.Float
	exp := x.MantExp(&mant)
	m, _ := mant.Float64()
	yf, _ := y.Float64()
	bits := yf * (float64(exp) + math.Log2(math.Abs(m)))
	odd := false
	if yint {
		yi, _ := y.Int(nil)
		odd = yi.Bit(0) == 1
	}
	switch {
	case bits > maxPowBits:
		z.SetInf(x.Sign() < 0 && odd)
		return nil
	case bits < -maxPowBits:
		z.SetInt64(0)
		if x.Sign() < 0 && odd {
			z.Neg(z)
		}
		return nil
	}
	if !yint {
		bigfloat.Pow(z, x, y)
		return nil
	}
	yi, _ := y.Int(nil)
	neg := yi.Sign() < 0
	yi.Abs(yi)
	// Square and multiply, starting from the high bit.
	b := new(big.Float).SetPrec(z.Prec()).Set(x)
	z.SetInt64(1)
	for i := yi.BitLen() - 1; i >= 0; i-- {
		z.Mul(z, z)
		if yi.Bit(i) == 1 {
			z.Mul(z, b)
		}
	}
	if neg {
		z.Quo(new(big.Float).SetPrec(z.Prec()).SetInt64(1), z)
	}
	return nil
}

// DomainError is an error returned when an operation is applied to arguments
// outside its domain, i.e. where the result would be NaN.
type DomainError struct {
	// X is the out-of-domain argument. It may be nil when the operation has
	// no single offending argument.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 for operators.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
	// Err is the math/big error behind the failure, if any.
	Err error
}

func (err *DomainError) Error() string {
	r := "undefined result"
	if err.X != nil {
		r = err.X.Text('g', 10) + " outside domain"
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	if err.Err != nil {
		r += ": " + err.Err.Error()
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return err.Err
}
