package scicalc

import (
	"errors"
	"strconv"
)

// Kind classifies an evaluation failure. Kind implements error so that
// errors.Is(res.Err(), MathError) works on any failed Result.
type Kind int

const (
	// InvalidCharacters means the expression contains a character or word
	// outside the grammar. Such expressions never reach evaluation.
	InvalidCharacters Kind = iota + 1
	// MathError means an operation had no defined result, e.g. sqrt(-1).
	MathError
	// ResultTooLarge means the result does not fit in a float64.
	ResultTooLarge
	// MalformedExpression means the expression is structurally invalid, e.g.
	// mismatched parentheses or a trailing operator.
	MalformedExpression
)

var kindNames = [...]string{
	InvalidCharacters:   "InvalidCharacters",
	MathError:           "MathError",
	ResultTooLarge:      "ResultTooLarge",
	MalformedExpression: "MalformedExpression",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

func (k Kind) Error() string {
	return k.String()
}

// Result is the outcome of evaluating an expression: either a value or a
// failure, never both. The zero Result is the value 0.
type Result struct {
	value float64
	err   *EvalError
}

// Value creates a successful Result.
func Value(v float64) Result {
	return Result{value: v}
}

// Failure creates a failed Result for an expression. cause is the error that
// ended evaluation.
func Failure(kind Kind, expr string, cause error) Result {
	return Result{err: &EvalError{Kind: kind, Expr: expr, Err: cause}}
}

// Ok reports whether r is a value.
func (r Result) Ok() bool {
	return r.err == nil
}

// Value returns the value of r. It is 0 if r is a failure.
func (r Result) Value() float64 {
	return r.value
}

// Kind returns the kind of failure, or 0 if r is a value.
func (r Result) Kind() Kind {
	if r.err == nil {
		return 0
	}
	return r.err.Kind
}

// Err returns the failure as an error, or nil if r is a value. The error is
// always an *EvalError.
func (r Result) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

func (r Result) String() string {
	if r.err != nil {
		return r.err.Kind.String()
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// EvalError is a failed evaluation.
type EvalError struct {
	// Kind is the classification of the failure.
	Kind Kind
	// Expr is the expression as given to the evaluator.
	Expr string
	// Err is the specific error, usually an InputError, *DomainError, or
	// *OverflowError.
	Err error
}

func (err *EvalError) Error() string {
	return err.Kind.String() + ": " + err.Err.Error()
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

// Is reports whether target is the Kind of err.
func (err *EvalError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == err.Kind
}

// OverflowError indicates a result outside the range of float64.
type OverflowError struct {
	// Neg is whether the result was negative.
	Neg bool
}

func (err *OverflowError) Error() string {
	if err.Neg {
		return "result below -" + strconv.FormatFloat(maxFloat, 'g', -1, 64)
	}
	return "result above " + strconv.FormatFloat(maxFloat, 'g', -1, 64)
}

// Classify returns the Kind of failure an error represents. Errors that are
// not from this package are MalformedExpression.
func Classify(err error) Kind {
	var (
		ev *EvalError
		ce *CharError
		ne *NameError
		le *LexError
		de *DomainError
		oe *OverflowError
	)
	switch {
	case errors.As(err, &ev):
		return ev.Kind
	case errors.As(err, &ce), errors.As(err, &ne):
		return InvalidCharacters
	case errors.As(err, &le):
		if le.Kind == "" {
			return InvalidCharacters
		}
		return MalformedExpression
	case errors.As(err, &de):
		return MathError
	case errors.As(err, &oe):
		return ResultTooLarge
	default:
		return MalformedExpression
	}
}
