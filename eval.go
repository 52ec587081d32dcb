package scicalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// evalctx is the state of a single evaluation. Each evaluation creates its
// own, so nothing is shared between calls.
type evalctx struct {
	stack  []*big.Float
	nums   map[string]*big.Float
	consts map[string]*big.Float
	prec   uint
}

func newEvalctx(prec uint) *evalctx {
	return &evalctx{
		stack: make([]*big.Float, 0, 8),
		nums:  make(map[string]*big.Float),
		prec:  prec,
	}
}

// run evaluates an expression and returns its value. Operations that would
// produce NaN in math/big panic with big.ErrNaN; run reports those as
// *DomainError.
func (ctx *evalctx) run(e *Expr) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		nan, ok := p.(big.ErrNaN)
		if !ok {
			panic(p)
		}
		r, err = nil, &DomainError{Err: nan}
	}()
	if err := e.n.eval(ctx); err != nil {
		return nil, err
	}
	if len(ctx.stack) != 1 {
		panic("scicalc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
	return ctx.stack[0], nil
}

// push ensures a settable value on the stack.
func (ctx *evalctx) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *evalctx) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *evalctx) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *evalctx) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		// The lexer only produces digits with at most one point.
		panic("scicalc: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// constant gets the value of a named constant at the context's precision.
func (ctx *evalctx) constant(name string) *big.Float {
	if r := ctx.consts[name]; r != nil {
		return r
	}
	f := constants[name]
	if f == nil {
		panic("scicalc: unknown constant " + strconv.Quote(name))
	}
	if ctx.consts == nil {
		ctx.consts = make(map[string]*big.Float, len(constants))
	}
	r := f(ctx.prec)
	ctx.consts[name] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *evalctx) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
	case nodeConst:
		ctx.push().Set(ctx.constant(n.name))
	case nodeCall:
		r := ctx.push()
		k := len(ctx.stack)
		for l := n.right; l != nil; l = l.right {
			if err := l.left.eval(ctx); err != nil {
				return err
			}
		}
		args := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		if err := n.fn.call(ctx, args, r); err != nil {
			var de *DomainError
			if errors.As(err, &de) && de.Func == "" {
				de.Func = n.name
			}
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeArg:
		panic("scicalc: eval on nodeArg")
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeNop:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		return binary(n.kind, l, r)
	default:
		panic("scicalc: invalid AST node " + n.kind.String())
	}
	return nil
}

// binary sets l to the result of applying a binary operator to l and r.
func binary(op nodeKind, l, r *big.Float) error {
	switch op {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return &DomainError{X: r, Func: "/"}
		}
		l.Quo(l, r)
	case nodeMod:
		// Remainder takes the sign of the dividend, as math.Mod does.
		x, _ := l.Float64()
		y, _ := r.Float64()
		switch {
		case l.IsInf():
			return &DomainError{X: l, Arg: 1, Func: "%"}
		case math.IsInf(x, 0):
			return &OverflowError{Neg: x < 0}
		case y == 0:
			return &DomainError{X: r, Arg: 2, Func: "%"}
		}
		l.SetFloat64(math.Mod(x, y))
	case nodePow:
		return power(l, l, r)
	default:
		panic("scicalc: not a binary operator: " + op.String())
	}
	return nil
}
