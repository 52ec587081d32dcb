package scicalc

import (
	"strings"
)

// Expr = num | const | Call | Fact | Neg | Plus | Add | Sub | Mul | Div | Mod | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Fact = Expr '!'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse validates and parses an expression. Only the MaxLength option
// affects parsing.
func Parse(src string, opts ...Option) (*Expr, error) {
	cfg := applyOptions(DefaultConfig(), opts)
	s, err := validate(src, cfg.MaxExpressionLength)
	if err != nil {
		return nil, err
	}
	return parse(s)
}

// parse parses a validated expression.
func parse(src string) (*Expr, error) {
	scan := lex(strings.NewReader(src))
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
		if n == nil {
			return nil, &EmptyExpressionError{Col: tok.pos}
		}
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return &Expr{n: n}, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, until operator) (*node, error) {
	n, err := parselhs(scan, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent, tokenOpen:
			// (parsed) x -> (parsed) * (x)
			// (parsed) (expr) -> (parsed) * (expr)
			// a^(parsed) x -> (a^(parsed)) * (x)
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAt(scan)
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAt(scan)
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenBang:
			// parselhs takes every ! that follows an operand, so this one
			// follows nothing it can apply to.
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("scicalc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text}
	case tokenIdent:
		if _, ok := constants[tok.text]; ok {
			n = &node{kind: nodeConst, name: tok.text}
			break
		}
		fn := functions[tok.text]
		if fn == nil {
			return nil, &NameError{Col: tok.pos, Name: tok.text}
		}
		n, err = parsecall(scan, fn, tok.text)
		if err != nil {
			return nil, err
		}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyAt(scan)
		}
		// Any factorial was already applied to the operand: -3! is -(3!).
		return &node{kind: prec.op, left: rhs}, nil
	case tokenOpen:
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// Let the caller decide whether an empty subexpression is an error.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenBang:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("scicalc: unknown token: " + tok.String())
	}
	return parsefact(scan, n)
}

// parsefact wraps n in a call to factorial for each ! that follows it.
func parsefact(scan *lexer, n *node) (*node, error) {
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenBang {
			scan.push(tok)
			return n, nil
		}
		n = &node{
			kind:  nodeCall,
			name:  factorialName,
			fn:    functions[factorialName],
			right: &node{kind: nodeArg, left: n},
		}
	}
}

// parsecall parses the argument list of a call to fn.
func parsecall(scan *lexer, fn function, name string) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOpen {
		return nil, &CallError{Col: tok.pos, Func: name, Len: -1}
	}
	args, len, err := parsearglist(scan)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenClose {
		panic("scicalc: parsearglist ended on " + end.String() + " instead of close bracket")
	}
	if !fn.canCall(len) {
		return nil, &CallError{Col: tok.pos, Func: name, Len: len}
	}
	return &node{kind: nodeCall, name: name, fn: fn, right: args}, nil
}

// parsearglist parses a parenthesized list of zero or more args after the
// open parenthesis has been scanned.
func parsearglist(scan *lexer) (*node, int, error) {
	var n node
	l := &n
	len := 0
	for {
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			// As a special case, reporting a missing bracket is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: "("}
			}
			return nil, 0, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			scan.push(end)
			if rhs == nil {
				// func() has no arguments, but func(a,) is an error.
				if len != 0 {
					return nil, 0, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, 0, nil
			}
			l.right = &node{kind: nodeArg, left: rhs}
			return n.right, len + 1, nil
		case tokenSep:
			if rhs == nil {
				return nil, 0, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			len++
			l.right = &node{kind: nodeArg, left: rhs}
			l = l.right
		case tokenEOF:
			return nil, 0, &BracketError{Col: end.pos, Left: "(", Right: ""}
		default:
			panic("scicalc: parseterm ended on non-end token " + end.String())
		}
	}
}

// emptyAt creates an error for an empty subexpression ended by the pushed
// token. The token stays pushed.
func emptyAt(scan *lexer) error {
	tok := scan.must()
	scan.push(tok)
	return &EmptyExpressionError{Col: tok.pos, End: tok.text}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression
// began with an open parenthesis.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		// A close bracket at the end of the whole input has no partner.
		return &BracketError{Col: tok.pos, Left: left, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("scicalc: it really should not have ended this way: " + tok.String())
	}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false, true)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Lower is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence of implicit multiplication. It is the same
	// as multiplication, so 1/2π is (1/2)*π.
	termprec = operator{5, false, nodeMul}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
