package scicalc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// allowed contains every non-letter rune that may appear in an expression.
const allowed = "0123456789.,()!π" + Operators

// validate strips whitespace from src and checks it against the allowlist of
// the grammar. Letters are accepted only as whole words that name a constant
// or function, so no other identifier can reach the parser.
func validate(src string, maxlen int) (string, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
	if s == "" {
		return "", &EmptyExpressionError{Col: 1}
	}
	if n := utf8.RuneCountInString(s); n > maxlen {
		return "", &LengthError{Len: n, Max: maxlen}
	}
	col := 0
	word := 0
	for i, r := range s {
		col++
		if isNameRune(r) {
			if word == 0 {
				word = i + 1
			}
			continue
		}
		if word != 0 {
			if err := checkName(s, word-1, i, col-(i-word+1)); err != nil {
				return "", err
			}
			word = 0
		}
		if !strings.ContainsRune(allowed, r) {
			return "", &CharError{Text: string(r), Col: col}
		}
	}
	if word != 0 {
		if err := checkName(s, word-1, len(s), col-(len(s)-word)); err != nil {
			return "", err
		}
	}
	return s, nil
}

// checkName returns a *CharError if the name s[start:end] is not a known
// constant or function. col is the position of the name.
func checkName(s string, start, end, col int) error {
	name := s[start:end]
	if _, ok := constants[name]; ok {
		// E against a digit reads as an exponent, as in 1E5.
		if name == "E" && (digitAt(s, start-1) || digitAt(s, end)) {
			return &CharError{Text: name, Col: col}
		}
		return nil
	}
	if _, ok := functions[name]; ok {
		return nil
	}
	return &CharError{Text: name, Col: col}
}

func digitAt(s string, i int) bool {
	return 0 <= i && i < len(s) && '0' <= s[i] && s[i] <= '9'
}

// CharError indicates a character or word outside the calculator's grammar.
// It implements InputError.
type CharError struct {
	// Text is the offending rune, or the whole word if it is made of letters.
	Text string
	// Col is the position of the first rune of Text after whitespace is
	// removed.
	Col int
}

func (err *CharError) Error() string {
	return errpos(err.Col, "invalid characters "+strconv.Quote(err.Text))
}

func (err *CharError) Pos() int {
	return err.Col
}

// LengthError indicates an expression longer than the configured maximum. It
// implements InputError.
type LengthError struct {
	// Len is the number of runes in the expression, ignoring whitespace.
	Len int
	// Max is the configured maximum.
	Max int
}

func (err *LengthError) Error() string {
	return errpos(err.Max+1, "expression of "+strconv.Itoa(err.Len)+" characters exceeds limit of "+strconv.Itoa(err.Max))
}

func (err *LengthError) Pos() int {
	return err.Max + 1
}
