package scicalc

import (
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{".5", []lexToken{{text: ".5", kind: tokenNum, pos: 1}}, 0},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}}, 1},
		{".", []lexToken{{pos: 1}}, 1},
		// operators
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1%0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "%", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"2^3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "^", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 3}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1 + 2", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 3}, {text: "2", kind: tokenNum, pos: 5}}, 0},
		// glyphs
		{"×", []lexToken{{text: "*", kind: tokenOp, pos: 1}}, 0},
		{"÷", []lexToken{{text: "/", kind: tokenOp, pos: 1}}, 0},
		{"−1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		// identifiers
		{"E", []lexToken{{text: "E", kind: tokenIdent, pos: 1}}, 0},
		{"PI", []lexToken{{text: "PI", kind: tokenIdent, pos: 1}}, 0},
		{"2π", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "π", kind: tokenIdent, pos: 2}}, 0},
		{"πE", []lexToken{{text: "π", kind: tokenIdent, pos: 1}, {text: "E", kind: tokenIdent, pos: 2}}, 0},
		{"sqrt(2)", []lexToken{
			{text: "sqrt", kind: tokenIdent, pos: 1},
			{text: "(", kind: tokenOpen, pos: 5},
			{text: "2", kind: tokenNum, pos: 6},
			{text: ")", kind: tokenClose, pos: 7},
		}, 0},
		{"pow(2,3)", []lexToken{
			{text: "pow", kind: tokenIdent, pos: 1},
			{text: "(", kind: tokenOpen, pos: 4},
			{text: "2", kind: tokenNum, pos: 5},
			{text: ",", kind: tokenSep, pos: 6},
			{text: "3", kind: tokenNum, pos: 7},
			{text: ")", kind: tokenClose, pos: 8},
		}, 0},
		// factorial
		{"5!", []lexToken{{text: "5", kind: tokenNum, pos: 1}, {text: "!", kind: tokenBang, pos: 2}}, 0},
		{")!", []lexToken{{text: ")", kind: tokenClose, pos: 1}, {text: "!", kind: tokenBang, pos: 2}}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"[", []lexToken{{pos: 1}}, 1},
		{";", []lexToken{{pos: 1}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		got, err := scan.next()
		if err != nil || got.kind != tokenEOF {
			t.Errorf("scanning %q: want EOF token, got %v with error %v", c.src, got, err)
		}
		for got, err := scan.next(); err != io.EOF; got, err = scan.next() {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexErrorKind(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		text string
	}{
		{"$", "", "$"},
		{"1.2.", "number", "1.2."},
		{".", "number", "."},
	}
	for _, c := range cases {
		_, err := lex(strings.NewReader(c.src)).next()
		le, ok := err.(*LexError)
		if !ok {
			t.Errorf("scanning %q: want *LexError, got %#v", c.src, err)
			continue
		}
		if le.Kind != c.kind || le.Text != c.text {
			t.Errorf("scanning %q: want kind %q text %q, got %q %q", c.src, c.kind, c.text, le.Kind, le.Text)
		}
	}
}
