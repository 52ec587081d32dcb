package scicalc_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("1+2*3")
	f.Add("2π")
	f.Add("(2+1)!")
	f.Add("1×2")
	f.Add("pow(2,0.5)")
	f.Add("9^9^9")
	ev, err := scicalc.New()
	if err != nil {
		f.Fatal(err)
	}
	f.Fuzz(func(t *testing.T, s string) {
		r := ev.Evaluate(s)
		if r.Ok() {
			if v := r.Value(); math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%q: non-finite value %v", s, v)
			}
			return
		}
		if r.Kind() < scicalc.InvalidCharacters || r.Kind() > scicalc.MalformedExpression {
			t.Errorf("%q: unknown kind %v", s, r.Kind())
		}
	})
}
