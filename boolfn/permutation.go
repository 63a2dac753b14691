package boolfn

import (
	"github.com/on-the-ground/delta_uniform_go/gf2n"
)

// IsPermutation reports whether f is a bijection of its field.
func (f *Function) IsPermutation() bool { return IsPermutation(f) }

// IsPermutation reports whether ev is a bijection of its field. Inverse and
// Dickson rules are decided in closed form; anything else is evaluated
// exhaustively, stopping at the first collision.
func IsPermutation(ev Evaluator) bool {
	switch r := RuleOf(ev).(type) {
	case Inverse:
		return true
	case Dickson:
		return dicksonPermutes(ev.Field().Degree(), r)
	}

	order := ev.Field().Order()
	seen := make([]uint64, (order+63)/64)
	for x := uint64(0); x < order; x++ {
		y := gf2n.Bytes(ev.Evaluate(gf2n.MakeElem(x)))
		word, bit := y/64, uint64(1)<<(y%64)
		if seen[word]&bit != 0 {
			return false
		}
		seen[word] |= bit
	}
	return true
}
