package boolfn

import (
	"fmt"
	"strings"

	"github.com/on-the-ground/delta_uniform_go/gf2n"
)

// Rule is the closed set of evaluation rules a Function can carry:
// Inverse, Tu, Dickson and Polynomial. Monomials are single-term polynomials.
type Rule interface {
	fmt.Stringer
	rule()
}

// Term is coeff * x^exponent.
type Term struct {
	Exponent uint64
	Coeff    gf2n.Elem
}

// Inverse maps x to x^-1, with 0 fixed.
type Inverse struct{}

// Tu is the low-uniformity construction of Tu et al., parameterized by an
// element of trace one.
type Tu struct {
	Delta    gf2n.Elem
	deltaInv gf2n.Elem
}

// Dickson is the Dickson polynomial D_degree(x, alpha) expanded into terms
// at construction.
type Dickson struct {
	Degree uint64
	Alpha  gf2n.Elem
	Terms  []Term
}

// Polynomial is a sparse polynomial, terms ordered by descending exponent.
type Polynomial struct {
	Terms []Term
}

func (Inverse) rule()    {}
func (Tu) rule()         {}
func (Dickson) rule()    {}
func (Polynomial) rule() {}

func (Inverse) String() string { return "inverse" }

func (r Tu) String() string { return fmt.Sprintf("tu(δ=%v)", r.Delta) }

func (r Dickson) String() string {
	return fmt.Sprintf("dickson(deg=%d, α=%v)", r.Degree, r.Alpha)
}

func (r Polynomial) String() string { return formatTerms(r.Terms) }

// Exponents returns the exponents of the expansion, highest first.
func (r Dickson) Exponents() []uint64 {
	out := make([]uint64, len(r.Terms))
	for i, t := range r.Terms {
		out[i] = t.Exponent
	}
	return out
}

// IsMonomial reports whether the polynomial has exactly one term.
func (r Polynomial) IsMonomial() bool { return len(r.Terms) == 1 }

func formatTerms(terms []Term) string {
	if len(terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range terms {
		if i > 0 {
			sb.WriteByte('+')
		}
		switch {
		case t.Exponent == 0:
			sb.WriteString(t.Coeff.String())
			continue
		case t.Coeff != 1:
			sb.WriteString(t.Coeff.String())
			sb.WriteString("·")
		}
		sb.WriteByte('x')
		if t.Exponent > 1 {
			fmt.Fprintf(&sb, "^%d", t.Exponent)
		}
	}
	return sb.String()
}
