package boolfn

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
)

// NewDickson returns the Dickson polynomial of the given degree with
// parameter alpha:
//
//	D_k(x, α) = Σ_{i=0}^{⌊k/2⌋} k/(k-i) · C(k-i, i) · α^i · x^(k-2i)
//
// Only the terms whose integer coefficient is odd survive in
// characteristic two.
func NewDickson(field *gf2n.Field, degree uint64, alpha gf2n.Elem) (*Function, error) {
	if !field.Contains(alpha) {
		return nil, fmt.Errorf("%w: dickson α=%v in %v", ErrFieldMismatch, alpha, field)
	}
	terms, err := dicksonTerms(field, degree, alpha)
	if err != nil {
		return nil, err
	}
	return &Function{
		field: field,
		rule:  Dickson{Degree: degree, Alpha: alpha, Terms: terms},
	}, nil
}

func dicksonTerms(field *gf2n.Field, degree uint64, alpha gf2n.Elem) ([]Term, error) {
	terms := []Term{{Exponent: degree, Coeff: 1}}
	deg := uint256.NewInt(degree)
	alphaPow := gf2n.Elem(1)

	for i := uint64(1); i <= degree/2; i++ {
		alphaPow = field.Mul(alphaPow, alpha)

		// numerator = k · Π_{j=1}^{i-1} (k-i-j), denominator = i!
		num := new(uint256.Int).Set(deg)
		den := uint256.NewInt(1)
		for j := uint64(1); j < i; j++ {
			if _, overflow := num.MulOverflow(num, uint256.NewInt(degree-i-j)); overflow {
				return nil, fmt.Errorf("%w: numerator of term %d of D_%d", ErrDicksonDegree, i, degree)
			}
			if _, overflow := den.MulOverflow(den, uint256.NewInt(j+1)); overflow {
				return nil, fmt.Errorf("%w: denominator of term %d of D_%d", ErrDicksonDegree, i, degree)
			}
		}
		coeff := new(uint256.Int).Div(num, den)
		if coeff.Uint64()&1 == 1 && alphaPow != 0 {
			terms = append(terms, Term{Exponent: degree - 2*i, Coeff: alphaPow})
		}
	}
	return terms, nil
}

// dicksonPermutes applies the classical criterion: for α != 0, D_k(x, α)
// permutes GF(2^n) iff gcd(k, 2^(2n) - 1) = 1. For α = 0 it degenerates to
// the monomial x^k.
func dicksonPermutes(n int, r Dickson) bool {
	if r.Degree == 0 {
		return false
	}
	if r.Alpha == 0 {
		return gcd(r.Degree, uint64(1)<<uint(n)-1) == 1
	}
	return gcd(r.Degree, ^uint64(0)>>uint(64-2*n)) == 1
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
