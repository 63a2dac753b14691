// Package gf2n implements arithmetic in the binary field GF(2^n).
//
// Elements are polynomials over GF(2) of degree below n, packed into the
// bits of an unsigned integer (bit i holds the coefficient of x^i). The
// reduction modulus is an irreducible polynomial of degree n. Polynomial
// arithmetic is delegated to chunker.Pol.
package gf2n

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/restic/chunker"
)

// MaxDegree is the largest supported field degree.
const MaxDegree = 32

var (
	// ErrDegree is returned when the requested field degree is out of range.
	ErrDegree = errors.New("field degree out of range")

	// ErrReducible is returned when a candidate modulus is not irreducible.
	ErrReducible = errors.New("modulus is reducible")
)

// Field is GF(2^n) defined by a fixed irreducible modulus.
// A Field is immutable and safe for concurrent use.
type Field struct {
	modulus   chunker.Pol
	degree    int
	order     uint64
	traceMask uint64
}

// NewField builds GF(2^degree) over the sparse irreducible modulus
// returned by BuildIrreducible.
func NewField(degree int) (*Field, error) {
	modulus, err := BuildIrreducible(degree)
	if err != nil {
		return nil, err
	}
	return newField(modulus), nil
}

// NewFieldWithModulus builds the field defined by an explicit modulus.
func NewFieldWithModulus(modulus chunker.Pol) (*Field, error) {
	degree := modulus.Deg()
	if degree < 1 || degree > MaxDegree {
		return nil, fmt.Errorf("%w: modulus %v has degree %d", ErrDegree, modulus, degree)
	}
	if !irreducible(modulus) {
		return nil, fmt.Errorf("%w: %v", ErrReducible, modulus.Expand())
	}
	return newField(modulus), nil
}

// irreducible screens out the linear factors x and x+1 before handing the
// polynomial to Ben-Or's test. x^2+x+1 is the only irreducible quadratic.
func irreducible(p chunker.Pol) bool {
	switch d := p.Deg(); {
	case d < 1:
		return false
	case d == 1:
		return true
	case d == 2:
		return p == 0x7
	}
	if p&1 == 0 || bits.OnesCount64(uint64(p))%2 == 0 {
		return false
	}
	return p.Irreducible()
}

func newField(modulus chunker.Pol) *Field {
	f := &Field{
		modulus: modulus,
		degree:  modulus.Deg(),
		order:   uint64(1) << uint(modulus.Deg()),
	}
	// Tr is GF(2)-linear, so it is fully described by its values on the
	// power basis 1, x, ..., x^(n-1).
	for i := 0; i < f.degree; i++ {
		if f.slowTrace(Elem(1)<<uint(i)) == 1 {
			f.traceMask |= uint64(1) << uint(i)
		}
	}
	return f
}

// BuildIrreducible returns the first irreducible trinomial x^n + x^k + 1
// with the smallest k, or failing that the first irreducible pentanomial
// x^n + x^k3 + x^k2 + x^k1 + 1 in lexicographic order of (k3, k2, k1).
func BuildIrreducible(degree int) (chunker.Pol, error) {
	if degree < 1 || degree > MaxDegree {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrDegree, degree, MaxDegree)
	}
	top := chunker.Pol(1) << uint(degree)
	if degree == 1 {
		return top | 1, nil
	}

	for k := 1; k <= degree/2; k++ {
		p := top | chunker.Pol(1)<<uint(k) | 1
		if irreducible(p) {
			return p, nil
		}
	}

	for k3 := 3; k3 < degree; k3++ {
		for k2 := 2; k2 < k3; k2++ {
			for k1 := 1; k1 < k2; k1++ {
				p := top | chunker.Pol(1)<<uint(k3) | chunker.Pol(1)<<uint(k2) | chunker.Pol(1)<<uint(k1) | 1
				if irreducible(p) {
					return p, nil
				}
			}
		}
	}

	return 0, fmt.Errorf("%w: no sparse irreducible polynomial of degree %d", ErrReducible, degree)
}

// Degree returns n for GF(2^n).
func (f *Field) Degree() int { return f.degree }

// Order returns 2^n, the number of field elements.
func (f *Field) Order() uint64 { return f.order }

// Modulus returns the reduction polynomial.
func (f *Field) Modulus() chunker.Pol { return f.modulus }

// Contains reports whether x is a reduced element of the field.
func (f *Field) Contains(x Elem) bool { return uint64(x) < f.order }

// Add returns x + y.
func (f *Field) Add(x, y Elem) Elem {
	return Elem(chunker.Pol(x).Add(chunker.Pol(y)))
}

// Mul returns x * y mod the field modulus.
func (f *Field) Mul(x, y Elem) Elem {
	if x == 0 || y == 0 {
		return 0
	}
	return Elem(chunker.Pol(x).MulMod(chunker.Pol(y), f.modulus))
}

// Square returns x^2.
func (f *Field) Square(x Elem) Elem { return f.Mul(x, x) }

// Pow returns x^e. Pow(0, 0) is 1.
func (f *Field) Pow(x Elem, e uint64) Elem {
	r := Elem(1)
	for b := f.Reduce(x); e != 0; e >>= 1 {
		if e&1 != 0 {
			r = f.Mul(r, b)
		}
		b = f.Mul(b, b)
	}
	return r
}

// Inv returns the multiplicative inverse of x.
//
// Inversion is only meaningful for x != 0; Inv(0) returns 0, which
// coincides with x^(2^n - 2). Callers that treat 0 differently must guard
// it themselves.
func (f *Field) Inv(x Elem) Elem {
	x = f.Reduce(x)
	if x == 0 {
		return 0
	}

	// extended Euclid over GF(2)[x]; the modulus is irreducible so the
	// final remainder is 1.
	r0, r1 := f.modulus, chunker.Pol(x)
	t0, t1 := chunker.Pol(0), chunker.Pol(1)
	for r1 != 0 {
		q, r := r0.DivMod(r1)
		r0, r1 = r1, r
		t0, t1 = t1, t0.Add(q.Mul(t1))
	}
	return Elem(t0.Mod(f.modulus))
}

// Trace returns the absolute trace Tr(x) = x + x^2 + ... + x^(2^(n-1)),
// which is always 0 or 1.
func (f *Field) Trace(x Elem) uint8 {
	return uint8(bits.OnesCount64(uint64(f.Reduce(x))&f.traceMask) & 1)
}

func (f *Field) slowTrace(x Elem) uint8 {
	var sum Elem
	for i := 0; i < f.degree; i++ {
		sum = f.Add(sum, x)
		x = f.Square(x)
	}
	return uint8(sum)
}

// Reduce maps an arbitrary polynomial to its residue modulo the field modulus.
func (f *Field) Reduce(x Elem) Elem {
	if uint64(x) < f.order {
		return x
	}
	return Elem(chunker.Pol(x).Mod(f.modulus))
}

// String renders the field as GF(2^n)/(modulus).
func (f *Field) String() string {
	return fmt.Sprintf("GF(2^%d)/(%s)", f.degree, f.modulus.Expand())
}
