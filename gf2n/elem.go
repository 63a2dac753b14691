package gf2n

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Elem is an element of GF(2^n) in its canonical packed form.
type Elem uint64

// MakeElem decodes the packed coefficient vector of a polynomial, the
// least significant bit being the constant term.
func MakeElem(bytes uint64) Elem { return Elem(bytes) }

// Bytes encodes an element back into its packed coefficient vector.
// Bytes(MakeElem(i)) == i for every i.
func Bytes(e Elem) uint64 { return uint64(e) }

// Degree returns the polynomial degree of e, or -1 if e is zero.
func Degree(e Elem) int { return bits.Len64(uint64(e)) - 1 }

// Coeff returns the coefficient of x^i in e.
func Coeff(e Elem, i int) uint8 {
	if i < 0 || i >= 64 {
		return 0
	}
	return uint8(e>>uint(i)) & 1
}

// String returns the coefficients in hex.
func (e Elem) String() string {
	return "0x" + strconv.FormatUint(uint64(e), 16)
}

// MarshalText renders e in hex, as String does.
func (e Elem) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText accepts decimal, 0x-prefixed hex, 0b-prefixed binary and
// 0o-prefixed octal.
func (e *Elem) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 0, 64)
	if err != nil {
		return fmt.Errorf("invalid field element %q: %w", text, err)
	}
	*e = Elem(v)
	return nil
}
