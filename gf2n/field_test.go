package gf2n

import (
	"testing"

	"github.com/restic/chunker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIrreducible(t *testing.T) {
	want := map[int]chunker.Pol{
		1: 0x3, 2: 0x7, 3: 0xb, 4: 0x13, 5: 0x25, 6: 0x43, 7: 0x83,
		8: 0x11b, 9: 0x203, 10: 0x409, 11: 0x805, 12: 0x1009, 13: 0x201b,
		14: 0x4021, 15: 0x8003, 16: 0x1002b, 17: 0x20009, 18: 0x40009,
		19: 0x80027, 20: 0x100009, 24: 0x100001b, 32: 0x10000008d,
	}
	for n, p := range want {
		got, err := BuildIrreducible(n)
		require.NoError(t, err)
		assert.Equal(t, p, got, "degree %d", n)
		assert.Equal(t, n, got.Deg())
	}
}

func TestBuildIrreducible_OutOfRange(t *testing.T) {
	for _, n := range []int{-1, 0, MaxDegree + 1} {
		_, err := BuildIrreducible(n)
		assert.ErrorIs(t, err, ErrDegree)

		_, err = NewField(n)
		assert.ErrorIs(t, err, ErrDegree)
	}
}

func TestNewFieldWithModulus(t *testing.T) {
	f, err := NewFieldWithModulus(0x11b)
	require.NoError(t, err)
	assert.Equal(t, 8, f.Degree())
	assert.Equal(t, uint64(256), f.Order())

	_, err = NewFieldWithModulus(0x11a) // divisible by x
	assert.ErrorIs(t, err, ErrReducible)

	_, err = NewFieldWithModulus(0x5) // (x+1)^2
	assert.ErrorIs(t, err, ErrReducible)

	_, err = NewFieldWithModulus(0x1)
	assert.ErrorIs(t, err, ErrDegree)
}

func TestElem_RoundTrip(t *testing.T) {
	for n := 1; n <= 20; n++ {
		f, err := NewField(n)
		require.NoError(t, err)
		for i := uint64(0); i < f.Order(); i++ {
			e := MakeElem(i)
			if !f.Contains(e) || Bytes(e) != i {
				t.Fatalf("n=%d: element %d does not round trip", n, i)
			}
		}
		assert.False(t, f.Contains(MakeElem(f.Order())))
	}
}

func TestElem_Degree(t *testing.T) {
	assert.Equal(t, -1, Degree(0))
	assert.Equal(t, 0, Degree(1))
	assert.Equal(t, 3, Degree(0xa))
	assert.Equal(t, uint8(1), Coeff(0xa, 1))
	assert.Equal(t, uint8(0), Coeff(0xa, 2))
	assert.Equal(t, "0x1f", Elem(0x1f).String())
}

func TestField_MulAES(t *testing.T) {
	f, err := NewField(8)
	require.NoError(t, err)

	assert.Equal(t, Elem(0x01), f.Mul(0x53, 0xca))
	assert.Equal(t, Elem(0xc1), f.Mul(0x57, 0x83))
	assert.Equal(t, Elem(0xca), f.Inv(0x53))
	assert.Equal(t, Elem(0), f.Mul(0, 0x53))
}

func TestField_MonomialValue(t *testing.T) {
	f, err := NewField(3)
	require.NoError(t, err)

	// 7 * 7^2 over x^3+x+1
	assert.Equal(t, Elem(2), f.Mul(7, f.Pow(7, 2)))
}

func TestField_Inv(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 11} {
		f, err := NewField(n)
		require.NoError(t, err)

		assert.Equal(t, Elem(0), f.Inv(0))
		for x := uint64(1); x < f.Order(); x++ {
			e := MakeElem(x)
			inv := f.Inv(e)
			require.Equal(t, Elem(1), f.Mul(e, inv), "n=%d x=%v", n, e)
			require.Equal(t, f.Pow(e, f.Order()-2), inv)
		}
	}
}

func TestField_Trace(t *testing.T) {
	f, err := NewField(4)
	require.NoError(t, err)

	for x := uint64(0); x < f.Order(); x++ {
		assert.Equal(t, uint8(x>>3)&1, f.Trace(MakeElem(x)), "x=%#x", x)
	}

	for _, n := range []int{3, 5, 6, 9} {
		f, err := NewField(n)
		require.NoError(t, err)

		ones := 0
		for x := uint64(0); x < f.Order(); x++ {
			e := MakeElem(x)
			tr := f.Trace(e)
			require.Equal(t, tr, f.slowTrace(e))
			require.Equal(t, tr, f.Trace(f.Square(e)))
			ones += int(tr)
		}
		assert.Equal(t, int(f.Order()/2), ones, "trace is balanced for n=%d", n)
	}
}

func TestField_Pow(t *testing.T) {
	f, err := NewField(6)
	require.NoError(t, err)

	assert.Equal(t, Elem(1), f.Pow(0, 0))
	assert.Equal(t, Elem(0), f.Pow(0, 5))
	for x := uint64(1); x < f.Order(); x++ {
		assert.Equal(t, Elem(1), f.Pow(MakeElem(x), f.Order()-1))
	}
}

func TestField_Reduce(t *testing.T) {
	f, err := NewField(4)
	require.NoError(t, err)

	assert.Equal(t, Elem(0x3), f.Reduce(0x10)) // x^4 = x+1
	assert.Equal(t, Elem(0x7), f.Reduce(0x7))
	assert.Equal(t, "GF(2^4)/(x^4+x+1)", f.String())
}

func TestElem_Text(t *testing.T) {
	text, err := Elem(0x2a).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0x2a", string(text))

	for in, want := range map[string]Elem{"0x2a": 0x2a, "42": 42, "0b101": 5} {
		var e Elem
		require.NoError(t, e.UnmarshalText([]byte(in)))
		assert.Equal(t, want, e, in)
	}

	var e Elem
	assert.Error(t, e.UnmarshalText([]byte("x^2")))
}
