package differential

import (
	"cmp"
	"maps"
	"slices"

	"github.com/on-the-ground/delta_uniform_go/effects/concurrency"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
	"github.com/on-the-ground/delta_uniform_go/shared/orderedbuffer"
)

// Spectrum maps each value of Delta(a, b) to the number of cells (a, b),
// a != 0, that take it. The multiplicities sum to (2^n - 1) * 2^n.
type Spectrum map[uint64]uint64

// Counts returns the distinct Delta values in increasing order.
func (s Spectrum) Counts() []uint64 {
	return slices.Sorted(maps.Keys(s))
}

// Max returns the largest Delta value present, which is the uniformity.
func (s Spectrum) Max() uint64 {
	if len(s) == 0 {
		return 0
	}
	return slices.Max(s.Counts())
}

func mergeSpectra(a, b Spectrum) Spectrum {
	if a == nil {
		return b
	}
	for k, v := range b {
		a[k] += v
	}
	return a
}

// Spectrum computes the differential spectrum from one histogram per row.
func (e *Engine[F]) Spectrum() Spectrum {
	s := concurrency.Reduce(1, e.order, Spectrum(nil),
		func(lo, hi uint64, acc Spectrum) Spectrum {
			if acc == nil {
				acc = make(Spectrum)
			}
			for a := lo; a < hi; a++ {
				for _, c := range e.rowHistogram(gf2n.MakeElem(a), sequential) {
					acc[c]++
				}
				e.rowDone()
			}
			return acc
		},
		mergeSpectra,
		e.outer...,
	)
	if s == nil {
		s = make(Spectrum)
	}
	return s
}

// Differential is one cell of the difference distribution table.
type Differential struct {
	A     gf2n.Elem `json:"a"`
	B     gf2n.Elem `json:"b"`
	Count uint64    `json:"count"`
}

// compareDifferential orders by Count, then prefers the smaller A, then the
// smaller B.
func compareDifferential(p, q Differential) int {
	if c := cmp.Compare(p.Count, q.Count); c != 0 {
		return c
	}
	if c := cmp.Compare(q.A, p.A); c != 0 {
		return c
	}
	return cmp.Compare(q.B, p.B)
}

// Extremal returns the k cells with the largest nonzero Delta, largest
// first, ties broken by smaller a and then smaller b.
func (e *Engine[F]) Extremal(k int) []Differential {
	if k <= 0 {
		return nil
	}
	top := concurrency.Reduce(1, e.order, (*orderedbuffer.OrderedBoundedBuffer[Differential])(nil),
		func(lo, hi uint64, acc *orderedbuffer.OrderedBoundedBuffer[Differential]) *orderedbuffer.OrderedBoundedBuffer[Differential] {
			if acc == nil {
				acc = orderedbuffer.NewOrderedBoundedBuffer(k, compareDifferential)
			}
			for a := lo; a < hi; a++ {
				ea := gf2n.MakeElem(a)
				for b, c := range e.rowHistogram(ea, sequential) {
					if c == 0 {
						continue
					}
					acc.Insert(Differential{A: ea, B: gf2n.MakeElem(uint64(b)), Count: c})
				}
				e.rowDone()
			}
			return acc
		},
		func(x, y *orderedbuffer.OrderedBoundedBuffer[Differential]) *orderedbuffer.OrderedBoundedBuffer[Differential] {
			if x == nil {
				return y
			}
			return x.Merge(y)
		},
		e.outer...,
	)
	if top == nil {
		return nil
	}
	return top.Items()
}
