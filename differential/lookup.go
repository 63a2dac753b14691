package differential

import (
	"slices"

	"github.com/on-the-ground/delta_uniform_go/effects/concurrency"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
)

var sequential = []concurrency.Option{concurrency.WithWorkers(1)}

// RowHistogram returns hist with hist[b] = Delta(a, b) for every b, in a
// single pass over the representatives of a.
func (e *Engine[F]) RowHistogram(a gf2n.Elem) []uint64 {
	return e.rowHistogram(a, e.inner)
}

func (e *Engine[F]) rowHistogram(a gf2n.Elem, opts []concurrency.Option) []uint64 {
	if a == 0 {
		hist := make([]uint64, e.order)
		hist[0] = e.order
		return hist
	}

	d := gf2n.Degree(a)
	return concurrency.Reduce(0, e.pairs(), []uint64(nil),
		func(lo, hi uint64, acc []uint64) []uint64 {
			if acc == nil {
				acc = make([]uint64, e.order)
			}
			for r := lo; r < hi; r++ {
				acc[gf2n.Bytes(e.Derivative(representative(r, d), a))] += 2
			}
			return acc
		},
		concurrency.SumSlices[uint64],
		opts...,
	)
}

// RowMaxDeltaLookup returns the largest entry of RowHistogram(a).
func (e *Engine[F]) RowMaxDeltaLookup(a gf2n.Elem) uint64 {
	return slices.Max(e.RowHistogram(a))
}

// UniformityLookup returns max_{a != 0} RowMaxDeltaLookup(a). Rows are
// spread over the workers and each row is built by a single goroutine.
func (e *Engine[F]) UniformityLookup() uint64 {
	return concurrency.Reduce(1, e.order, uint64(0),
		func(lo, hi uint64, acc uint64) uint64 {
			for a := lo; a < hi; a++ {
				acc = max(acc, slices.Max(e.rowHistogram(gf2n.MakeElem(a), sequential)))
				e.rowDone()
			}
			return acc
		},
		concurrency.Max[uint64],
		e.outer...,
	)
}
