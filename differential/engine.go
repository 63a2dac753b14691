// Package differential measures the differential uniformity of functions
// over GF(2^n).
//
// For a function f and a nonzero direction a, the derivative
// D_a f(x) = f(x+a) + f(x) takes the same value at x and x+a. Both search
// strategies exploit this by visiting one representative per pair {x, x+a}
// (the one whose bit deg(a) is clear) and counting it twice.
package differential

import (
	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/effects/concurrency"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
)

// DefaultGrain is the smallest slice of representatives a single Delta or
// RowHistogram call hands to one goroutine.
const DefaultGrain = 1024

type config struct {
	workers int
	grain   uint64
	onRow   func()
}

type Option func(*config)

// WithWorkers caps the goroutines used at each level of a search.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithGrain sets the chunk size used inside a single row.
func WithGrain(g uint64) Option {
	return func(c *config) { c.grain = g }
}

// WithRowHook registers fn to be called each time a full search finishes a
// row. fn may be called from several goroutines at once.
func WithRowHook(fn func()) Option {
	return func(c *config) { c.onRow = fn }
}

// Engine computes differential statistics of one function. It holds no
// mutable state and can be shared between goroutines.
type Engine[F boolfn.Evaluator] struct {
	f     F
	field *gf2n.Field
	order uint64
	outer []concurrency.Option
	inner []concurrency.Option
	onRow func()
}

func New[F boolfn.Evaluator](f F, opts ...Option) *Engine[F] {
	cfg := config{grain: DefaultGrain}
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Engine[F]{
		f:     f,
		field: f.Field(),
		order: f.Field().Order(),
		onRow: cfg.onRow,
	}
	e.outer = []concurrency.Option{concurrency.WithWorkers(cfg.workers)}
	e.inner = []concurrency.Option{concurrency.WithWorkers(cfg.workers), concurrency.WithGrain(cfg.grain)}
	return e
}

// Function returns the evaluator under test.
func (e *Engine[F]) Function() F { return e.f }

func (e *Engine[F]) Field() *gf2n.Field { return e.field }

func (e *Engine[F]) rowDone() {
	if e.onRow != nil {
		e.onRow()
	}
}

// pairs returns the number of representatives for a nonzero direction.
func (e *Engine[F]) pairs() uint64 { return e.order / 2 }

// representative maps r in [0, 2^(n-1)) to the r-th element whose bit
// deg(a) is clear, in increasing order.
func representative(r uint64, d int) gf2n.Elem {
	low := uint64(1)<<uint(d) - 1
	return gf2n.MakeElem((r>>uint(d))<<uint(d+1) | r&low)
}

// Derivative returns f(x+a) + f(x).
func (e *Engine[F]) Derivative(x, a gf2n.Elem) gf2n.Elem {
	return boolfn.Derivative(e.f, x, a)
}

// Delta returns #{x : f(x+a) + f(x) = b}.
//
// The zero direction is degenerate: every x satisfies the equation for
// b = 0 and none does otherwise.
func (e *Engine[F]) Delta(a, b gf2n.Elem) uint64 {
	if a == 0 {
		if b == 0 {
			return e.order
		}
		return 0
	}
	return e.delta(a, b, e.inner)
}

func (e *Engine[F]) delta(a, b gf2n.Elem, opts []concurrency.Option) uint64 {
	d := gf2n.Degree(a)
	return concurrency.Reduce(0, e.pairs(), uint64(0),
		func(lo, hi uint64, acc uint64) uint64 {
			for r := lo; r < hi; r++ {
				if e.Derivative(representative(r, d), a) == b {
					acc += 2
				}
			}
			return acc
		},
		concurrency.Sum[uint64],
		opts...,
	)
}

// RowMaxDelta returns max_b Delta(a, b) by counting each b separately.
func (e *Engine[F]) RowMaxDelta(a gf2n.Elem) uint64 {
	if a == 0 {
		return e.order
	}
	return concurrency.Reduce(0, e.order, uint64(0),
		func(lo, hi uint64, acc uint64) uint64 {
			for b := lo; b < hi; b++ {
				acc = max(acc, e.delta(a, gf2n.MakeElem(b), e.inner))
			}
			return acc
		},
		concurrency.Max[uint64],
		e.outer...,
	)
}

// Uniformity returns max_{a != 0} RowMaxDelta(a).
func (e *Engine[F]) Uniformity() uint64 {
	return concurrency.Reduce(1, e.order, uint64(0),
		func(lo, hi uint64, acc uint64) uint64 {
			for a := lo; a < hi; a++ {
				acc = max(acc, e.RowMaxDelta(gf2n.MakeElem(a)))
				e.rowDone()
			}
			return acc
		},
		concurrency.Max[uint64],
		e.outer...,
	)
}
