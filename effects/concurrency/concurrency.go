// Package concurrency runs range reductions over a bounded set of goroutines.
//
// Reduce splits [lo, hi) into contiguous chunks, folds each chunk in its own
// goroutine, and combines the partial results in chunk order. The combiner
// must be associative; with a commutative combiner the result does not
// depend on the worker count either.
//
//   - Worker count defaults to runtime.GOMAXPROCS(0).
//   - Chunks are never smaller than the configured grain.
//   - A panic in a worker is recovered, every other worker is joined, and
//     the caller panics with an error wrapping ErrWorkerPanic.
package concurrency

import (
	"cmp"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerPanic wraps the value recovered from a panicking worker.
var ErrWorkerPanic = errors.New("panic in reduction worker")

// Config controls how a range is partitioned.
type Config struct {
	Workers int
	Grain   uint64
}

type Option func(*Config)

// WithWorkers caps the number of chunks (and goroutines) per reduction.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n >= 1 {
			c.Workers = n
		}
	}
}

// WithGrain sets the minimum chunk length. Values below 1 are ignored.
func WithGrain(g uint64) Option {
	return func(c *Config) {
		if g >= 1 {
			c.Grain = g
		}
	}
}

// NewConfig applies opts over the defaults.
func NewConfig(opts ...Option) Config {
	c := Config{
		Workers: runtime.GOMAXPROCS(0),
		Grain:   1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Chunks returns the number of chunks [lo, hi) is split into.
func (c Config) Chunks(lo, hi uint64) int {
	if hi <= lo {
		return 0
	}
	n := hi - lo
	chunks := (n + c.Grain - 1) / c.Grain
	if chunks > uint64(c.Workers) {
		chunks = uint64(c.Workers)
	}
	return int(chunks)
}

// Reduce folds body over [lo, hi).
//
// Each chunk starts from identity, so identity must not be mutated in place
// by body; reference-typed accumulators (slices, maps) should be allocated
// by body when it receives the zero value.
func Reduce[T any](
	lo, hi uint64,
	identity T,
	body func(lo, hi uint64, acc T) T,
	combine func(T, T) T,
	opts ...Option,
) T {
	cfg := NewConfig(opts...)
	chunks := cfg.Chunks(lo, hi)
	switch chunks {
	case 0:
		return identity
	case 1:
		v, err := protect(func() T { return body(lo, hi, identity) })
		if err != nil {
			panic(err)
		}
		return v
	}

	n := hi - lo
	size, rest := n/uint64(chunks), n%uint64(chunks)
	partials := make([]T, chunks)

	var g errgroup.Group
	start := lo
	for i := 0; i < chunks; i++ {
		end := start + size
		if uint64(i) < rest {
			end++
		}
		from := start
		g.Go(func() error {
			v, err := protect(func() T { return body(from, end, identity) })
			partials[i] = v
			return err
		})
		start = end
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	acc := partials[0]
	for _, p := range partials[1:] {
		acc = combine(acc, p)
	}
	return acc
}

// For runs body over the chunks of [lo, hi) with no result.
func For(lo, hi uint64, body func(lo, hi uint64), opts ...Option) {
	Reduce(lo, hi, struct{}{},
		func(lo, hi uint64, acc struct{}) struct{} {
			body(lo, hi)
			return acc
		},
		func(a, _ struct{}) struct{} { return a },
		opts...,
	)
}

func protect[T any](fn func() T) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrWorkerPanic) {
				err = e
				return
			}
			err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()
	return fn(), nil
}

// Max is the combiner for maximum reductions.
func Max[T cmp.Ordered](a, b T) T {
	return max(a, b)
}

// Number is any integer or float type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Sum is the combiner for additive reductions.
func Sum[T Number](a, b T) T {
	return a + b
}

// SumSlices adds b into a element-wise and returns a. A nil side is treated
// as all zeros. Both slices must have the same length when non-nil.
func SumSlices[T Number](a, b []T) []T {
	if a == nil {
		return b
	}
	for i, v := range b {
		a[i] += v
	}
	return a
}
