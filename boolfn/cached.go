package boolfn

import (
	"fmt"

	"github.com/on-the-ground/delta_uniform_go/gf2n"
	"github.com/on-the-ground/delta_uniform_go/pure"
	"github.com/puzpuzpuz/xsync/v3"
)

// MaxTableDegree is the largest field degree for which Memoize allocates a
// full table.
const MaxTableDegree = 24

// DefaultBoundedEntries is the LRU capacity Memoize uses above MaxTableDegree.
const DefaultBoundedEntries = 1 << 20

// Stats counts memo lookups. Misses equals the number of times the wrapped
// evaluator ran.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Cached evaluates each field element at most once.
type Cached[F Evaluator] struct {
	inner  F
	field  *gf2n.Field
	table  *pure.Table[gf2n.Elem]
	hits   *xsync.Counter
	misses *xsync.Counter
}

func NewCached[F Evaluator](f F) *Cached[F] {
	return &Cached[F]{
		inner:  f,
		field:  f.Field(),
		table:  pure.NewTable[gf2n.Elem](f.Field().Order()),
		hits:   xsync.NewCounter(),
		misses: xsync.NewCounter(),
	}
}

func (c *Cached[F]) Evaluate(x gf2n.Elem) gf2n.Elem {
	v, loaded := c.table.LoadOrCompute(gf2n.Bytes(c.field.Reduce(x)), c.compute)
	if loaded {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return v
}

func (c *Cached[F]) compute(idx uint64) gf2n.Elem {
	return c.inner.Evaluate(gf2n.MakeElem(idx))
}

func (c *Cached[F]) Field() *gf2n.Field { return c.field }

// Inner returns the wrapped evaluator.
func (c *Cached[F]) Inner() F { return c.inner }

// Rule returns the rule of the wrapped evaluator, if any.
func (c *Cached[F]) Rule() Rule { return RuleOf(c.inner) }

func (c *Cached[F]) Stats() Stats {
	return Stats{Hits: c.hits.Value(), Misses: c.misses.Value()}
}

func (c *Cached[F]) String() string { return fmt.Sprintf("cached(%v)", c.inner) }

// BoundedCached memoizes the most recently used evaluations. An element can
// be evaluated again after it is evicted.
type BoundedCached[F Evaluator] struct {
	inner  F
	field  *gf2n.Field
	eval   func(gf2n.Elem) gf2n.Elem
	misses *xsync.Counter
	calls  *xsync.Counter
}

func NewBoundedCached[F Evaluator](f F, maxEntries int) *BoundedCached[F] {
	c := &BoundedCached[F]{
		inner:  f,
		field:  f.Field(),
		misses: xsync.NewCounter(),
		calls:  xsync.NewCounter(),
	}
	c.eval = pure.NewBounded(func(x gf2n.Elem) gf2n.Elem {
		c.misses.Inc()
		return f.Evaluate(x)
	}, maxEntries)
	return c
}

func (c *BoundedCached[F]) Evaluate(x gf2n.Elem) gf2n.Elem {
	c.calls.Inc()
	return c.eval(c.field.Reduce(x))
}

func (c *BoundedCached[F]) Field() *gf2n.Field { return c.field }

func (c *BoundedCached[F]) Inner() F { return c.inner }

func (c *BoundedCached[F]) Rule() Rule { return RuleOf(c.inner) }

func (c *BoundedCached[F]) Stats() Stats {
	misses := c.misses.Value()
	return Stats{Hits: c.calls.Value() - misses, Misses: misses}
}

func (c *BoundedCached[F]) String() string { return fmt.Sprintf("cached(%v)", c.inner) }

// StatsReporter is implemented by the memoizing evaluators.
type StatsReporter interface {
	Stats() Stats
}

// Memoize wraps ev in a full table when the field is small enough, and in
// an LRU of DefaultBoundedEntries otherwise.
func Memoize(ev Evaluator) Evaluator {
	if ev.Field().Degree() <= MaxTableDegree {
		return NewCached(ev)
	}
	return NewBoundedCached(ev, DefaultBoundedEntries)
}
