package pure

import (
	"sync"
	"sync/atomic"
)

const (
	slotEmpty uint32 = iota
	slotReady
)

type slot[O any] struct {
	state atomic.Uint32
	mu    sync.Mutex
	value O
}

// Table is a fixed-size compute-once table indexed by [0, size).
//
// Readers of a ready slot only perform an atomic load. Writers lock the
// slot's own mutex, so callers racing on the same index block each other
// while callers on different indexes never contend.
type Table[O any] struct {
	slots []slot[O]
}

// NewTable allocates a table with size empty slots.
func NewTable[O any](size uint64) *Table[O] {
	if size == 0 {
		panic("NewTable: size must be greater than 0")
	}
	return &Table[O]{slots: make([]slot[O], size)}
}

// Len returns the number of slots.
func (t *Table[O]) Len() uint64 { return uint64(len(t.slots)) }

// Load returns the value of slot idx if it has been computed.
func (t *Table[O]) Load(idx uint64) (O, bool) {
	s := &t.slots[idx]
	if s.state.Load() == slotReady {
		return s.value, true
	}
	var zero O
	return zero, false
}

// LoadOrCompute returns the value of slot idx, running compute(idx) to fill
// it if no other caller has. loaded reports whether the value was already
// present.
func (t *Table[O]) LoadOrCompute(idx uint64, compute func(uint64) O) (value O, loaded bool) {
	s := &t.slots[idx]
	if s.state.Load() == slotReady {
		return s.value, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Load() == slotReady {
		return s.value, true
	}
	s.value = compute(idx)
	s.state.Store(slotReady)
	return s.value, false
}

// Tableize memoizes fn over [0, size) with a Table.
func Tableize[O any](fn func(uint64) O, size uint64) func(uint64) O {
	table := NewTable[O](size)
	return func(idx uint64) O {
		v, _ := table.LoadOrCompute(idx, fn)
		return v
	}
}
