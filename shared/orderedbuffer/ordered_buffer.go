package orderedbuffer

import (
	"sort"
)

type CompareFunc[T any] func(a, b T) int

// OrderedBoundedBuffer keeps the maxBufLen greatest values inserted so far
// according to compare. It is not safe for concurrent use; concurrent
// producers should each fill their own buffer and Merge them afterwards.
type OrderedBoundedBuffer[T any] struct {
	data      []T // ascending
	maxBufLen int
	compare   CompareFunc[T]
}

func NewOrderedBoundedBuffer[T any](maxBufLen int, cmp CompareFunc[T]) *OrderedBoundedBuffer[T] {
	if maxBufLen < 0 {
		maxBufLen = 0
	}
	return &OrderedBoundedBuffer[T]{
		data:      make([]T, 0, maxBufLen),
		maxBufLen: maxBufLen,
		compare:   cmp,
	}
}

// Insert adds val and reports whether it was retained. When the buffer is
// full the smallest value is evicted; a value not greater than the current
// smallest is rejected outright.
func (b *OrderedBoundedBuffer[T]) Insert(val T) bool {
	if b.maxBufLen == 0 {
		return false
	}
	if len(b.data) == b.maxBufLen && b.compare(val, b.data[0]) <= 0 {
		return false
	}

	idx := sort.Search(len(b.data), func(i int) bool {
		return b.compare(val, b.data[i]) < 0
	})

	if len(b.data) < b.maxBufLen {
		b.data = append(b.data, val)
		copy(b.data[idx+1:], b.data[idx:len(b.data)-1])
		b.data[idx] = val
		return true
	}

	// full: val is greater than data[0], so idx >= 1
	copy(b.data[:idx-1], b.data[1:idx])
	b.data[idx-1] = val
	return true
}

// Merge inserts every value retained by other.
func (b *OrderedBoundedBuffer[T]) Merge(other *OrderedBoundedBuffer[T]) *OrderedBoundedBuffer[T] {
	if other == nil {
		return b
	}
	for _, v := range other.data {
		b.Insert(v)
	}
	return b
}

func (b *OrderedBoundedBuffer[T]) Len() int { return len(b.data) }

// Items returns the retained values, greatest first.
func (b *OrderedBoundedBuffer[T]) Items() []T {
	out := make([]T, len(b.data))
	for i, v := range b.data {
		out[len(b.data)-1-i] = v
	}
	return out
}
