package pure

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// NewBounded memoizes fn in an LRU of at most maxSize entries.
// An evicted key is recomputed on its next use, and two goroutines missing
// on the same key may both run fn.
func NewBounded[K comparable, O any](fn func(K) O, maxSize int) func(K) O {
	if maxSize <= 0 {
		panic("NewBounded: maxSize must be greater than 0")
	}
	memo, err := lru.New[K, O](maxSize)
	if err != nil {
		panic(err)
	}
	return func(k K) O {
		if v, ok := memo.Get(k); ok {
			return v
		}
		v := fn(k)
		memo.Add(k, v)
		return v
	}
}
