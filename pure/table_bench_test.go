package pure_test

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/on-the-ground/delta_uniform_go/pure"
)

// slowParity stands in for an expensive field evaluation.
func slowParity(x uint64) uint64 {
	var acc uint64
	for i := 0; i < 64; i++ {
		acc ^= uint64(bits.OnesCount64(x*uint64(i+1))) & 1
	}
	return acc
}

func BenchmarkNaiveParity(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = slowParity(uint64(i) & 0x3ff)
	}
}

func BenchmarkTableizedParity(b *testing.B) {
	fn := pure.Tableize(slowParity, 1024)
	for i := 0; i < b.N; i++ {
		_ = fn(uint64(i) & 0x3ff)
	}
}

func BenchmarkBoundedParity(b *testing.B) {
	for _, size := range []int{64, 512, 1024} {
		b.Run(fmt.Sprintf("LRUSize_%d", size), func(b *testing.B) {
			fn := pure.NewBounded(slowParity, size)
			for i := 0; i < b.N; i++ {
				_ = fn(uint64(i) & 0x3ff)
			}
		})
	}
}
