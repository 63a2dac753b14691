package differential_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/differential"
	"github.com/stretchr/testify/assert"
)

func TestSpectrum(t *testing.T) {
	tests := []struct {
		name string
		f    boolfn.Evaluator
		want differential.Spectrum
	}{
		{"inverse n=3", boolfn.NewInverse(mustField(t, 3)), differential.Spectrum{0: 28, 2: 28}},
		{"inverse n=4", boolfn.NewInverse(mustField(t, 4)), differential.Spectrum{0: 135, 2: 90, 4: 15}},
		{"inverse n=5", boolfn.NewInverse(mustField(t, 5)), differential.Spectrum{0: 496, 2: 496}},
		{"tu n=4", mustTu(t, 4, 0x9), differential.Spectrum{0: 138, 2: 84, 4: 18}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, workers := range []int{1, 4} {
				got := differential.New(tt.f, differential.WithWorkers(workers)).Spectrum()
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("spectrum mismatch with %d workers (-want +got):\n%s", workers, diff)
				}
				assert.Equal(t, tt.want.Max(), got.Max())
			}
		})
	}
}

func TestSpectrum_Helpers(t *testing.T) {
	s := differential.Spectrum{4: 1, 0: 3, 2: 2}
	assert.Equal(t, []uint64{0, 2, 4}, s.Counts())
	assert.Equal(t, uint64(4), s.Max())
	assert.Equal(t, uint64(0), differential.Spectrum{}.Max())
}

func TestSpectrum_SumsToAllCells(t *testing.T) {
	e := differential.New(mustTu(t, 5, 0x1))
	var total uint64
	for _, m := range e.Spectrum() {
		total += m
	}
	assert.Equal(t, uint64(31*32), total)
}

func TestExtremal(t *testing.T) {
	e := differential.New(boolfn.NewInverse(mustField(t, 4)), differential.WithWorkers(3))

	want := []differential.Differential{
		{A: 0x1, B: 0x1, Count: 4},
		{A: 0x2, B: 0x9, Count: 4},
		{A: 0x3, B: 0xE, Count: 4},
	}
	assert.Equal(t, want, e.Extremal(3))

	all := e.Extremal(1000)
	assert.Len(t, all, 15+90) // cells with a nonzero count
	assert.Equal(t, want, all[:3])
	assert.Equal(t, uint64(2), all[len(all)-1].Count)

	assert.Nil(t, e.Extremal(0))
}
