package effects_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/delta_uniform_go/effects"
	effectmodel "github.com/on-the-ground/delta_uniform_go/effects/internal/model"
	"github.com/stretchr/testify/assert"
)

const effectCount effectmodel.EffectEnum = "delta_uniform_go_effect_enum_count"

func TestFireAndForgetEffect(t *testing.T) {
	var got []int
	tornDown := false

	ctx, endOfHandler := effects.WithFireAndForgetEffectHandler(
		context.Background(), 4, effectCount,
		func(_ context.Context, n int) { got = append(got, n) },
		func() { tornDown = true },
	)
	assert.True(t, effects.HasEffectHandler(ctx, effectCount))

	for i := range 10 {
		effects.FireAndForgetEffect(ctx, effectCount, i)
	}
	parent := endOfHandler()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.True(t, tornDown)
	assert.False(t, effects.HasEffectHandler(parent, effectCount))
}

func TestFireAndForgetEffect_NoHandler(t *testing.T) {
	assert.False(t, effects.HasEffectHandler(context.Background(), effectCount))
	assert.Panics(t, func() {
		effects.FireAndForgetEffect(context.Background(), effectCount, 1)
	})
}

func TestWithFireAndForgetEffectHandler_TooManyTeardowns(t *testing.T) {
	assert.Panics(t, func() {
		effects.WithFireAndForgetEffectHandler(
			context.Background(), 1, effectCount,
			func(context.Context, int) {},
			func() {}, func() {},
		)
	})
}
