package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/on-the-ground/delta_uniform_go/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/delta_uniform_go/effects/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFireAndForgetEffectHandler_BasicExecution(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var receivedPayload string
	done := make(chan bool)

	handler := handlers.NewFireAndForgetEffectHandler(
		ctx,
		effectmodel.EffectScopeConfig{BufferSize: 10},
		func(ctx context.Context, msg string) {
			receivedPayload = msg
			done <- true
		},
		func() {}, // no-op teardown
	)
	defer handler.Close()

	handler.FireAndForgetEffect(ctx, "hello")

	select {
	case <-done:
		assert.Equal(t, "hello", receivedPayload)
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for handler")
	}
}

func TestFireAndForgetEffectHandler_CancelContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called bool

	handler := handlers.NewFireAndForgetEffectHandler(
		context.Background(),
		effectmodel.EffectScopeConfig{BufferSize: 10},
		func(ctx context.Context, msg string) {
			called = true
		},
		func() {},
	)

	handler.FireAndForgetEffect(ctx, "should-not-send")
	handler.Close()

	assert.False(t, called, "handler should not have been called")
}

func TestFireAndForgetEffectHandler_CloseDrainsInOrderThenTearsDown(t *testing.T) {
	ctx := context.Background()

	var got []int
	tornDown := false

	handler := handlers.NewFireAndForgetEffectHandler(
		ctx,
		effectmodel.EffectScopeConfig{BufferSize: 100},
		func(ctx context.Context, n int) {
			assert.False(t, tornDown)
			got = append(got, n)
		},
		func() { tornDown = true },
	)

	for i := 0; i < 50; i++ {
		handler.FireAndForgetEffect(ctx, i)
	}
	handler.Close()
	handler.Close()

	assert.True(t, tornDown)
	assert.Len(t, got, 50)
	for i, n := range got {
		assert.Equal(t, i, n)
	}

	assert.NotPanics(t, func() { handler.FireAndForgetEffect(ctx, 99) })
	assert.Len(t, got, 50)
}
