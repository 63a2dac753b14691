package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"
	effectmodel "github.com/on-the-ground/delta_uniform_go/effects/internal/model"
	"go.uber.org/zap"
)

// FireAndForgetHandler serializes payloads onto a single goroutine.
//
// Payloads are handled in the order they were sent. Close drains what is
// already queued, stops the goroutine, and then runs teardown.
type FireAndForgetHandler[T any] struct {
	EffectId string
	effectCh chan T
	doneCh   chan struct{}
	teardown func()
	once     *sync.Once
}

func NewFireAndForgetEffectHandler[T any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, T),
	teardown func(),
) FireAndForgetHandler[T] {
	config = effectmodel.NewEffectScopeConfig(config.BufferSize)
	ffh := FireAndForgetHandler[T]{
		EffectId: uuid.New().String(),
		effectCh: make(chan T, config.BufferSize),
		doneCh:   make(chan struct{}),
		teardown: teardown,
		once:     &sync.Once{},
	}

	go func() {
		defer close(ffh.doneCh)
		for payload := range ffh.effectCh {
			handleFn(ctx, payload)
		}
	}()

	return ffh
}

// FireAndForgetEffect enqueues payload unless ctx is already done.
// Sending after Close is dropped with a warning on the global zap logger.
func (ffh FireAndForgetHandler[T]) FireAndForgetEffect(ctx context.Context, payload T) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("effect sent to closed handler",
				zap.String("effectId", ffh.EffectId),
				zap.Any("payload", payload),
			)
		}
	}()

	if ctx.Err() != nil {
		return
	}
	select {
	case <-ctx.Done():
	case ffh.effectCh <- payload:
	}
}

// Close is idempotent.
func (ffh FireAndForgetHandler[T]) Close() {
	ffh.once.Do(func() {
		close(ffh.effectCh)
		<-ffh.doneCh
		if ffh.teardown != nil {
			ffh.teardown()
		}
	})
}
