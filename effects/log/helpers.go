package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// WithTestEffectHandler installs a log handler that writes every level to
// t's log, so output only shows for failing or verbose tests.
func WithTestEffectHandler(
	ctx context.Context,
	t zaptest.TestingT,
) (context.Context, func() context.Context) {
	return WithZapLogEffectHandler(
		ctx,
		1,
		zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel)),
	)
}
