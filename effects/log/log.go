package log

import (
	"context"
	"fmt"

	"github.com/on-the-ground/delta_uniform_go/effects"
	effectmodel "github.com/on-the-ground/delta_uniform_go/effects/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the severity of a log entry.
type Level = zapcore.Level

const (
	LogDebug Level = zapcore.DebugLevel
	LogInfo  Level = zapcore.InfoLevel
	LogWarn  Level = zapcore.WarnLevel
	LogError Level = zapcore.ErrorLevel
)

// LogPayload is one entry on its way to the handler goroutine.
type LogPayload struct {
	Level   Level
	Message string
	Fields  []zap.Field
}

// WithZapLogEffectHandler registers a fire-and-forget log handler writing
// to logger. Entries below the logger's level are dropped on the handler
// goroutine. The teardown drains queued entries, syncs the logger and
// returns the parent context.
func WithZapLogEffectHandler(
	ctx context.Context,
	bufferSize int,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	return effects.WithFireAndForgetEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectLog,
		func(_ context.Context, payload LogPayload) {
			if ce := logger.Check(payload.Level, payload.Message); ce != nil {
				ce.Write(payload.Fields...)
			}
		},
		func() {
			// stdout/stderr return EINVAL on Sync on some platforms.
			_ = logger.Sync()
		},
	)
}

// LogEff queues an entry on the log handler of ctx.
// Panics if no log handler is installed.
func LogEff(ctx context.Context, level Level, msg string, fields ...zap.Field) {
	effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, LogPayload{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
}

// HasLogHandler reports whether LogEff can be used with ctx.
func HasLogHandler(ctx context.Context) bool {
	return effects.HasEffectHandler(ctx, effectmodel.EffectLog)
}

// NewLogger builds a production zap logger writing JSON to stderr at the
// given level ("debug", "info", "warn", "error").
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
