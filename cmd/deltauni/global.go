package main

import (
	"context"
	"errors"

	"github.com/on-the-ground/delta_uniform_go/effects/log"
	"github.com/pkg/profile"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	LogLevel   string
	CPUProfile string
	MemProfile string

	cleanups []func()
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.LogLevel, "log-level", "info", "minimum log `level` (debug, info, warn, error)")
	f.StringVar(&opts.CPUProfile, "cpu-profile", "", "write cpu profile to `dir`")
	f.StringVar(&opts.MemProfile, "mem-profile", "", "write memory profile to `dir`")
}

func (opts *GlobalOptions) Validate() error {
	var err error
	if _, lerr := zap.ParseAtomicLevel(opts.LogLevel); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if opts.CPUProfile != "" && opts.MemProfile != "" {
		err = multierr.Append(err, errors.New("only one profile (memory or CPU) may be activated at the same time"))
	}
	return err
}

// PreRun validates the options, starts profiling and installs the log
// effect handler into the returned context.
func (opts *GlobalOptions) PreRun(ctx context.Context) (context.Context, error) {
	if err := opts.Validate(); err != nil {
		return ctx, err
	}

	var prof interface {
		Stop()
	}
	if opts.MemProfile != "" {
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.MemProfile, profile.ProfilePath(opts.MemProfile))
	} else if opts.CPUProfile != "" {
		prof = profile.Start(profile.Quiet, profile.NoShutdownHook, profile.CPUProfile, profile.ProfilePath(opts.CPUProfile))
	}
	if prof != nil {
		opts.addCleanup(prof.Stop)
	}

	logger, err := log.NewLogger(opts.LogLevel)
	if err != nil {
		return ctx, err
	}
	opts.addCleanup(zap.ReplaceGlobals(logger))

	ctx, endOfLogHandler := log.WithZapLogEffectHandler(ctx, 16, logger)
	opts.addCleanup(func() { endOfLogHandler() })
	return ctx, nil
}

func (opts *GlobalOptions) addCleanup(fn func()) {
	opts.cleanups = append(opts.cleanups, fn)
}

// Cleanup runs the registered cleanup functions in reverse order.
func (opts *GlobalOptions) Cleanup() {
	for i := len(opts.cleanups) - 1; i >= 0; i-- {
		opts.cleanups[i]()
	}
	opts.cleanups = nil
}
