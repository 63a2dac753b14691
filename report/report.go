// Package report runs one differential search and renders its outcome.
package report

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/differential"
	"github.com/on-the-ground/delta_uniform_go/effects/log"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
	"github.com/restic/chunker"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects what Run computes beyond the uniformity.
type Options struct {
	Strategy differential.Strategy
	Spectrum bool
	Top      int
}

// SpectrumEntry is one bar of the differential spectrum.
type SpectrumEntry struct {
	Count        uint64 `json:"count"`
	Multiplicity uint64 `json:"multiplicity"`
}

type Report struct {
	RunID       string                      `json:"run_id"`
	Function    string                      `json:"function"`
	Degree      int                         `json:"degree"`
	Modulus     chunker.Pol                 `json:"modulus"`
	Strategy    differential.Strategy       `json:"strategy"`
	Uniformity  uint64                      `json:"uniformity"`
	Permutation bool                        `json:"permutation"`
	Spectrum    []SpectrumEntry             `json:"spectrum,omitempty"`
	Extremal    []differential.Differential `json:"extremal,omitempty"`
	Fingerprint string                      `json:"fingerprint"`
	Cache       *boolfn.Stats               `json:"cache,omitempty"`
	Started     time.Time                   `json:"started"`
	Finished    time.Time                   `json:"finished"`
	Elapsed     string                      `json:"elapsed"`

	span timespan.TimeSpan
}

// Run searches ev and collects a Report. Start and end of the search are
// logged through the log handler of ctx, if it has one.
func Run(
	ctx context.Context,
	ev boolfn.Evaluator,
	opts Options,
	engineOpts ...differential.Option,
) (*Report, error) {
	started := time.Now()
	field := ev.Field()
	r := &Report{
		RunID:    uuid.New().String(),
		Function: fmt.Sprint(ev),
		Degree:   field.Degree(),
		Modulus:  field.Modulus(),
		Strategy: opts.Strategy,
	}

	logEff(ctx, log.LogInfo, "differential search started",
		zap.String("run_id", r.RunID),
		zap.String("function", r.Function),
		zap.Stringer("field", field),
		zap.Stringer("strategy", r.Strategy),
	)

	engine := differential.New(ev, engineOpts...)
	u, err := engine.Run(opts.Strategy)
	if err != nil {
		logEff(ctx, log.LogError, "differential search failed",
			zap.String("run_id", r.RunID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("run %s: %w", r.RunID, err)
	}
	r.Uniformity = u

	if opts.Spectrum {
		spectrum := engine.Spectrum()
		for _, c := range spectrum.Counts() {
			r.Spectrum = append(r.Spectrum, SpectrumEntry{Count: c, Multiplicity: spectrum[c]})
		}
	}
	if opts.Top > 0 {
		r.Extremal = engine.Extremal(opts.Top)
	}

	r.Permutation = boolfn.IsPermutation(ev)
	r.Fingerprint = Fingerprint(ev)
	if sr, ok := ev.(boolfn.StatsReporter); ok {
		stats := sr.Stats()
		r.Cache = &stats
	}

	r.span = timespan.BetweenTimes(started, time.Now())
	r.Started = r.span.Start()
	r.Finished = r.span.End()
	r.Elapsed = r.span.Duration().String()

	logEff(ctx, log.LogInfo, "differential search finished", zap.Object("report", r))
	return r, nil
}

func logEff(ctx context.Context, level log.Level, msg string, fields ...zap.Field) {
	if log.HasLogHandler(ctx) {
		log.LogEff(ctx, level, msg, fields...)
	}
}

// MarshalLogObject logs the outcome of the run.
func (r *Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("run_id", r.RunID)
	enc.AddUint64("uniformity", r.Uniformity)
	enc.AddBool("permutation", r.Permutation)
	enc.AddString("fingerprint", r.Fingerprint)
	enc.AddDuration("elapsed", r.span.Duration())
	if r.Cache != nil {
		enc.AddInt64("cache_hits", r.Cache.Hits)
		enc.AddInt64("cache_misses", r.Cache.Misses)
	}
	return nil
}

// Span returns the wall-clock interval of the run.
func (r *Report) Span() timespan.TimeSpan { return r.span }

// Fingerprint hashes the truth table of ev, outputs in input order, each as
// a little-endian uint64.
func Fingerprint(ev boolfn.Evaluator) string {
	d := xxhash.New()
	var buf [8]byte
	for x := uint64(0); x < ev.Field().Order(); x++ {
		binary.LittleEndian.PutUint64(buf[:], gf2n.Bytes(ev.Evaluate(gf2n.MakeElem(x))))
		_, _ = d.Write(buf[:])
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes a short human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "function:    %s\nfield:       GF(2^%d) mod %s\nstrategy:    %v\nuniformity:  %d\npermutation: %t\nfingerprint: %s\nelapsed:     %s\n",
		r.Function, r.Degree, r.Modulus.Expand(), r.Strategy, r.Uniformity, r.Permutation, r.Fingerprint, r.Elapsed); err != nil {
		return err
	}
	for _, e := range r.Spectrum {
		if _, err := fmt.Fprintf(w, "spectrum:    %d x %d\n", e.Count, e.Multiplicity); err != nil {
			return err
		}
	}
	for _, d := range r.Extremal {
		if _, err := fmt.Fprintf(w, "extremal:    a=%v b=%v count=%d\n", d.A, d.B, d.Count); err != nil {
			return err
		}
	}
	return nil
}
