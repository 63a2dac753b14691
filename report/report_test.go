package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/differential"
	"github.com/on-the-ground/delta_uniform_go/effects/log"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
	"github.com/on-the-ground/delta_uniform_go/report"
	"github.com/restic/chunker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func mustField(t testing.TB, n int) *gf2n.Field {
	t.Helper()
	f, err := gf2n.NewField(n)
	require.NoError(t, err)
	return f
}

func TestRun_Inverse(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background(), t)
	defer endOfLogHandler()

	ev := boolfn.NewCached(boolfn.NewInverse(mustField(t, 4)))
	r, err := report.Run(ctx, ev, report.Options{
		Strategy: differential.Lookup,
		Spectrum: true,
		Top:      2,
	}, differential.WithWorkers(2))
	require.NoError(t, err)

	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, "cached(inverse)", r.Function)
	assert.Equal(t, 4, r.Degree)
	assert.Equal(t, chunker.Pol(0x13), r.Modulus)
	assert.Equal(t, uint64(4), r.Uniformity)
	assert.True(t, r.Permutation)
	assert.Equal(t, []report.SpectrumEntry{
		{Count: 0, Multiplicity: 135},
		{Count: 2, Multiplicity: 90},
		{Count: 4, Multiplicity: 15},
	}, r.Spectrum)
	assert.Equal(t, []differential.Differential{
		{A: 0x1, B: 0x1, Count: 4},
		{A: 0x2, B: 0x9, Count: 4},
	}, r.Extremal)
	require.NotNil(t, r.Cache)
	assert.Equal(t, int64(16), r.Cache.Misses)

	assert.False(t, r.Finished.Before(r.Started))
	assert.Equal(t, r.Started, r.Span().Start())
	assert.Equal(t, r.Finished.Sub(r.Started), r.Span().Duration())
}

func TestRun_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, endOfLogHandler := log.WithZapLogEffectHandler(context.Background(), 4, zap.New(core))

	r, err := report.Run(ctx, boolfn.NewCached(boolfn.NewInverse(mustField(t, 3))), report.Options{})
	require.NoError(t, err)
	endOfLogHandler()

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "differential search started", entries[0].Message)
	assert.Equal(t, r.RunID, entries[0].ContextMap()["run_id"])
	assert.Equal(t, "naive", entries[0].ContextMap()["strategy"])

	assert.Equal(t, "differential search finished", entries[1].Message)
	outcome, ok := entries[1].ContextMap()["report"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, r.RunID, outcome["run_id"])
	assert.Equal(t, uint64(2), outcome["uniformity"])
	assert.Equal(t, true, outcome["permutation"])
	assert.Equal(t, int64(8), outcome["cache_misses"])
}

func TestRun_WithoutLogHandler(t *testing.T) {
	r, err := report.Run(context.Background(), boolfn.NewInverse(mustField(t, 3)), report.Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.Uniformity)
}

func TestRun_UnknownStrategy(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background(), t)
	defer endOfLogHandler()

	_, err := report.Run(ctx, boolfn.NewInverse(mustField(t, 3)), report.Options{Strategy: 42})
	assert.ErrorIs(t, err, differential.ErrUnknownStrategy)
}

func TestFingerprint(t *testing.T) {
	field := mustField(t, 5)
	inv := boolfn.NewInverse(field)

	fp := report.Fingerprint(inv)
	assert.Len(t, fp, 16)
	assert.Equal(t, fp, report.Fingerprint(boolfn.NewCached(inv)))

	tu, err := boolfn.NewTu(field, 0x1)
	require.NoError(t, err)
	assert.NotEqual(t, fp, report.Fingerprint(tu))
}

func TestWriteJSON(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background(), t)
	defer endOfLogHandler()

	r, err := report.Run(ctx, boolfn.NewInverse(mustField(t, 3)), report.Options{
		Strategy: differential.Naive,
		Spectrum: true,
		Top:      1,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	for _, key := range []string{"run_id", "function", "degree", "modulus", "strategy",
		"uniformity", "spectrum", "extremal", "fingerprint", "started", "finished", "elapsed"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, "naive", doc["strategy"])
	assert.Equal(t, "b", doc["modulus"])
	assert.Equal(t, float64(2), doc["uniformity"])

	extremal := doc["extremal"].([]interface{})
	require.Len(t, extremal, 1)
	assert.Equal(t, "0x1", extremal[0].(map[string]interface{})["a"])
}

func TestWriteText(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background(), t)
	defer endOfLogHandler()

	r, err := report.Run(ctx, boolfn.NewInverse(mustField(t, 3)), report.Options{Spectrum: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "uniformity:  2\n")
	assert.Contains(t, out, "x^3+x+1")
	assert.Contains(t, out, "spectrum:    2 x 28\n")
}

func TestWriteHTML(t *testing.T) {
	ctx, endOfLogHandler := log.WithTestEffectHandler(context.Background(), t)
	defer endOfLogHandler()

	r, err := report.Run(ctx, boolfn.NewInverse(mustField(t, 3)), report.Options{Spectrum: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteHTML(&buf))
	html := buf.String()
	assert.True(t, strings.Contains(html, "echarts"), "page loads echarts")
	assert.Contains(t, html, "Differential spectrum of inverse")

	empty, err := report.Run(ctx, boolfn.NewInverse(mustField(t, 3)), report.Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, empty.WriteHTML(&buf), report.ErrNoSpectrum)
}
