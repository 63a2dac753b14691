package main

import (
	"io"

	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/differential"
	"github.com/schollz/progressbar/v3"
)

// rowPasses counts the full passes over the nonzero directions a run makes.
// The inverse uniformity search reads a single row and reports none.
func rowPasses(ev boolfn.Evaluator, spectrum bool, top int) int64 {
	var passes int64
	if _, inverse := boolfn.RuleOf(ev).(boolfn.Inverse); !inverse {
		passes++
	}
	if spectrum {
		passes++
	}
	if top > 0 {
		passes++
	}
	return passes
}

// newProgress returns an engine option advancing a bar on w once per row,
// and a function that completes the bar.
func newProgress(w io.Writer, ev boolfn.Evaluator, passes int64) (differential.Option, func()) {
	rows := int64(ev.Field().Order()-1) * passes
	bar := progressbar.NewOptions64(rows,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("rows"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return differential.WithRowHook(func() { _ = bar.Add(1) }), func() { _ = bar.Finish() }
}
