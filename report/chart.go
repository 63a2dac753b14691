package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrNoSpectrum = errors.New("report has no spectrum")

// WriteHTML renders the differential spectrum as a bar chart page.
func (r *Report) WriteHTML(w io.Writer) error {
	if len(r.Spectrum) == 0 {
		return ErrNoSpectrum
	}

	labels := make([]string, 0, len(r.Spectrum))
	bars := make([]opts.BarData, 0, len(r.Spectrum))
	for _, e := range r.Spectrum {
		labels = append(labels, strconv.FormatUint(e.Count, 10))
		bars = append(bars, opts.BarData{Value: e.Multiplicity})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Differential spectrum of %s", r.Function),
			Subtitle: fmt.Sprintf("GF(2^%d) mod %s, uniformity %d", r.Degree, r.Modulus.Expand(), r.Uniformity),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "δ(a,b)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cells"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			},
		}),
	)
	bar.SetXAxis(labels).AddSeries("cells", bars)

	page := components.NewPage().SetPageTitle("deltauni " + r.RunID)
	page.AddCharts(bar)
	return page.Render(w)
}
