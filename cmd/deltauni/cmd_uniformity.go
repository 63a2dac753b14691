package main

import (
	"context"
	"io"
	"os"

	"github.com/on-the-ground/delta_uniform_go/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// UniformityOptions collects all options for the uniformity command.
type UniformityOptions struct {
	FunctionOptions
	JSON string
}

func (opts *UniformityOptions) AddFlags(f *pflag.FlagSet) {
	opts.FunctionOptions.AddFlags(f)
	f.StringVar(&opts.JSON, "json", "", "also write the report as JSON to `file`")
}

func newUniformityCommand() *cobra.Command {
	var opts UniformityOptions

	cmd := &cobra.Command{
		Use:   "uniformity [flags]",
		Short: "Compute the differential uniformity of a function",
		Long: `
The "uniformity" command computes max over a != 0 and b of the number of x
with f(x+a) + f(x) = b.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), &opts.FunctionOptions, report.Options{}, opts.JSON, "", cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// runReport builds the function, runs the search and writes the text
// summary to out plus any requested report files.
func runReport(
	ctx context.Context,
	fopts *FunctionOptions,
	ropts report.Options,
	jsonPath, htmlPath string,
	out, progressOut io.Writer,
) error {
	if err := fopts.Validate(); err != nil {
		return err
	}
	ev, err := fopts.Build()
	if err != nil {
		return err
	}
	ropts.Strategy = fopts.strategy()

	engineOpts := fopts.engineOptions()
	if fopts.Progress {
		hook, finish := newProgress(progressOut, ev, rowPasses(ev, ropts.Spectrum, ropts.Top))
		defer finish()
		engineOpts = append(engineOpts, hook)
	}

	r, err := report.Run(ctx, ev, ropts, engineOpts...)
	if err != nil {
		return err
	}

	if jsonPath != "" {
		if err := writeFile(jsonPath, r.WriteJSON); err != nil {
			return err
		}
	}
	if htmlPath != "" {
		if err := writeFile(htmlPath, r.WriteHTML); err != nil {
			return err
		}
	}
	return r.WriteText(out)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

