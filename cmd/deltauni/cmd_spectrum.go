package main

import (
	"errors"

	"github.com/on-the-ground/delta_uniform_go/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SpectrumOptions collects all options for the spectrum command.
type SpectrumOptions struct {
	FunctionOptions
	Top  int
	JSON string
	HTML string
}

func (opts *SpectrumOptions) AddFlags(f *pflag.FlagSet) {
	opts.FunctionOptions.AddFlags(f)
	f.IntVar(&opts.Top, "top", 0, "also list the `k` largest table cells")
	f.StringVar(&opts.JSON, "json", "", "also write the report as JSON to `file`")
	f.StringVar(&opts.HTML, "html", "", "also write a bar chart of the spectrum to `file`")
}

func newSpectrumCommand() *cobra.Command {
	var opts SpectrumOptions

	cmd := &cobra.Command{
		Use:   "spectrum [flags]",
		Short: "Compute the differential spectrum of a function",
		Long: `
The "spectrum" command counts, for every value c, how many cells (a, b) of
the difference distribution table with a != 0 hold c.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Top < 0 {
				return errors.New("--top must not be negative")
			}
			return runReport(cmd.Context(), &opts.FunctionOptions,
				report.Options{Spectrum: true, Top: opts.Top},
				opts.JSON, opts.HTML, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}
