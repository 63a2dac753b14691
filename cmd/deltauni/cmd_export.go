package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/differential"
	"github.com/on-the-ground/delta_uniform_go/effects/concurrency"
	"github.com/on-the-ground/delta_uniform_go/effects/log"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
	"github.com/sbinet/npyio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// MaxTableExportDegree bounds the difference distribution table export,
// which holds 2^(2n) counts.
const MaxTableExportDegree = 12

// ExportOptions collects all options for the export command.
type ExportOptions struct {
	FunctionOptions
	Values string
	Table  string
}

func (opts *ExportOptions) AddFlags(f *pflag.FlagSet) {
	opts.FunctionOptions.AddFlags(f)
	f.StringVar(&opts.Values, "values", "", "write f(0), ..., f(2^n-1) as a .npy array to `file`")
	f.StringVar(&opts.Table, "table", "", "write the difference distribution table, row-major, as a .npy array to `file`")
}

func (opts *ExportOptions) Validate() error {
	if opts.Values == "" && opts.Table == "" {
		return errors.New("nothing to export, pass --values or --table")
	}
	if opts.Table != "" && opts.Degree > MaxTableExportDegree {
		return fmt.Errorf("--table needs --degree <= %d", MaxTableExportDegree)
	}
	return nil
}

func newExportCommand() *cobra.Command {
	var opts ExportOptions

	cmd := &cobra.Command{
		Use:   "export [flags]",
		Short: "Write the values or the difference table of a function as NumPy arrays",
		Long: `
The "export" command writes the truth table of a function, or its full
difference distribution table, in the NumPy .npy format. Entry a*2^n+b of
the table is the number of x with f(x+a) + f(x) = b.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.FunctionOptions.Validate(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			ev, err := opts.Build()
			if err != nil {
				return err
			}

			if opts.Values != "" {
				if err := writeFile(opts.Values, func(w io.Writer) error { return writeValues(w, ev) }); err != nil {
					return err
				}
				log.LogEff(cmd.Context(), log.LogInfo, "values exported",
					zap.String("file", opts.Values),
					zap.String("function", fmt.Sprint(ev)),
				)
			}
			if opts.Table != "" {
				engine := differential.New(ev, opts.engineOptions()...)
				if err := writeFile(opts.Table, func(w io.Writer) error { return writeTable(w, engine, opts.concurrencyOptions()...) }); err != nil {
					return err
				}
				log.LogEff(cmd.Context(), log.LogInfo, "difference table exported",
					zap.String("file", opts.Table),
					zap.String("function", fmt.Sprint(ev)),
				)
			}
			return nil
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

func writeValues(w io.Writer, ev boolfn.Evaluator) error {
	values := make([]uint64, ev.Field().Order())
	for x := range values {
		values[x] = gf2n.Bytes(ev.Evaluate(gf2n.MakeElem(uint64(x))))
	}
	return npyio.Write(w, values)
}

// writeTable fills the rows of the table concurrently; each worker owns a
// disjoint run of rows.
func writeTable[F boolfn.Evaluator](w io.Writer, engine *differential.Engine[F], opts ...concurrency.Option) error {
	order := engine.Field().Order()
	table := make([]uint32, order*order)
	concurrency.For(0, order, func(lo, hi uint64) {
		for a := lo; a < hi; a++ {
			row := table[a*order : (a+1)*order]
			for b, c := range engine.RowHistogram(gf2n.MakeElem(a)) {
				row[b] = uint32(c)
			}
		}
	}, opts...)
	return npyio.Write(w, table)
}
