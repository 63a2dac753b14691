package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

func newRootCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deltauni",
		Short: "Measure the differential uniformity of functions over GF(2^n)",
		Long: `
deltauni evaluates a function over the binary field GF(2^n) and computes its
differential uniformity, the largest number of solutions x of
f(x+a) + f(x) = b over all nonzero a and all b.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			ctx, err := gopts.PreRun(c.Context())
			if err != nil {
				return err
			}
			c.SetContext(ctx)
			return nil
		},
	}

	gopts.AddFlags(cmd.PersistentFlags())
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newUniformityCommand(),
		newSpectrumCommand(),
		newModulusCommand(),
		newExportCommand(),
	)
	return cmd
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	gopts := &GlobalOptions{}
	defer gopts.Cleanup()

	cmd := newRootCommand(gopts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "deltauni: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
