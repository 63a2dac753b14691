package main

import (
	"fmt"

	"github.com/on-the-ground/delta_uniform_go/gf2n"
	"github.com/spf13/cobra"
)

func newModulusCommand() *cobra.Command {
	var degree int

	cmd := &cobra.Command{
		Use:   "modulus",
		Short: "Print the reduction polynomial used for GF(2^n)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := gf2n.BuildIrreducible(degree)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%#x %s\n", uint64(p), p.Expand())
			return err
		},
	}

	cmd.Flags().IntVarP(&degree, "degree", "n", 8, "field extension `n` of GF(2^n)")
	return cmd
}
