package cli

import (
	"fmt"

	"dynprog/experiments"

	"github.com/spf13/cobra"
)

func (a *App) newExperimentCmd() *cobra.Command {
	var output string
	var size int

	cmd := &cobra.Command{
		Use:       "experiment [discount|parallel]",
		Short:     "Run a batch experiment and store its records",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"discount", "parallel"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "discount":
				err = experiments.RunDiscountExperiment(output)
			case "parallel":
				err = experiments.RunParallelExperiment(output, size)
			default:
				return fmt.Errorf("unknown experiment %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Experiment %s stored under %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "experiments", "directory for experiment records")
	cmd.Flags().IntVar(&size, "size", 32, "side length of the random lake in the parallel experiment")

	return cmd
}
