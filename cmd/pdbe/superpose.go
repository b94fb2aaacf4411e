package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakhrymubarak/pdbe-client/internal/superpose"
)

var (
	superposeTools  []string
	superposeOutDir string
	superposeDryRun bool
)

// newRunner builds the runner used by the superpose command. Tests replace it.
var newRunner = superpose.NewRunner

var superposeCmd = &cobra.Command{
	Use:   "superpose <static> <mobile>...",
	Short: "Superpose structures onto a static one with SSM and/or GESAMT",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tools []superpose.Tool
		for _, name := range superposeTools {
			t, err := superpose.ToolByName(name)
			if err != nil {
				return err
			}
			tools = append(tools, t)
		}
		jobs, err := superpose.Plan(tools, args[0], args[1:], superposeOutDir)
		if err != nil {
			return err
		}
		if superposeDryRun {
			for _, j := range jobs {
				fmt.Fprintln(cmd.OutOrStdout(), j.String())
			}
			return nil
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := newRunner().Execute(ctx, jobs); err != nil {
			return err
		}
		for _, j := range jobs {
			fmt.Fprintln(cmd.OutOrStdout(), j.Output)
		}
		return nil
	},
}

func init() {
	superposeCmd.Flags().StringSliceVar(&superposeTools, "tool", []string{"ssm", "gesamt"}, "Tools to run (ssm, gesamt)")
	superposeCmd.Flags().StringVarP(&superposeOutDir, "out", "o", ".", "Directory for superposed files")
	superposeCmd.Flags().BoolVar(&superposeDryRun, "dry-run", false, "Print the commands without running them")
}
