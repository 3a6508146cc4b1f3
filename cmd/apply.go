package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/logs"
	"hypkg/internal/service"
)

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <repo/patch>",
		Short: "Apply a patch from a source repository onto the current branch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			name := args[0]
			logs.Info("Applying patch '%s'", name)
			if err := service.NewPatchService(deps).Apply(name); err != nil {
				logs.Error("Failed to apply '%s': %v", name, err)
				return err
			}

			fmt.Printf("Patch '%s' applied.\n", name)
			return nil
		},
	}
}
