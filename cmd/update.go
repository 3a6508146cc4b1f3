package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/logs"
	"hypkg/internal/service"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <repo/patch>",
		Short: "Re-apply a patch at its source branch's current tip.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			name := args[0]
			logs.Info("Updating patch '%s'", name)
			if err := service.NewPatchService(deps).Update(name); err != nil {
				logs.Error("Failed to update '%s': %v", name, err)
				return err
			}

			fmt.Printf("Patch '%s' updated.\n", name)
			return nil
		},
	}
}
