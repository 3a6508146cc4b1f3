package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/logs"
	"hypkg/internal/service"
	"hypkg/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [repo/patch]",
		Short: "Remove an applied patch by rebuilding history without it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			svc := service.NewPatchService(deps)

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				name, err = pickAppliedPatch(svc)
				if err != nil {
					return err
				}
			}

			logs.Info("Removing patch '%s'", name)
			if err := svc.Remove(name); err != nil {
				logs.Error("Failed to remove '%s': %v", name, err)
				return err
			}

			fmt.Printf("Patch '%s' removed.\n", name)
			return nil
		},
	}
}

// pickAppliedPatch offers an interactive choice among the applied patches.
func pickAppliedPatch(svc *service.PatchService) (string, error) {
	set, err := svc.AppliedSet()
	if err != nil {
		return "", err
	}
	var names []string
	for _, rec := range set {
		names = append(names, rec.NamespacedName)
	}
	return ui.SelectString("Which patch?", names)
}
