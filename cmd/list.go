package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/model"
	"hypkg/internal/service"
	"hypkg/internal/ui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the patches applied on the current branch, oldest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			set, err := service.NewPatchService(deps).List()
			if err != nil {
				return err
			}
			if len(set) == 0 {
				fmt.Println("No patches applied.")
				return nil
			}

			t := ui.NewTable("Patch", "Version", "Commit", "Mod Base")
			for _, rec := range set {
				version := rec.Version
				if version == "" {
					version = "-"
				}
				t.AppendRow([]any{rec.NamespacedName, version, short(rec.CommitHash), short(rec.ModBaseHash)})
			}
			fmt.Println(t.Render())
			return nil
		},
	}
}

func short(hash string) string {
	if hash == model.Unknown || len(hash) < 8 {
		return hash
	}
	return hash[:8]
}
