package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/git"
	"hypkg/internal/logs"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Prepare the current repository for patch management.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			base := git.BaseBranch(deps.Runner)
			branch, err := git.CurrentBranch(deps.Runner)
			if err != nil {
				return err
			}

			st, err := deps.Store.Load()
			if err != nil {
				return err
			}
			st.Branch = branch
			if err := deps.Store.Save(st); err != nil {
				return err
			}

			logs.Info("Initialized hypkg in %s (base=%s).", deps.ProjectRoot, base)
			fmt.Printf("Initialized. Base branch: %s, working branch: %s.\n", base, branch)
			return nil
		},
	}
}
