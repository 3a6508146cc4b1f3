package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/hooks"
)

func newHookCmd() *cobra.Command {
	hookCmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage user scripts run after patch operations.",
	}

	addCmd := &cobra.Command{
		Use:   "add <event> <script>",
		Short: "Register a script for an event (applyPatch, removePatch, release).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			if err := hooks.Add(deps.Config, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Hook added for event '%s'.\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered hooks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			for _, h := range hooks.List(deps.Config) {
				fmt.Println(h)
			}
			return nil
		},
	}

	hookCmd.AddCommand(addCmd, listCmd)
	return hookCmd
}
