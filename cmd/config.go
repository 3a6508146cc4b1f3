package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read or write hypkg configuration.",
	}

	var global bool

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value (local overrides global).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			fmt.Println(deps.Config.Get(args[0]))
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			return deps.Config.Set(args[0], args[1], global)
		},
	}
	setCmd.Flags().BoolVar(&global, "global", false, "Write to the global config instead of the project one")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured keys.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			for _, k := range deps.Config.Keys() {
				fmt.Printf("%s = %s\n", k, deps.Config.Get(k))
			}
			return nil
		},
	}

	configCmd.AddCommand(getCmd, setCmd, listCmd)
	return configCmd
}
