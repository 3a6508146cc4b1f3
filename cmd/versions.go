package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/service"
)

func newVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <repo/patch>",
		Short: "List a patch's released versions, newest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			versions, err := service.NewVersionService(deps).ListVersions(args[0])
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Printf("No released versions for '%s'.\n", args[0])
				return nil
			}
			for _, v := range versions {
				fmt.Println(v.String())
			}
			return nil
		},
	}
}

func newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <repo/patch>",
		Short: "Tag the applied patch with its next version and push the tag.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			version, err := service.NewVersionService(deps).Release(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Released '%s' v%s.\n", args[0], version)
			return nil
		},
	}
}
