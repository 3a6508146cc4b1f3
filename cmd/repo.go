package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hypkg/internal/service"
	"hypkg/internal/ui"
)

func newRepoCmd() *cobra.Command {
	repoCmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage patch source repositories.",
	}
	repoCmd.AddCommand(newRepoAddCmd(), newRepoListCmd(), newRepoRemoveCmd())
	return repoCmd
}

func newRepoAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Register a repository as a patch source and fetch it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			repo, err := service.NewRepoService(deps).Add(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Repository '%s' added (%s).\n", repo.Name, ui.Verified(repo.Verified))
			return nil
		},
	}
}

func newRepoRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Drop a repository from the patch source registry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}

			if err := service.NewRepoService(deps).Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Repository '%s' removed.\n", args[0])
			return nil
		},
	}
}

func newRepoListCmd() *cobra.Command {
	var enrich bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured patch source repositories.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			svc := service.NewRepoService(deps)

			if !enrich {
				repos, err := svc.List()
				if err != nil {
					return err
				}
				t := ui.NewTable("Name", "URL", "Status")
				for _, r := range repos {
					t.AppendRow([]any{r.Name, r.URL, ui.Verified(r.Verified)})
				}
				fmt.Println(t.Render())
				return nil
			}

			enriched, err := svc.ListEnriched()
			if err != nil {
				return err
			}
			t := ui.NewTable("Name", "URL", "Status", "Stars", "Forks", "Default Branch")
			for _, e := range enriched {
				stars, forks, branch := "-", "-", "-"
				if e.Err == nil && e.Info.FullName != "" {
					stars = fmt.Sprintf("%d", e.Info.Stars)
					forks = fmt.Sprintf("%d", e.Info.Forks)
					branch = e.Info.DefaultBranch
				}
				t.AppendRow([]any{e.Repo.Name, e.Repo.URL, ui.Verified(e.Repo.Verified), stars, forks, branch})
			}
			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&enrich, "enrich", false, "Include hosting metadata (stars, forks, default branch)")
	return cmd
}
