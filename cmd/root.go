package cmd

import (
	"hypkg/internal/config"
	"hypkg/internal/errs"
	"hypkg/internal/gitexec"
	"hypkg/internal/hosting"
	"hypkg/internal/lockfile"
	"hypkg/internal/logs"
	"hypkg/internal/service"
	"hypkg/internal/store"
	"hypkg/internal/ui"

	"github.com/spf13/cobra"
)

var (
	verbose bool
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "hypkg",
	Short: "hypkg manages versioned patches layered onto your repository's branches.",
	Long: `hypkg applies, removes and tracks distributable patches ("mods") as annotated
commits on top of your base branch, with transactional-style rollback when
anything goes wrong mid-operation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logs.SetVerbose(verbose)
		return logs.InitLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logs.Close()
	},
}

// Execute is called by main.go to run the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newApplyCmd(),
		newRemoveCmd(),
		newUpdateCmd(),
		newListCmd(),
		newVersionsCmd(),
		newReleaseCmd(),
		newRepoCmd(),
		newConfigCmd(),
		newHookCmd(),
	)

	rootCmd.SetUsageTemplate(ui.ColorHeadings(rootCmd.UsageTemplate()))
}

// newDeps builds the per-invocation context every service runs against. It
// fails outside a git repository.
func newDeps() (service.Deps, error) {
	runner, err := gitexec.NewRunner("")
	if err != nil {
		return service.Deps{}, err
	}
	if !gitexec.IsGitRepo(runner) {
		return service.Deps{}, errs.ErrNotGitRepo
	}
	root, err := runner.Run("locate project root", "rev-parse", "--show-toplevel")
	if err != nil {
		return service.Deps{}, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return service.Deps{}, err
	}

	rootRunner, err := gitexec.NewRunner(root)
	if err != nil {
		return service.Deps{}, err
	}

	hostingClient := hosting.NewClient()
	hostingClient.RegistryURL = cfg.GetDefault("registry_url", hostingClient.RegistryURL)

	return service.Deps{
		ProjectRoot: root,
		Runner:      rootRunner,
		Store:       store.New(root),
		Config:      cfg,
		Lockfiles:   lockfile.New(rootRunner, root, cfg.Get("lockfile_command")),
		Hosting:     hostingClient,
	}, nil
}
