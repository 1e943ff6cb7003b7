package main

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/config"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage wt-core configuration.

Global config: $XDG_CONFIG_HOME/wt-core/config.toml (~/.config/wt-core/config.toml)
Local config:  .wt-core.toml in the repository root`,
		Example: `  wt-core config init     # Create default global config
  wt-core config show     # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  wt-core config init      # Create global config
  wt-core config init -f   # Overwrite existing config
  wt-core config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if stdout {
				out.Print(config.Template())
				return nil
			}
			path, err := config.Init(force)
			if err != nil {
				return apperr.NewUsage("%v (use -f to overwrite)", err)
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration as TOML.

Inside a repository (or with --repo) the repository's .wt-core.toml is
merged over the global config. Environment overrides are applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			resolver := config.ResolverFromContext(ctx)

			if path, err := config.Path(); err == nil {
				out.Printf("# global: %s\n", path)
			}

			cfg := resolver.Global()
			start := repo
			if start == "" {
				start = sessionFromContext(ctx).workDir
			}
			if root, err := git.ResolveRepoRoot(ctx, start); err == nil {
				out.Printf("# local:  %s\n", filepath.Join(root.String(), config.LocalConfigFileName))
				merged, err := resolver.ConfigForRepo(root.String())
				if err != nil {
					l.Warnf("%v", err)
				} else {
					cfg = merged
				}
			} else if repo != "" {
				return err
			}

			out.Println()
			return toml.NewEncoder(out.Writer()).Encode(cfg)
		},
	}

	addRepoFlag(cmd, &repo)

	return cmd
}
