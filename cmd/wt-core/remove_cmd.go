package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/lifecycle"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
	"github.com/raphi011/wt-core/internal/ui/styles"
)

func newRemoveCmd() *cobra.Command {
	var (
		force      bool
		repo       string
		jsonOut    bool
		printPaths bool
	)

	cmd := &cobra.Command{
		Use:               "remove [branch]",
		Short:             "Remove a worktree and its branch",
		Aliases:           []string{"rm"},
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorktreeBranches,
		Long: `Remove a worktree directory and delete its branch.

Worktrees with uncommitted changes are refused unless --force is given.
A branch that is not fully merged is kept without --force; the worktree
is still removed and a warning is printed. The main worktree can never be
removed.

Without a branch the picker is shown; outside a terminal the worktree
containing the current directory is used.`,
		Example: `  wt-core remove feature-x          # remove worktree and branch
  wt-core rm feature-x --force      # discard changes, delete unmerged branch
  wt-core rm --print-paths          # removed path, repo root, branch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			format, err := output.ParsePathsFormat(jsonOut, printPaths)
			if err != nil {
				return err
			}
			return finish(out, format == output.PathsJSON, runRemove(cmd, args, repo, force, format))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes and delete unmerged branches")
	addRepoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&printPaths, "print-paths", false, "Print removed path, repo root and branch, one per line")
	cmd.MarkFlagsMutuallyExclusive("json", "print-paths")

	return cmd
}

func runRemove(cmd *cobra.Command, args []string, repo string, force bool, format output.PathsFormat) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	branch, err := branchArg(args)
	if err != nil {
		return err
	}
	eng, _, err := openEngine(ctx, repo, format != output.PathsJSON)
	if err != nil {
		return err
	}

	res, err := eng.Remove(ctx, lifecycle.Target{Branch: branch}, force)
	if err != nil {
		return err
	}

	switch format {
	case output.PathsJSON:
		return out.JSON(output.NewRemovePayload(res))
	case output.PathsLines:
		warn(l, res.Warnings)
		out.Lines(output.RemoveLines(res)...)
	default:
		warn(l, res.Warnings)
		out.Printf("%s Removed worktree for '%s'\n", styles.SuccessStyle.Render("✓"), res.Branch)
		out.Printf("  %s\n", styles.MutedStyle.Render(res.RemovedPath))
		if res.BranchDeleted {
			out.Printf("%s Deleted branch '%s'\n", styles.SuccessStyle.Render("✓"), res.Branch)
		}
	}
	return nil
}
