package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/lifecycle"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
	"github.com/raphi011/wt-core/internal/ui/styles"
)

func newMergeCmd() *cobra.Command {
	var (
		push       bool
		noCleanup  bool
		repo       string
		jsonOut    bool
		printPaths bool
	)

	cmd := &cobra.Command{
		Use:               "merge [branch]",
		Short:             "Merge a worktree branch into mainline",
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorktreeBranches,
		Long: `Merge a worktree's branch into mainline with --no-ff.

The merge runs in the main worktree, which must be on mainline and have
no uncommitted changes to tracked files. A conflicting merge is aborted
and the main worktree is left as it was.

After a successful merge the worktree and its branch are removed unless
--no-cleanup is given, and mainline is pushed with --push. Failures in
those steps are reported as warnings; the merge itself stays.

Defaults for both come from [merge] in the config.`,
		Example: `  wt-core merge feature-x              # merge, then remove the worktree
  wt-core merge feature-x --push       # also push mainline
  wt-core merge --no-cleanup           # keep the worktree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			format, err := output.ParsePathsFormat(jsonOut, printPaths)
			if err != nil {
				return err
			}
			err = runMerge(cmd, args, repo, push, noCleanup, format)
			return finish(out, format == output.PathsJSON, err)
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "Push mainline after merging (default from merge.push)")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Keep the worktree and branch after merging")
	addRepoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&printPaths, "print-paths", false, "Print repo root, branch, mainline, cleaned_up and pushed, one per line")
	cmd.MarkFlagsMutuallyExclusive("json", "print-paths")

	return cmd
}

func runMerge(cmd *cobra.Command, args []string, repo string, push, noCleanup bool, format output.PathsFormat) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	branch, err := branchArg(args)
	if err != nil {
		return err
	}
	eng, cfg, err := openEngine(ctx, repo, format != output.PathsJSON)
	if err != nil {
		return err
	}

	opts := lifecycle.MergeOptions{
		Push:    cfg.Merge.Push,
		Cleanup: cfg.Merge.Cleanup,
	}
	if cmd.Flags().Changed("push") {
		opts.Push = push
	}
	if noCleanup {
		opts.Cleanup = false
	}

	res, err := eng.Merge(ctx, lifecycle.Target{Branch: branch}, opts)
	if err != nil {
		return err
	}

	switch format {
	case output.PathsJSON:
		return out.JSON(output.NewMergePayload(res))
	case output.PathsLines:
		warn(l, res.Warnings)
		out.Lines(output.MergeLines(res)...)
	default:
		warn(l, res.Warnings)
		check := styles.SuccessStyle.Render("✓")
		out.Printf("%s Merged '%s' into '%s'\n", check, res.Branch, res.Mainline)
		if res.CleanedUp {
			out.Printf("%s Removed worktree %s\n", check, styles.MutedStyle.Render(res.RemovedPath))
		}
		if res.Pushed {
			out.Printf("%s Pushed '%s' to %s\n", check, res.Mainline, cfg.Remote)
		}
	}
	return nil
}
