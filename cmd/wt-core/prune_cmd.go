package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/lifecycle"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
	"github.com/raphi011/wt-core/internal/ui"
	"github.com/raphi011/wt-core/internal/ui/progress"
	"github.com/raphi011/wt-core/internal/ui/static"
)

func newPruneCmd() *cobra.Command {
	var (
		execute  bool
		force    bool
		mainline string
		repo     string
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:     "prune",
		Short:   "Remove worktrees whose branches are integrated into mainline",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Find worktrees whose branch is integrated into mainline and remove them.

A branch is integrated when its tip is an ancestor of mainline (merged)
or every one of its commits has a patch-equivalent commit on mainline
(rebase or cherry-pick).

Without --execute nothing is changed: the report shows what would be
removed. Worktrees with uncommitted changes are skipped unless --force
is given. Locked and detached worktrees are never pruned, and neither is
a worktree that has the mainline branch checked out.`,
		Example: `  wt-core prune                         # dry run
  wt-core prune --execute               # remove integrated worktrees
  wt-core prune --execute --force       # include worktrees with changes
  wt-core prune --mainline develop      # compare against develop
  wt-core prune --mainline origin/main  # compare against the remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			format := output.ParseStatusFormat(jsonOut)
			err := runPrune(cmd, repo, mainline, execute, force, format)
			return finish(out, format.Structured(), err)
		},
	}

	cmd.Flags().BoolVarP(&execute, "execute", "x", false, "Remove the integrated worktrees")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Also remove worktrees with uncommitted changes (requires --execute)")
	cmd.Flags().StringVar(&mainline, "mainline", "", "Branch or revision to compare against (default: detected)")
	addRepoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	cmd.RegisterFlagCompletionFunc("mainline", completeLocalBranches)

	return cmd
}

func runPrune(cmd *cobra.Command, repo, mainline string, execute, force bool, format output.StatusFormat) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if force && !execute {
		return apperr.NewUsage("--force requires --execute")
	}

	opts := lifecycle.PruneOptions{Execute: execute, Force: force, Mainline: mainline}

	eng, _, err := openEngine(ctx, repo, false)
	if err != nil {
		return err
	}

	var sp *progress.Spinner
	s := sessionFromContext(ctx)
	if !format.Structured() && !l.IsQuiet() && s.stderr == os.Stderr && ui.ShowProgress() {
		sp = progress.NewSpinner(os.Stderr, "Checking worktrees...")
		sp.Start()
		opts.Progress = sp.UpdateMessage
	}

	report, err := eng.Prune(ctx, opts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	if format == output.StatusJSON {
		return out.JSON(output.NewPrunePayload(report))
	}
	warn(l, report.Warnings)
	if len(report.Candidates) > 0 {
		out.Print(static.FormatPrune(report))
	}
	out.Println(static.PruneSummary(report))
	return nil
}
