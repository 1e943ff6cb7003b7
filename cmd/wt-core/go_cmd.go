package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/lifecycle"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
)

func newGoCmd() *cobra.Command {
	var (
		interactive     bool
		copyToClipboard bool
		repo            string
		jsonOut         bool
		printPath       bool
	)

	cmd := &cobra.Command{
		Use:               "go [branch]",
		Short:             "Print the path of a worktree",
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorktreeBranches,
		Long: `Print the path of a worktree for shell scripting.

Subprocesses cannot change the parent shell's directory, so go only
resolves the path. The 'wt' wrapper from 'wt-core init' changes into it.

Without a branch, a sole worktree is chosen automatically and several
worktrees open the picker. Outside a terminal the worktree containing the
current directory is used.`,
		Example: `  cd "$(wt-core go feature-x)"   # cd into the feature-x worktree
  wt-core go -i                  # always show the picker
  wt-core go --copy feature-x    # copy the path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			format, err := output.ParseNavFormat(jsonOut, printPath)
			if err != nil {
				return err
			}
			err = runGo(cmd, args, repo, interactive, copyToClipboard, format)
			return finish(out, format == output.NavJSON, err)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Always choose the worktree with the picker")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the worktree path to the clipboard")
	addRepoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&printPath, "print-cd-path", false, "Print only the worktree path")
	cmd.MarkFlagsMutuallyExclusive("json", "print-cd-path")
	cmd.MarkFlagsMutuallyExclusive("interactive", "json")

	return cmd
}

func runGo(cmd *cobra.Command, args []string, repo string, interactive, copyPath bool, format output.NavFormat) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	branch, err := branchArg(args)
	if err != nil {
		return err
	}
	eng, _, err := openEngine(ctx, repo, format != output.NavJSON)
	if err != nil {
		return err
	}

	res, err := eng.Go(ctx, lifecycle.Target{Branch: branch, ForcePrompt: interactive})
	if err != nil {
		return err
	}

	if copyPath {
		if err := clipboard.WriteAll(res.WorktreePath); err != nil {
			l.Warnf("failed to copy to clipboard: %v", err)
		} else {
			l.Printf("Copied %s to clipboard\n", res.WorktreePath)
		}
	}

	if format == output.NavJSON {
		return out.JSON(output.NewGoPayload(res))
	}
	out.Println(res.WorktreePath)
	return nil
}
