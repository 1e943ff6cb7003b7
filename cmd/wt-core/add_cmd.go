package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/output"
	"github.com/raphi011/wt-core/internal/ui/styles"
)

func newAddCmd() *cobra.Command {
	var (
		base      string
		repo      string
		jsonOut   bool
		printPath bool
	)

	cmd := &cobra.Command{
		Use:     "add <branch>",
		Short:   "Create a worktree for a new branch",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Create a new branch and a worktree for it under <repo>/.worktrees/.

The branch starts from --base when given. Otherwise it tracks the remote
branch of the same name if one exists, and starts from the current
worktree's HEAD if not.`,
		Example: `  wt-core add feature-x                # branch from current HEAD
  wt-core add feature-x --base main    # branch from main
  cd "$(wt-core add fix --print-cd-path)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			format, err := output.ParseNavFormat(jsonOut, printPath)
			if err != nil {
				return err
			}
			return finish(out, format == output.NavJSON, runAdd(cmd, args[0], base, repo, format))
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Start the branch from this revision")
	addRepoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&printPath, "print-cd-path", false, "Print only the worktree path")
	cmd.MarkFlagsMutuallyExclusive("json", "print-cd-path")

	cmd.RegisterFlagCompletionFunc("base", completeLocalBranches)
	cmd.ValidArgsFunction = cobra.NoFileCompletions

	return cmd
}

func runAdd(cmd *cobra.Command, name, base, repo string, format output.NavFormat) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	branch, err := domain.NewBranchName(name)
	if err != nil {
		return err
	}
	eng, _, err := openEngine(ctx, repo, false)
	if err != nil {
		return err
	}

	res, err := eng.Add(ctx, branch, base)
	if err != nil {
		return err
	}

	switch format {
	case output.NavJSON:
		return out.JSON(output.NewAddPayload(res))
	case output.NavPath:
		out.Println(res.WorktreePath)
	default:
		msg := "Created worktree for '" + res.Branch.String() + "'"
		if res.Tracking != "" {
			msg += " tracking '" + res.Tracking + "'"
		}
		out.Printf("%s %s\n", styles.SuccessStyle.Render("✓"), msg)
		out.Printf("  %s\n", styles.MutedStyle.Render(res.WorktreePath))
		l.Debug("worktree created", "path", res.WorktreePath)
	}
	return nil
}
