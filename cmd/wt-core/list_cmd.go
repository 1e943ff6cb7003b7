package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/output"
	"github.com/raphi011/wt-core/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var (
		repo    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List every worktree of the repository, main first.

The current worktree is marked with '*'. Status shows uncommitted changes,
locked worktrees and registered worktrees whose directory is gone.`,
		Example: `  wt-core list          # table of worktrees
  wt-core list --json   # machine-readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			format := output.ParseStatusFormat(jsonOut)
			return finish(out, format.Structured(), runList(cmd, repo, format))
		},
	}

	addRepoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func runList(cmd *cobra.Command, repo string, format output.StatusFormat) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	eng, _, err := openEngine(ctx, repo, false)
	if err != nil {
		return err
	}
	res, err := eng.List(ctx)
	if err != nil {
		return err
	}

	if format == output.StatusJSON {
		return out.JSON(output.NewListPayload(res))
	}
	out.Print(static.FormatWorktrees(res.Worktrees))
	return nil
}
