package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/doctor"
	"github.com/raphi011/wt-core/internal/output"
	"github.com/raphi011/wt-core/internal/ui/static"
	"github.com/raphi011/wt-core/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	var (
		repo    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check worktrees for inconsistencies",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Check the repository's worktrees for problems.

Reports registered worktrees whose directory is missing, detached or
locked worktrees, worktrees whose branch was deleted, directories under
.worktrees/ that git does not know about, and a missing remote.

Doctor never changes anything. Use 'git worktree prune' to drop stale
registrations.`,
		Example: `  wt-core doctor          # human-readable report
  wt-core doctor --json   # machine-readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			format := output.ParseStatusFormat(jsonOut)
			return finish(out, format.Structured(), runDoctor(cmd, repo, format))
		},
	}

	addRepoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func runDoctor(cmd *cobra.Command, repo string, format output.StatusFormat) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	eng, _, err := openEngine(ctx, repo, false)
	if err != nil {
		return err
	}
	report, err := eng.Doctor(ctx)
	if err != nil {
		return err
	}

	if format == output.StatusJSON {
		return out.JSON(output.NewDoctorPayload(report))
	}

	out.Println(styles.TitleStyle.Render("Worktrees of " + report.RepoRoot.String()))
	out.Print(static.FormatDiagnostics(report.Diagnostics))
	if !report.Healthy() {
		out.Printf("\n%d error(s), %d warning(s)\n", report.Count(doctor.LevelError), report.Count(doctor.LevelWarn))
	}
	return nil
}
