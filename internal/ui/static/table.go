// Package static renders the non-interactive human output: the worktree
// list, the prune report and doctor diagnostics.
package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/wt-core/internal/doctor"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/ui/styles"
)

// RenderTable lays out headers and rows in aligned, borderless columns.
// An empty row set renders nothing.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// WorktreeHeaders are the columns of the list table.
var WorktreeHeaders = []string{"", "BRANCH", "HEAD", "STATUS", "PATH"}

// WorktreeRow returns one list table row.
func WorktreeRow(wt domain.Worktree) []string {
	marker := ""
	if wt.IsCurrent {
		marker = "*"
	}

	branch := wt.Branch.String()
	if branch == "" {
		branch = "(detached)"
	}
	if wt.IsMain {
		branch += " (main)"
	}

	return []string{marker, branch, wt.ShortHead(), worktreeStatus(wt), wt.Path}
}

func worktreeStatus(wt domain.Worktree) string {
	var parts []string
	switch {
	case wt.Missing:
		parts = append(parts, styles.ErrorStyle.Render("missing"))
	case wt.Dirty:
		parts = append(parts, styles.WarningStyle.Render("dirty"))
	default:
		parts = append(parts, styles.SuccessStyle.Render("clean"))
	}
	if wt.Locked {
		parts = append(parts, "locked")
	}
	return strings.Join(parts, ",")
}

// FormatWorktrees renders the list table.
func FormatWorktrees(wts []domain.Worktree) string {
	rows := make([][]string, 0, len(wts))
	for _, wt := range wts {
		rows = append(rows, WorktreeRow(wt))
	}
	return RenderTable(WorktreeHeaders, rows)
}

// PruneHeaders are the columns of the prune table.
var PruneHeaders = []string{"BRANCH", "STATUS", "METHOD", "PATH"}

// FormatPrune renders the prune report: the candidate verdicts for a dry
// run, the outcome per worktree for an execute run.
func FormatPrune(r domain.PruneReport) string {
	pruned := make(map[string]bool, len(r.Pruned))
	for _, p := range r.Pruned {
		pruned[p.Path] = true
	}
	skipped := make(map[string]domain.SkipReason, len(r.Skipped))
	for _, s := range r.Skipped {
		skipped[s.Path] = s.Reason
	}

	rows := make([][]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		branch := c.Branch.String()
		if branch == "" {
			branch = "(detached)"
		}

		var status string
		switch {
		case r.Execute && pruned[c.Path]:
			status = styles.SuccessStyle.Render("pruned")
		case r.Execute && skipped[c.Path] != "":
			status = styles.MutedStyle.Render("skipped: " + string(skipped[c.Path]))
		case c.Prunable(r.Force):
			status = styles.AccentStyle.Render("prunable")
		case c.Reason != "":
			status = styles.MutedStyle.Render(string(c.Reason))
		case c.Dirty:
			status = styles.WarningStyle.Render("dirty")
		}

		rows = append(rows, []string{branch, status, string(c.Method), c.Path})
	}
	return RenderTable(PruneHeaders, rows)
}

// PruneSummary is the closing line of a prune run.
func PruneSummary(r domain.PruneReport) string {
	if r.Execute {
		return fmt.Sprintf("Pruned %d worktree(s), skipped %d", len(r.Pruned), len(r.Skipped))
	}
	n := r.PrunableCount()
	if n == 0 {
		return fmt.Sprintf("Nothing to prune (mainline: %s)", r.Mainline)
	}
	return fmt.Sprintf("%d worktree(s) integrated into %s; run with --execute to remove them", n, r.Mainline)
}

// FormatDiagnostics renders one line per diagnostic.
func FormatDiagnostics(diags []doctor.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		var symbol string
		switch d.Level {
		case doctor.LevelOK:
			symbol = styles.SuccessStyle.Render("✓")
		case doctor.LevelWarn:
			symbol = styles.WarningStyle.Render("⚠")
		default:
			symbol = styles.ErrorStyle.Render("✗")
		}
		fmt.Fprintf(&b, "  %s %s\n", symbol, d.Message)
	}
	return b.String()
}
