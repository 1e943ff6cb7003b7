package lifecycle

import (
	"context"
	"fmt"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// PruneOptions controls a prune run. Without Execute nothing is modified.
type PruneOptions struct {
	Execute  bool
	Force    bool
	// Mainline overrides the revision candidates are checked against. Any
	// revision works, so a stale local main can be bypassed with
	// origin/main.
	Mainline string
	// Progress, if set, is called with a short status line before each
	// worktree is checked or removed.
	Progress func(status string)
}

func (o PruneOptions) progress(format string, args ...any) {
	if o.Progress != nil {
		o.Progress(fmt.Sprintf(format, args...))
	}
}

// Prune reports which non-main worktrees are integrated into mainline and,
// with Execute, removes them. Each candidate is handled independently.
func (e *Engine) Prune(ctx context.Context, opts PruneOptions) (domain.PruneReport, error) {
	l := log.FromContext(ctx)

	wts, err := e.worktrees(ctx)
	if err != nil {
		return domain.PruneReport{}, err
	}
	mainline, err := e.resolvePruneMainline(ctx, opts.Mainline, wts)
	if err != nil {
		return domain.PruneReport{}, err
	}

	report := domain.PruneReport{
		RepoRoot: e.root,
		Mainline: mainline.name,
		Execute:  opts.Execute,
		Force:    opts.Force,
	}

	for _, wt := range wts {
		if wt.IsMain {
			continue
		}
		opts.progress("Checking %s", wt.Path)
		c, warning := e.pruneCandidate(ctx, wt, mainline)
		if warning != "" {
			report.Warnings = append(report.Warnings, warning)
		}
		report.Candidates = append(report.Candidates, c)
	}

	if !opts.Execute {
		return report, nil
	}

	for _, c := range report.Candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if c.Reason != "" {
			report.Skipped = append(report.Skipped, domain.SkippedWorktree{Path: c.Path, Branch: c.Branch, Reason: c.Reason})
			continue
		}
		if !opts.Force && e.stillDirty(ctx, c) {
			report.Skipped = append(report.Skipped, domain.SkippedWorktree{Path: c.Path, Branch: c.Branch, Reason: domain.SkipDirty})
			continue
		}

		l.Debug("pruning", "branch", c.Branch, "path", c.Path, "method", c.Method)
		opts.progress("Removing %s", c.Branch)
		if err := git.RemoveWorktree(ctx, e.root, c.Path, opts.Force || !pathExists(c.Path)); err != nil {
			report.Skipped = append(report.Skipped, domain.SkippedWorktree{Path: c.Path, Branch: c.Branch, Reason: domain.SkipRemovalFailed})
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: removal failed: %v", c.Branch, err))
			continue
		}

		pruned := domain.PrunedWorktree{Path: c.Path, Branch: c.Branch}
		forceDelete := opts.Force || c.Method == domain.MethodRebase
		if err := git.DeleteBranch(ctx, e.root.String(), c.Branch, forceDelete); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: worktree removed but branch deletion failed: %v", c.Branch, err))
		} else {
			pruned.BranchDeleted = true
		}
		report.Pruned = append(report.Pruned, pruned)
	}

	return report, nil
}

// pruneCandidate computes the verdict for one worktree without modifying
// anything. A non-empty warning describes a check that could not run.
func (e *Engine) pruneCandidate(ctx context.Context, wt domain.Worktree, mainline mainlineRev) (domain.PruneCandidate, string) {
	c := domain.PruneCandidate{Path: wt.Path, Branch: wt.Branch}

	if !wt.HasBranch() {
		c.Reason = domain.SkipNoBranch
		return c, ""
	}
	if mainline.isMainline(wt.Branch) {
		c.Reason = domain.SkipMainline
		return c, ""
	}

	status, err := e.detector.IsIntegrated(ctx, wt.Branch, mainline.rev)
	if err != nil {
		c.Reason = domain.SkipCheckFailed
		return c, fmt.Sprintf("%s: integration check failed: %v", wt.Branch, err)
	}
	c.Integrated = status.Integrated
	c.Method = status.Method

	if !wt.Missing {
		dirty, err := git.IsDirty(ctx, wt.Path)
		if err != nil {
			c.Reason = domain.SkipCheckFailed
			return c, fmt.Sprintf("%s: status check failed: %v", wt.Branch, err)
		}
		c.Dirty = dirty
	}

	switch {
	case !c.Integrated:
		c.Reason = domain.SkipNotIntegrated
	case wt.Locked:
		c.Reason = domain.SkipLocked
	}
	return c, ""
}

// stillDirty re-reads the status of a candidate right before removal.
func (e *Engine) stillDirty(ctx context.Context, c domain.PruneCandidate) bool {
	if !pathExists(c.Path) {
		return false
	}
	dirty, err := git.IsDirty(ctx, c.Path)
	if err != nil {
		return true
	}
	return dirty
}
