package lifecycle

import (
	"context"
	"fmt"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// MergeOptions controls what happens after a successful merge.
type MergeOptions struct {
	Push    bool
	Cleanup bool
}

// Merge merges the target branch into mainline with --no-ff from the main
// worktree. A conflicted merge is always aborted before returning.
func (e *Engine) Merge(ctx context.Context, t Target, opts MergeOptions) (domain.MergeResult, error) {
	l := log.FromContext(ctx)

	wts, err := e.worktrees(ctx)
	if err != nil {
		return domain.MergeResult{}, err
	}

	wt, err := e.resolveTarget(ctx, wts, t, "Merge worktree", alwaysPrompt)
	if err != nil {
		return domain.MergeResult{}, err
	}
	if wt.IsMain {
		return domain.MergeResult{}, apperr.NewInvariant("refusing to merge the main worktree")
	}

	mainline, err := e.resolveMainline(ctx, wts)
	if err != nil {
		return domain.MergeResult{}, apperr.Wrap(apperr.InvariantViolation, err, "cannot resolve mainline: %v", err)
	}
	if wt.Branch == mainline {
		return domain.MergeResult{}, apperr.NewInvariant("refusing to merge mainline '%s' into itself", mainline)
	}

	main, ok := domain.Main(wts)
	if !ok || main.Missing {
		return domain.MergeResult{}, apperr.NewInvariant("main worktree not found")
	}
	if main.Branch != mainline {
		current := main.Branch.String()
		if current == "" {
			current = "(detached)"
		}
		return domain.MergeResult{}, apperr.NewInvariant("main worktree is on '%s', expected '%s'; checkout mainline first", current, mainline)
	}

	dirty, err := git.HasTrackedChanges(ctx, main.Path)
	if err != nil {
		return domain.MergeResult{}, err
	}
	if dirty {
		return domain.MergeResult{}, apperr.NewConflict("main worktree has uncommitted changes; commit or stash them first")
	}

	l.Debug("merging", "branch", wt.Branch, "mainline", mainline)
	if err := git.Merge(ctx, main.Path, wt.Branch); err != nil {
		if !git.MergeInProgress(ctx, main.Path) {
			return domain.MergeResult{}, err
		}
		if abortErr := git.MergeAbort(ctx, main.Path); abortErr != nil {
			return domain.MergeResult{}, apperr.Wrap(apperr.Conflict, err, "merge conflicts with '%s' and merge --abort failed: %v", wt.Branch, abortErr)
		}
		return domain.MergeResult{}, apperr.Wrap(apperr.Conflict, err, "merge conflicts with '%s'; merge aborted, use `git merge` directly to resolve conflicts", wt.Branch)
	}

	res := domain.MergeResult{RepoRoot: e.root, Branch: wt.Branch, Mainline: mainline}

	if opts.Cleanup {
		if err := e.removeWorktree(ctx, wt, false); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("merge succeeded but cleanup failed: %v", err))
		} else {
			res.CleanedUp = true
			res.RemovedPath = wt.Path
			if err := e.deleteMergedBranch(ctx, wt.Branch, mainline); err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("worktree removed but branch deletion failed: %v", err))
			}
		}
	}

	if opts.Push {
		if err := git.Push(ctx, main.Path, e.remote, mainline); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("merge succeeded but push failed: %v", err))
		} else {
			res.Pushed = true
		}
	}

	return res, nil
}

// deleteMergedBranch deletes branch with -d, escalating to -D only when the
// detector confirms the work is in mainline.
func (e *Engine) deleteMergedBranch(ctx context.Context, branch, mainline domain.BranchName) error {
	dir := e.root.String()
	err := git.DeleteBranch(ctx, dir, branch, false)
	if err == nil {
		return nil
	}

	status, detectErr := e.detector.IsIntegrated(ctx, branch, mainline.Ref())
	if detectErr != nil || !status.Integrated {
		return err
	}
	log.FromContext(ctx).Debug("escalating branch delete", "branch", branch, "method", status.Method)
	return git.DeleteBranch(ctx, dir, branch, true)
}
