package lifecycle

import (
	"context"
	"fmt"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// Remove deletes a worktree and then its branch. The main worktree is
// never removed, force or not.
func (e *Engine) Remove(ctx context.Context, t Target, force bool) (domain.RemoveResult, error) {
	wts, err := e.worktrees(ctx)
	if err != nil {
		return domain.RemoveResult{}, err
	}

	wt, err := e.resolveTarget(ctx, wts, t, "Remove worktree", alwaysPrompt)
	if err != nil {
		return domain.RemoveResult{}, err
	}
	if wt.IsMain {
		return domain.RemoveResult{}, apperr.NewInvariant("refusing to remove the main worktree")
	}

	res := domain.RemoveResult{RepoRoot: e.root, RemovedPath: wt.Path, Branch: wt.Branch}
	if err := e.removeWorktree(ctx, wt, force); err != nil {
		return domain.RemoveResult{}, err
	}

	if wt.HasBranch() {
		if err := git.DeleteBranch(ctx, e.root.String(), wt.Branch, force); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("worktree removed but branch deletion failed: %v", err))
		} else {
			res.BranchDeleted = true
		}
	}
	return res, nil
}

// removeWorktree re-checks dirty status right before removing wt.
func (e *Engine) removeWorktree(ctx context.Context, wt domain.Worktree, force bool) error {
	if !force && !wt.Missing {
		dirty, err := git.IsDirty(ctx, wt.Path)
		if err != nil {
			return err
		}
		if dirty {
			return apperr.NewConflict("worktree has uncommitted changes: %s (use --force to remove anyway)", wt.Path)
		}
	}

	log.FromContext(ctx).Debug("removing worktree", "path", wt.Path, "force", force)
	return git.RemoveWorktree(ctx, e.root, wt.Path, force || wt.Missing)
}
