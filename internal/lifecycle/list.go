package lifecycle

import (
	"context"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// List returns every registered worktree, main first, with dirty status
// and the current-worktree mark filled in.
func (e *Engine) List(ctx context.Context) (domain.ListResult, error) {
	l := log.FromContext(ctx)

	wts, err := e.worktrees(ctx)
	if err != nil {
		return domain.ListResult{}, err
	}

	for i := range wts {
		if wts[i].Missing {
			continue
		}
		dirty, err := git.IsDirty(ctx, wts[i].Path)
		if err != nil {
			l.Debug("dirty check failed", "path", wts[i].Path, "err", err)
			continue
		}
		wts[i].Dirty = dirty
	}

	if cur, ok, _ := currentWorktree(wts, e.cwd); ok {
		for i := range wts {
			if wts[i].Path == cur.Path {
				wts[i].IsCurrent = true
			}
		}
	}

	return domain.ListResult{RepoRoot: e.root, Worktrees: wts}, nil
}

// Go resolves the worktree to navigate to.
func (e *Engine) Go(ctx context.Context, t Target) (domain.GoResult, error) {
	wts, err := e.worktrees(ctx)
	if err != nil {
		return domain.GoResult{}, err
	}

	wt, err := e.resolveTarget(ctx, wts, t, "Go to worktree", autoSelect)
	if err != nil {
		return domain.GoResult{}, err
	}
	if wt.Missing {
		return domain.GoResult{}, apperr.NewConflict("worktree for '%s' is registered but missing on disk: %s (run `wt-core doctor`)", wt.Branch, wt.Path)
	}

	return domain.GoResult{RepoRoot: e.root, WorktreePath: wt.Path, Branch: wt.Branch}, nil
}
