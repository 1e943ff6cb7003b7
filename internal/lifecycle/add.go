package lifecycle

import (
	"context"
	"os"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/worktree"
)

// excludePattern keeps managed worktrees out of the main worktree's status.
const excludePattern = "/" + domain.WorktreesDirName + "/"

// Add creates branch together with its worktree. With an empty base the
// branch tracks <remote>/<branch> when that exists, and starts from the
// current worktree's HEAD otherwise.
func (e *Engine) Add(ctx context.Context, branch domain.BranchName, base string) (domain.AddResult, error) {
	l := log.FromContext(ctx)
	dir := e.root.String()

	if git.BranchExists(ctx, dir, branch) {
		return domain.AddResult{}, apperr.NewConflict("branch '%s' already exists", branch)
	}
	if base != "" && !git.RevisionExists(ctx, dir, base) {
		return domain.AddResult{}, apperr.NewGit("revision '%s' not found", base)
	}

	path := worktree.Path(e.root, branch)
	if pathExists(path) {
		return domain.AddResult{}, apperr.NewConflict("worktree directory already exists: %s", path)
	}

	var tracking string
	startPoint := base
	if startPoint == "" {
		if git.RemoteBranchExists(ctx, dir, e.remote, branch) {
			tracking = e.remote + "/" + branch.String()
			startPoint = "refs/remotes/" + tracking
		} else {
			startPoint = e.currentHead(ctx)
		}
	}

	if err := os.MkdirAll(e.root.WorktreesDir(), 0o755); err != nil {
		return domain.AddResult{}, apperr.Wrap(apperr.GitFailure, err, "create %s: %v", e.root.WorktreesDir(), err)
	}
	if err := git.EnsureExcluded(ctx, e.root, excludePattern); err != nil {
		l.Warnf("could not add %s to info/exclude: %v", excludePattern, err)
	}

	l.Debug("adding worktree", "branch", branch, "path", path, "start", startPoint)
	if err := git.AddWorktree(ctx, e.root, path, branch, startPoint); err != nil {
		// git creates the branch before checking out; neither existed before
		e.rollbackAdd(ctx, path, branch)
		return domain.AddResult{}, err
	}

	if tracking != "" {
		if err := git.SetUpstream(ctx, dir, branch, tracking); err != nil {
			e.rollbackAdd(ctx, path, branch)
			return domain.AddResult{}, err
		}
	}

	return domain.AddResult{
		RepoRoot:     e.root,
		WorktreePath: domain.Canonicalize(path),
		Branch:       branch,
		Tracking:     tracking,
	}, nil
}

// currentHead returns the commit checked out in the worktree containing
// cwd, falling back to the main worktree's HEAD.
func (e *Engine) currentHead(ctx context.Context) string {
	wts, err := e.worktrees(ctx)
	if err != nil {
		return "HEAD"
	}
	if wt, ok, _ := currentWorktree(wts, e.cwd); ok && wt.Head != "" {
		return wt.Head
	}
	return "HEAD"
}

// rollbackAdd undoes whatever part of a worktree creation happened. Add
// refuses existing branches and paths, so both are safe to remove.
func (e *Engine) rollbackAdd(ctx context.Context, path string, branch domain.BranchName) {
	l := log.FromContext(ctx)
	dir := e.root.String()
	if pathExists(path) {
		if err := git.RemoveWorktree(ctx, e.root, path, true); err != nil {
			l.Warnf("rollback: could not remove worktree %s: %v", path, err)
			if err := os.RemoveAll(path); err != nil {
				l.Warnf("rollback: could not delete %s: %v", path, err)
			}
		}
	}
	if git.BranchExists(ctx, dir, branch) {
		if err := git.DeleteBranch(ctx, dir, branch, true); err != nil {
			l.Warnf("rollback: could not delete branch %s: %v", branch, err)
		}
	}
}
