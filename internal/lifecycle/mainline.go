package lifecycle

import (
	"context"
	"slices"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// resolveMainline picks the branch work is merged into: the configured
// mainline, then the remote HEAD, main, master and finally the main
// worktree's branch. The result always exists locally.
func (e *Engine) resolveMainline(ctx context.Context, wts []domain.Worktree) (domain.BranchName, error) {
	dir := e.root.String()

	if !e.mainline.IsZero() {
		if !git.BranchExists(ctx, dir, e.mainline) {
			return domain.BranchName{}, apperr.NewGit("configured mainline branch '%s' does not exist", e.mainline)
		}
		return e.mainline, nil
	}

	var fallback domain.BranchName
	if main, ok := domain.Main(wts); ok {
		fallback = main.Branch
	}
	mainline, err := git.DefaultBranch(ctx, dir, e.remote, fallback)
	if err != nil {
		return domain.BranchName{}, err
	}
	if !git.BranchExists(ctx, dir, mainline) {
		return domain.BranchName{}, apperr.NewGit("mainline branch '%s' has no local branch", mainline)
	}

	log.FromContext(ctx).Debug("resolved mainline", "branch", mainline, "remote", e.remote)
	return mainline, nil
}

// mainlineRev is the revision prune checks candidates against.
type mainlineRev struct {
	rev  string
	name string
	// branches are local branches that are mainline itself and are never
	// pruned.
	branches []domain.BranchName
}

func (m mainlineRev) isMainline(b domain.BranchName) bool {
	return slices.Contains(m.branches, b)
}

// resolvePruneMainline resolves an override revision such as origin/main or
// falls back to resolveMainline. With an override the auto-detected
// mainline branch stays protected when it can be resolved.
func (e *Engine) resolvePruneMainline(ctx context.Context, override string, wts []domain.Worktree) (mainlineRev, error) {
	if override == "" {
		b, err := e.resolveMainline(ctx, wts)
		if err != nil {
			return mainlineRev{}, err
		}
		return mainlineRev{rev: b.Ref(), name: b.String(), branches: []domain.BranchName{b}}, nil
	}

	dir := e.root.String()
	m := mainlineRev{rev: override, name: override}
	if b, err := domain.NewBranchName(override); err == nil && git.BranchExists(ctx, dir, b) {
		m.rev = b.Ref()
		m.branches = append(m.branches, b)
	} else if !git.RevisionExists(ctx, dir, override) {
		return mainlineRev{}, apperr.NewUsage("mainline '%s' does not resolve to a commit", override)
	}
	if b, err := e.resolveMainline(ctx, wts); err == nil && !m.isMainline(b) {
		m.branches = append(m.branches, b)
	}

	log.FromContext(ctx).Debug("resolved mainline override", "rev", m.rev, "protected", m.branches)
	return m, nil
}
