package doctor

import (
	"context"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// inspector answers ref and remote questions read-only. It uses go-git
// when the repository opens and falls back to the git CLI otherwise
// (extensions go-git does not understand, for example).
type inspector struct {
	root domain.RepoRoot
	repo *gogit.Repository
}

func newInspector(ctx context.Context, root domain.RepoRoot) *inspector {
	repo, err := gogit.PlainOpenWithOptions(root.String(), &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		log.FromContext(ctx).Debug("go-git open failed, using git cli", "repo", root, "err", err)
		return &inspector{root: root}
	}
	return &inspector{root: root, repo: repo}
}

func (i *inspector) branchExists(ctx context.Context, branch domain.BranchName) bool {
	if i.repo == nil {
		return git.BranchExists(ctx, i.root.String(), branch)
	}
	_, err := i.repo.Reference(plumbing.NewBranchReferenceName(branch.String()), true)
	return err == nil
}

func (i *inspector) hasRemote(ctx context.Context, name string) bool {
	if i.repo == nil {
		return git.HasRemote(ctx, i.root.String(), name)
	}
	_, err := i.repo.Remote(name)
	return err == nil
}
