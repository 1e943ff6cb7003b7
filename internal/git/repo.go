package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
)

// ResolveRepoRoot returns the main working copy of the repository that
// contains start. Inside a linked worktree this is still the main root,
// derived from the common git directory.
func ResolveRepoRoot(ctx context.Context, start string) (domain.RepoRoot, error) {
	start = domain.Canonicalize(start)
	if info, err := os.Stat(start); err != nil || !info.IsDir() {
		return "", apperr.NewNotARepo("not a git repository: %s", start)
	}

	top, err := Run(ctx, start, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", apperr.Wrap(apperr.NotARepository, err, "not a git repository: %s", start)
	}

	common, err := Run(ctx, start, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", apperr.Wrap(apperr.NotARepository, err, "not a git repository: %s", start)
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(start, common)
	}
	common = domain.Canonicalize(common)

	// Submodules and separate git dirs keep their metadata elsewhere; the
	// show-toplevel answer is the only meaningful root there.
	if filepath.Base(common) != ".git" {
		return domain.NewRepoRoot(top), nil
	}
	return domain.NewRepoRoot(filepath.Dir(common)), nil
}

// BranchExists reports whether refs/heads/<branch> exists.
func BranchExists(ctx context.Context, dir string, branch domain.BranchName) bool {
	return Succeeds(ctx, dir, "show-ref", "--verify", "--quiet", branch.Ref())
}

// RemoteBranchExists reports whether refs/remotes/<remote>/<branch> exists.
func RemoteBranchExists(ctx context.Context, dir, remote string, branch domain.BranchName) bool {
	return Succeeds(ctx, dir, "show-ref", "--verify", "--quiet", "refs/remotes/"+remote+"/"+branch.String())
}

// RevisionExists reports whether rev resolves to a commit.
func RevisionExists(ctx context.Context, dir, rev string) bool {
	return Succeeds(ctx, dir, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
}

// HasRemote reports whether the named remote is configured.
func HasRemote(ctx context.Context, dir, remote string) bool {
	return Succeeds(ctx, dir, "remote", "get-url", remote)
}

// RemoteHead returns the branch the remote's HEAD points at, if known.
func RemoteHead(ctx context.Context, dir, remote string) (domain.BranchName, bool) {
	out, err := Run(ctx, dir, "symbolic-ref", "--quiet", "--short", "refs/remotes/"+remote+"/HEAD")
	if err != nil {
		return domain.BranchName{}, false
	}
	return domain.BranchFromRef(strings.TrimPrefix(out, remote+"/"))
}

// CurrentBranch returns the branch checked out in dir.
// The zero BranchName means detached HEAD.
func CurrentBranch(ctx context.Context, dir string) (domain.BranchName, error) {
	out, err := Run(ctx, dir, "branch", "--show-current")
	if err != nil {
		return domain.BranchName{}, err
	}
	b, _ := domain.BranchFromRef(out)
	return b, nil
}

// IsDirty reports whether dir has staged, unstaged or untracked changes.
func IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := Run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// HasTrackedChanges reports whether dir has staged or unstaged changes to
// tracked files. Untracked files are ignored.
func HasTrackedChanges(ctx context.Context, dir string) (bool, error) {
	out, err := Run(ctx, dir, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// DeleteBranch deletes a local branch with -d, or -D when force is set.
func DeleteBranch(ctx context.Context, dir string, branch domain.BranchName, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := Run(ctx, dir, "branch", flag, branch.String())
	return err
}

// SetUpstream configures upstream as the tracking ref of branch.
func SetUpstream(ctx context.Context, dir string, branch domain.BranchName, upstream string) error {
	_, err := Run(ctx, dir, "branch", "--set-upstream-to="+upstream, branch.String())
	return err
}

// Merge performs a non-fast-forward merge of branch into the branch checked
// out in dir.
func Merge(ctx context.Context, dir string, branch domain.BranchName) error {
	_, err := Run(ctx, dir, "merge", "--no-ff", "--no-edit", branch.String())
	return err
}

// MergeAbort restores the pre-merge state of dir.
func MergeAbort(ctx context.Context, dir string) error {
	_, err := Run(ctx, dir, "merge", "--abort")
	return err
}

// MergeInProgress reports whether dir has an unfinished merge.
func MergeInProgress(ctx context.Context, dir string) bool {
	return Succeeds(ctx, dir, "rev-parse", "--quiet", "--verify", "MERGE_HEAD")
}

// Push pushes branch to remote.
func Push(ctx context.Context, dir, remote string, branch domain.BranchName) error {
	_, err := Run(ctx, dir, "push", remote, branch.String())
	return err
}

// IsAncestor reports whether ancestor is reachable from descendant.
func IsAncestor(ctx context.Context, dir, ancestor, descendant string) bool {
	return Succeeds(ctx, dir, "merge-base", "--is-ancestor", ancestor, descendant)
}

// Cherry returns the lines of git cherry <upstream> <head>: one per commit
// unique to head, prefixed "-" when an equivalent patch exists in upstream
// and "+" otherwise.
func Cherry(ctx context.Context, dir, upstream, head string) ([]string, error) {
	out, err := Run(ctx, dir, "cherry", upstream, head)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// DefaultBranch resolves the mainline branch: the remote's HEAD, then a
// local main, then master, then fallback (normally the main worktree's
// branch).
func DefaultBranch(ctx context.Context, dir, remote string, fallback domain.BranchName) (domain.BranchName, error) {
	if b, ok := RemoteHead(ctx, dir, remote); ok {
		return b, nil
	}
	for _, name := range []string{"main", "master"} {
		b, _ := domain.BranchFromRef(name)
		if BranchExists(ctx, dir, b) {
			return b, nil
		}
	}
	if !fallback.IsZero() {
		return fallback, nil
	}
	return domain.BranchName{}, apperr.NewGit("could not determine mainline branch; use --mainline to specify")
}
