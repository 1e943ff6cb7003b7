package git

import (
	"context"
	"os/exec"

	"github.com/raphi011/wt-core/internal/apperr"
)

// ErrGitNotFound indicates git is not installed or not in PATH.
var ErrGitNotFound = apperr.NewGit("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsInsideRepoPath returns true if the given path is inside a git work tree.
func IsInsideRepoPath(ctx context.Context, path string) bool {
	return Succeeds(ctx, path, "rev-parse", "--is-inside-work-tree")
}
