package git

import (
	"context"
	"os"
	"strings"

	"github.com/raphi011/wt-core/internal/domain"
)

// ListWorktrees returns every worktree registered with the repository,
// main first. Dirty and current flags are left for the caller.
func ListWorktrees(ctx context.Context, root domain.RepoRoot) ([]domain.Worktree, error) {
	out, err := Run(ctx, root.String(), "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}

	worktrees := ParsePorcelain(out)
	for i := range worktrees {
		if _, err := os.Stat(worktrees[i].Path); err != nil {
			worktrees[i].Missing = true
		} else {
			worktrees[i].Path = domain.Canonicalize(worktrees[i].Path)
		}
	}
	return worktrees, nil
}

// ParsePorcelain parses git worktree list --porcelain output.
// Bare entries are skipped; the first listed entry is the main worktree.
func ParsePorcelain(out string) []domain.Worktree {
	var worktrees []domain.Worktree
	index := 0

	for _, block := range strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		var wt domain.Worktree
		bare := false
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "worktree "):
				wt.Path = strings.TrimPrefix(line, "worktree ")
			case strings.HasPrefix(line, "HEAD "):
				wt.Head = strings.TrimPrefix(line, "HEAD ")
			case strings.HasPrefix(line, "branch "):
				wt.Branch, _ = domain.BranchFromRef(strings.TrimPrefix(line, "branch "))
			case line == "detached":
				wt.Detached = true
			case line == "bare":
				bare = true
			case line == "locked" || strings.HasPrefix(line, "locked "):
				wt.Locked = true
			case line == "prunable" || strings.HasPrefix(line, "prunable "):
				wt.Prunable = true
			}
		}

		if wt.Path != "" && !bare {
			wt.IsMain = index == 0
			worktrees = append(worktrees, wt)
		}
		if wt.Path != "" {
			index++
		}
	}
	return worktrees
}

// AddWorktree creates branch at startPoint and checks it out at path, in a
// single git invocation.
func AddWorktree(ctx context.Context, root domain.RepoRoot, path string, branch domain.BranchName, startPoint string) error {
	_, err := Run(ctx, root.String(), "worktree", "add", "-b", branch.String(), path, startPoint)
	return err
}

// RemoveWorktree unregisters the worktree at path and deletes its directory.
func RemoveWorktree(ctx context.Context, root domain.RepoRoot, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	_, err := Run(ctx, root.String(), args...)
	return err
}
