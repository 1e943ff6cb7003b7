package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/worktree"
)

// checkRegistry reports registrations that are missing on disk, detached
// or locked.
func checkRegistry(wts []domain.Worktree) []Diagnostic {
	var diags []Diagnostic
	for _, wt := range wts {
		if wt.Missing {
			diags = append(diags, Diagnostic{
				Level:    LevelError,
				Category: CategoryRegistry,
				Path:     wt.Path,
				Message:  fmt.Sprintf("registered worktree is missing on disk: %s (git worktree prune removes the registration)", wt.Path),
			})
			continue
		}
		if wt.Detached {
			diags = append(diags, Diagnostic{
				Level:    LevelWarn,
				Category: CategoryRegistry,
				Path:     wt.Path,
				Message:  fmt.Sprintf("worktree has a detached HEAD at %s: %s", wt.ShortHead(), wt.Path),
			})
		}
		if wt.Locked {
			diags = append(diags, Diagnostic{
				Level:    LevelWarn,
				Category: CategoryRegistry,
				Path:     wt.Path,
				Message:  fmt.Sprintf("worktree is locked: %s", wt.Path),
			})
		}
	}
	return diags
}

// unborn reports whether head is empty or the all-zero id git lists for a
// branch without commits.
func unborn(head string) bool {
	return strings.Trim(head, "0") == ""
}

// checkBranches reports worktrees whose branch ref is gone and managed
// directories whose name does not match their branch.
func checkBranches(ctx context.Context, insp *inspector, root domain.RepoRoot, wts []domain.Worktree) []Diagnostic {
	var diags []Diagnostic
	for _, wt := range wts {
		if !wt.HasBranch() {
			continue
		}
		if !insp.branchExists(ctx, wt.Branch) && !unborn(wt.Head) {
			diags = append(diags, Diagnostic{
				Level:    LevelError,
				Category: CategoryBranch,
				Path:     wt.Path,
				Message:  fmt.Sprintf("branch '%s' no longer exists but is checked out in %s", wt.Branch, wt.Path),
			})
			continue
		}
		if wt.IsMain || wt.Missing || !worktree.IsManagedPath(root, wt.Path) {
			continue
		}
		if want := worktree.DirName(wt.Branch); filepath.Base(wt.Path) != want {
			diags = append(diags, Diagnostic{
				Level:    LevelWarn,
				Category: CategoryBranch,
				Path:     wt.Path,
				Message:  fmt.Sprintf("directory name does not match branch '%s' (expected %s)", wt.Branch, want),
			})
		}
	}
	return diags
}

// checkOrphans reports directories under .worktrees that git does not
// know about. A missing .worktrees directory is not a problem.
func checkOrphans(root domain.RepoRoot, wts []domain.Worktree) ([]Diagnostic, error) {
	entries, err := os.ReadDir(root.WorktreesDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	registered := make(map[string]bool, len(wts))
	for _, wt := range wts {
		registered[domain.Canonicalize(wt.Path)] = true
	}

	var orphans []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := domain.Canonicalize(filepath.Join(root.WorktreesDir(), e.Name()))
		if !registered[path] {
			orphans = append(orphans, path)
		}
	}
	sort.Strings(orphans)

	diags := make([]Diagnostic, 0, len(orphans))
	for _, path := range orphans {
		diags = append(diags, Diagnostic{
			Level:    LevelWarn,
			Category: CategoryOrphan,
			Path:     path,
			Message:  fmt.Sprintf("directory is not a registered worktree: %s", path),
		})
	}
	return diags, nil
}

// checkRemote warns when the default remote is not configured.
func checkRemote(ctx context.Context, insp *inspector, remote string) []Diagnostic {
	if insp.hasRemote(ctx, remote) {
		return nil
	}
	return []Diagnostic{{
		Level:    LevelWarn,
		Category: CategoryRemote,
		Message:  fmt.Sprintf("remote '%s' is not configured; mainline detection falls back to local branches", remote),
	}}
}
