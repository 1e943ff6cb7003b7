// Package worktree derives collision-safe worktree directories from branch
// names.
//
// A branch maps to {root}/.worktrees/{slug}--{hash}, where slug is a
// readable, filesystem-safe rendering of the name and hash is 8 hex digits
// of FNV-1a over the full original name. Branches whose slugs collide
// (feature/a-b and feature-a/b) still get distinct directories.
package worktree

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"

	"github.com/raphi011/wt-core/internal/domain"
)

// emptySlug replaces slugs that sanitize to nothing.
const emptySlug = "branch"

// Slugify lowercases ASCII letters and digits and collapses every run of
// other characters into a single '-', trimming dashes at both ends.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		default:
			pendingDash = true
			continue
		}
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return emptySlug
	}
	return b.String()
}

// Hash returns the 8 hex digit disambiguator for name.
func Hash(name string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return fmt.Sprintf("%08x", uint32(h.Sum64()))
}

// DirName returns the worktree directory name for branch.
func DirName(branch domain.BranchName) string {
	name := branch.String()
	return Slugify(name) + "--" + Hash(name)
}

// Path returns the worktree path for branch under root.
func Path(root domain.RepoRoot, branch domain.BranchName) string {
	return filepath.Join(root.WorktreesDir(), DirName(branch))
}

// IsManagedPath reports whether path lies inside root's .worktrees
// directory.
func IsManagedPath(root domain.RepoRoot, path string) bool {
	return filepath.Dir(path) == root.WorktreesDir()
}
