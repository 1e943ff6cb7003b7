package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// WorktreesDirName is the directory under the repository root that holds
// managed worktrees.
const WorktreesDirName = ".worktrees"

// RepoRoot is the canonical absolute path of a repository's main working copy.
type RepoRoot string

// NewRepoRoot canonicalizes path into a RepoRoot.
func NewRepoRoot(path string) RepoRoot {
	return RepoRoot(Canonicalize(path))
}

func (r RepoRoot) String() string {
	return string(r)
}

// WorktreesDir returns {root}/.worktrees.
func (r RepoRoot) WorktreesDir() string {
	return filepath.Join(string(r), WorktreesDirName)
}

// Canonicalize returns the absolute, symlink-resolved form of path.
// Paths that do not exist (yet) are resolved through their nearest existing
// ancestor so comparisons stay consistent before and after creation.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	var missing []string
	dir := abs
	for {
		parent := filepath.Dir(dir)
		missing = append([]string{filepath.Base(dir)}, missing...)
		if parent == dir {
			return abs
		}
		dir = parent
		if _, err := os.Lstat(dir); err == nil {
			if resolved, err := filepath.EvalSymlinks(dir); err == nil {
				return filepath.Join(append([]string{resolved}, missing...)...)
			}
			return abs
		}
	}
}

// IsWithin reports whether path equals dir or lies below it.
// Both arguments must already be canonical.
func IsWithin(path, dir string) bool {
	if path == dir {
		return true
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
