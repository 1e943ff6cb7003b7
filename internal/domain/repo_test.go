package domain

import (
	"os"
	"path/filepath"
	"testing"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	dir := tempDir(t)
	real := filepath.Join(dir, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"existing", real, real},
		{"symlink", link, real},
		{"dot segments", filepath.Join(real, "..", "real"), real},
		{"missing below symlink", filepath.Join(link, "a", "b"), filepath.Join(real, "a", "b")},
	}

	for _, tt := range tests {
		if got := Canonicalize(tt.in); got != tt.want {
			t.Errorf("%s: Canonicalize(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/repo", "/repo", true},
		{"/repo/src", "/repo", true},
		{"/repo/.worktrees/x/src", "/repo/.worktrees/x", true},
		{"/repo2", "/repo", false},
		{"/", "/repo", false},
		{"/repo/..x", "/repo", true},
	}

	for _, tt := range tests {
		if got := IsWithin(tt.path, tt.dir); got != tt.want {
			t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}

func TestRepoRoot_WorktreesDir(t *testing.T) {
	t.Parallel()

	if got := RepoRoot("/repo").WorktreesDir(); got != "/repo/.worktrees" {
		t.Errorf("WorktreesDir() = %q", got)
	}
}
