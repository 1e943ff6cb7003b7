// Package testutil creates throwaway git repositories for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// ResolveTempDir creates a temp directory and resolves macOS symlinks.
func ResolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// Git runs git in dir and returns trimmed stdout, failing the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := TryGit(dir, args...)
	if err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// TryGit runs git in dir and returns trimmed stdout and any error, with
// stderr folded into the error text.
func TryGit(dir string, args ...string) (string, error) {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	c := exec.Command("git", args...)
	c.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	out, err := c.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", &gitError{args: args, stderr: strings.TrimSpace(string(exitErr.Stderr))}
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

type gitError struct {
	args   []string
	stderr string
}

func (e *gitError) Error() string {
	return "git " + strings.Join(e.args, " ") + ": " + e.stderr
}

// configure sets git user config and disables GPG signing.
func configure(t *testing.T, repoPath string) {
	t.Helper()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		Git(t, repoPath, args...)
	}
}

// NewRepo creates a git repo on branch main with one commit.
// Returns the resolved repo path.
func NewRepo(t *testing.T) string {
	t.Helper()
	repoPath := filepath.Join(ResolveTempDir(t), "repo")

	Git(t, "", "init", "-b", "main", repoPath)
	configure(t, repoPath)
	CommitFile(t, repoPath, "README.md", "# test\n", "Initial commit")
	return repoPath
}

// NewRepoWithOrigin creates a repo whose origin is a local bare clone, with
// main pushed and origin/HEAD set. Returns (repoPath, originPath).
func NewRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := ResolveTempDir(t)
	originPath := filepath.Join(tmpDir, "origin.git")
	repoPath := filepath.Join(tmpDir, "repo")

	Git(t, "", "init", "--bare", "-b", "main", originPath)
	Git(t, "", "clone", "--quiet", originPath, repoPath)
	configure(t, repoPath)
	Git(t, repoPath, "symbolic-ref", "HEAD", "refs/heads/main")
	CommitFile(t, repoPath, "README.md", "# test\n", "Initial commit")
	Git(t, repoPath, "push", "--quiet", "-u", "origin", "main")
	Git(t, repoPath, "remote", "set-head", "origin", "main")
	return repoPath, originPath
}

// CommitFile writes content to name inside dir and commits it.
func CommitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()
	WriteFile(t, dir, name, content)
	Git(t, dir, "add", name)
	Git(t, dir, "commit", "--quiet", "-m", msg)
}

// WriteFile writes content to name inside dir, creating parents.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// LocalBranches returns the repo's local branch names.
func LocalBranches(t *testing.T, dir string) []string {
	t.Helper()
	out := Git(t, dir, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
