package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/testutil"
	"github.com/raphi011/wt-core/internal/worktree"
)

// addManaged creates a worktree for branch at its managed path.
func addManaged(t *testing.T, repo, branch string) string {
	t.Helper()
	b, err := domain.NewBranchName(branch)
	if err != nil {
		t.Fatal(err)
	}
	path := worktree.Path(domain.NewRepoRoot(repo), b)
	testutil.Git(t, repo, "worktree", "add", "--quiet", "-b", branch, path)
	return path
}

func findDiag(diags []Diagnostic, cat Category, level Level) (Diagnostic, bool) {
	for _, d := range diags {
		if d.Category == cat && d.Level == level {
			return d, true
		}
	}
	return Diagnostic{}, false
}

func TestRun_Healthy(t *testing.T) {
	t.Parallel()

	repo, _ := testutil.NewRepoWithOrigin(t)
	addManaged(t, repo, "feature/ok")

	report, err := Run(context.Background(), domain.NewRepoRoot(repo), Options{Remote: "origin"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Diagnostics) != 1 || report.Diagnostics[0].Level != LevelOK {
		t.Fatalf("diagnostics = %+v, want single ok", report.Diagnostics)
	}
	if report.Diagnostics[0].Message != "all worktrees healthy" {
		t.Errorf("message = %q", report.Diagnostics[0].Message)
	}
	if !report.Healthy() {
		t.Error("Healthy() = false")
	}
}

// TestRun_Findings verifies each inconsistency is reported at its level.
//
// Scenario: one worktree deleted from disk, one detached, one locked, one
// stray directory under .worktrees, one worktree in a misnamed directory,
// no origin remote.
// Expected: one diagnostic per problem and nothing is modified.
func TestRun_Findings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := testutil.NewRepo(t)
	root := domain.NewRepoRoot(repo)

	missing := addManaged(t, repo, "missing")
	if err := os.RemoveAll(missing); err != nil {
		t.Fatal(err)
	}

	detached := addManaged(t, repo, "detached")
	testutil.Git(t, detached, "checkout", "--quiet", "--detach")

	locked := addManaged(t, repo, "locked")
	testutil.Git(t, repo, "worktree", "lock", locked)

	stray := filepath.Join(root.WorktreesDir(), "stray")
	if err := os.MkdirAll(stray, 0o755); err != nil {
		t.Fatal(err)
	}

	misnamed := filepath.Join(root.WorktreesDir(), "renamed")
	testutil.Git(t, repo, "worktree", "add", "--quiet", "-b", "original", misnamed)

	before := testutil.Git(t, repo, "worktree", "list", "--porcelain")

	report, err := Run(ctx, root, Options{Remote: "origin"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	checks := []struct {
		cat   Category
		level Level
		want  string
	}{
		{CategoryRegistry, LevelError, "missing on disk"},
		{CategoryOrphan, LevelWarn, "stray"},
		{CategoryBranch, LevelWarn, "does not match branch 'original'"},
		{CategoryRemote, LevelWarn, "remote 'origin'"},
	}
	for _, c := range checks {
		d, ok := findDiag(report.Diagnostics, c.cat, c.level)
		if !ok {
			t.Errorf("no %s %s diagnostic in %+v", c.level, c.cat, report.Diagnostics)
			continue
		}
		if !strings.Contains(d.Message, c.want) {
			t.Errorf("%s message = %q, want it to contain %q", c.cat, d.Message, c.want)
		}
	}

	var sawDetached, sawLocked bool
	for _, d := range report.Diagnostics {
		if d.Category != CategoryRegistry || d.Level != LevelWarn {
			continue
		}
		sawDetached = sawDetached || strings.Contains(d.Message, "detached")
		sawLocked = sawLocked || strings.Contains(d.Message, "locked")
	}
	if !sawDetached || !sawLocked {
		t.Errorf("detached=%v locked=%v in %+v", sawDetached, sawLocked, report.Diagnostics)
	}
	if report.Healthy() || report.Count(LevelError) != 1 {
		t.Errorf("errors = %d, healthy = %v", report.Count(LevelError), report.Healthy())
	}

	if after := testutil.Git(t, repo, "worktree", "list", "--porcelain"); after != before {
		t.Error("doctor modified the worktree registry")
	}
}

func TestRun_DeletedBranch(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	path := addManaged(t, repo, "doomed")
	// an orphan checkout: delete the ref out from under the worktree
	testutil.Git(t, repo, "update-ref", "-d", "refs/heads/doomed")

	report, err := Run(context.Background(), domain.NewRepoRoot(repo), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	d, ok := findDiag(report.Diagnostics, CategoryBranch, LevelError)
	if !ok {
		t.Fatalf("no branch error in %+v", report.Diagnostics)
	}
	if d.Path != path {
		t.Errorf("path = %q, want %q", d.Path, path)
	}
}

func TestRun_UnbornBranch(t *testing.T) {
	t.Parallel()

	repo := filepath.Join(testutil.ResolveTempDir(t), "repo")
	testutil.Git(t, "", "init", "--quiet", "-b", "main", repo)

	report, err := Run(context.Background(), domain.NewRepoRoot(repo), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, d := range report.Diagnostics {
		if d.Category == CategoryBranch {
			t.Errorf("unexpected branch diagnostic on a repo without commits: %+v", d)
		}
	}
}

func TestUnborn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		head string
		want bool
	}{
		{head: "", want: true},
		{head: strings.Repeat("0", 40), want: true},
		{head: strings.Repeat("0", 64), want: true},
		{head: "1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b", want: false},
		{head: "0000000000000000000000000000000000000001", want: false},
	}

	for _, tt := range tests {
		if got := unborn(tt.head); got != tt.want {
			t.Errorf("unborn(%q) = %v, want %v", tt.head, got, tt.want)
		}
	}
}

func TestRun_NoWorktreesDir(t *testing.T) {
	t.Parallel()

	repo, _ := testutil.NewRepoWithOrigin(t)
	report, err := Run(context.Background(), domain.NewRepoRoot(repo), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Healthy() {
		t.Errorf("diagnostics = %+v, want healthy", report.Diagnostics)
	}
}
