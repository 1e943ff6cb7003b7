package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/testutil"
)

func branch(t *testing.T, name string) domain.BranchName {
	t.Helper()
	b, err := domain.NewBranchName(name)
	if err != nil {
		t.Fatalf("NewBranchName(%q): %v", name, err)
	}
	return b
}

func TestResolveRepoRoot(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()

	subdir := filepath.Join(repo, "a", "b")
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		t.Fatal(err)
	}
	wtPath := filepath.Join(filepath.Dir(repo), "linked")
	testutil.Git(t, repo, "worktree", "add", "-b", "linked", wtPath)

	tests := []struct {
		name  string
		start string
	}{
		{"root", repo},
		{"subdirectory", subdir},
		{"linked worktree", wtPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root, err := ResolveRepoRoot(ctx, tt.start)
			if err != nil {
				t.Fatalf("ResolveRepoRoot(%s) = %v", tt.start, err)
			}
			if root.String() != repo {
				t.Errorf("ResolveRepoRoot(%s) = %s, want %s", tt.start, root, repo)
			}
		})
	}
}

func TestResolveRepoRoot_Symlink(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	link := filepath.Join(testutil.ResolveTempDir(t), "link")
	if err := os.Symlink(repo, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	root, err := ResolveRepoRoot(context.Background(), link)
	if err != nil {
		t.Fatalf("ResolveRepoRoot() = %v", err)
	}
	if root.String() != repo {
		t.Errorf("ResolveRepoRoot(link) = %s, want %s", root, repo)
	}
}

func TestResolveRepoRoot_NotARepo(t *testing.T) {
	t.Parallel()

	dir := testutil.ResolveTempDir(t)
	ctx := context.Background()

	for _, start := range []string{dir, filepath.Join(dir, "missing")} {
		_, err := ResolveRepoRoot(ctx, start)
		if !apperr.Is(err, apperr.NotARepository) {
			t.Errorf("ResolveRepoRoot(%s) = %v, want NotARepository", start, err)
		}
		if apperr.ExitCode(err) != 3 {
			t.Errorf("exit code = %d, want 3", apperr.ExitCode(err))
		}
	}
}

func TestBranchExists(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()
	testutil.Git(t, repo, "branch", "feature/x")

	if !BranchExists(ctx, repo, branch(t, "main")) {
		t.Error("BranchExists(main) = false")
	}
	if !BranchExists(ctx, repo, branch(t, "feature/x")) {
		t.Error("BranchExists(feature/x) = false")
	}
	if BranchExists(ctx, repo, branch(t, "feature")) {
		t.Error("BranchExists(feature) = true, want false")
	}
}

func TestRemoteBranchExistsAndHead(t *testing.T) {
	t.Parallel()

	repo, _ := testutil.NewRepoWithOrigin(t)
	ctx := context.Background()

	if !RemoteBranchExists(ctx, repo, "origin", branch(t, "main")) {
		t.Error("RemoteBranchExists(origin/main) = false")
	}
	if RemoteBranchExists(ctx, repo, "origin", branch(t, "nope")) {
		t.Error("RemoteBranchExists(origin/nope) = true")
	}
	if !HasRemote(ctx, repo, "origin") {
		t.Error("HasRemote(origin) = false")
	}
	if HasRemote(ctx, repo, "upstream") {
		t.Error("HasRemote(upstream) = true")
	}

	head, ok := RemoteHead(ctx, repo, "origin")
	if !ok || head.String() != "main" {
		t.Errorf("RemoteHead() = %q, %v, want main, true", head, ok)
	}
}

func TestRevisionExists(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()

	for rev, want := range map[string]bool{
		"HEAD":    true,
		"main":    true,
		"HEAD~1":  false,
		"nothing": false,
	} {
		if got := RevisionExists(ctx, repo, rev); got != want {
			t.Errorf("RevisionExists(%s) = %v, want %v", rev, got, want)
		}
	}
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()

	b, err := CurrentBranch(ctx, repo)
	if err != nil {
		t.Fatalf("CurrentBranch() = %v", err)
	}
	if b.String() != "main" {
		t.Errorf("CurrentBranch() = %q, want main", b)
	}

	testutil.Git(t, repo, "checkout", "--quiet", "--detach")
	b, err = CurrentBranch(ctx, repo)
	if err != nil {
		t.Fatalf("CurrentBranch() detached = %v", err)
	}
	if !b.IsZero() {
		t.Errorf("CurrentBranch() detached = %q, want zero", b)
	}
}

func TestIsDirty(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()

	dirty, err := IsDirty(ctx, repo)
	if err != nil || dirty {
		t.Fatalf("IsDirty() clean = %v, %v", dirty, err)
	}

	testutil.WriteFile(t, repo, "untracked.txt", "x")
	dirty, err = IsDirty(ctx, repo)
	if err != nil || !dirty {
		t.Errorf("IsDirty() with untracked file = %v, %v, want true", dirty, err)
	}
	tracked, err := HasTrackedChanges(ctx, repo)
	if err != nil || tracked {
		t.Errorf("HasTrackedChanges() with untracked file = %v, %v, want false", tracked, err)
	}

	testutil.WriteFile(t, repo, "README.md", "changed\n")
	tracked, err = HasTrackedChanges(ctx, repo)
	if err != nil || !tracked {
		t.Errorf("HasTrackedChanges() with modified file = %v, %v, want true", tracked, err)
	}
}

func TestDeleteBranch(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()

	testutil.Git(t, repo, "checkout", "--quiet", "-b", "unmerged")
	testutil.CommitFile(t, repo, "u.txt", "u", "unmerged work")
	testutil.Git(t, repo, "checkout", "--quiet", "main")

	err := DeleteBranch(ctx, repo, branch(t, "unmerged"), false)
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("DeleteBranch(-d) = %v, want Conflict", err)
	}
	if err := DeleteBranch(ctx, repo, branch(t, "unmerged"), true); err != nil {
		t.Fatalf("DeleteBranch(-D) = %v", err)
	}
	if BranchExists(ctx, repo, branch(t, "unmerged")) {
		t.Error("branch still exists after -D")
	}
}

func TestDefaultBranch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("remote head", func(t *testing.T) {
		t.Parallel()
		repo, _ := testutil.NewRepoWithOrigin(t)
		testutil.Git(t, repo, "branch", "-m", "main", "trunk")
		testutil.Git(t, repo, "push", "--quiet", "origin", "trunk")
		testutil.Git(t, repo, "remote", "set-head", "origin", "trunk")

		got, err := DefaultBranch(ctx, repo, "origin", domain.BranchName{})
		if err != nil || got.String() != "trunk" {
			t.Errorf("DefaultBranch() = %q, %v, want trunk", got, err)
		}
	})

	t.Run("local main", func(t *testing.T) {
		t.Parallel()
		repo := testutil.NewRepo(t)
		got, err := DefaultBranch(ctx, repo, "origin", domain.BranchName{})
		if err != nil || got.String() != "main" {
			t.Errorf("DefaultBranch() = %q, %v, want main", got, err)
		}
	})

	t.Run("local master", func(t *testing.T) {
		t.Parallel()
		repo := testutil.NewRepo(t)
		testutil.Git(t, repo, "branch", "-m", "main", "master")
		got, err := DefaultBranch(ctx, repo, "origin", domain.BranchName{})
		if err != nil || got.String() != "master" {
			t.Errorf("DefaultBranch() = %q, %v, want master", got, err)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		t.Parallel()
		repo := testutil.NewRepo(t)
		testutil.Git(t, repo, "branch", "-m", "main", "develop")
		got, err := DefaultBranch(ctx, repo, "origin", branch(t, "develop"))
		if err != nil || got.String() != "develop" {
			t.Errorf("DefaultBranch() = %q, %v, want develop", got, err)
		}
	})

	t.Run("unresolvable", func(t *testing.T) {
		t.Parallel()
		repo := testutil.NewRepo(t)
		testutil.Git(t, repo, "branch", "-m", "main", "develop")
		_, err := DefaultBranch(ctx, repo, "origin", domain.BranchName{})
		if !apperr.Is(err, apperr.GitFailure) {
			t.Errorf("DefaultBranch() = %v, want GitFailure", err)
		}
	})
}

func TestMergeAndAbort(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()

	testutil.Git(t, repo, "checkout", "--quiet", "-b", "side")
	testutil.CommitFile(t, repo, "README.md", "side\n", "side change")
	testutil.Git(t, repo, "checkout", "--quiet", "main")
	testutil.CommitFile(t, repo, "README.md", "main\n", "main change")

	err := Merge(ctx, repo, branch(t, "side"))
	if err == nil {
		t.Fatal("Merge() = nil, want conflict")
	}
	if !MergeInProgress(ctx, repo) {
		t.Fatal("MergeInProgress() = false after conflicting merge")
	}
	if err := MergeAbort(ctx, repo); err != nil {
		t.Fatalf("MergeAbort() = %v", err)
	}
	if MergeInProgress(ctx, repo) {
		t.Error("MergeInProgress() = true after abort")
	}
}

func TestIsAncestorAndCherry(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	ctx := context.Background()

	testutil.Git(t, repo, "checkout", "--quiet", "-b", "feat")
	testutil.CommitFile(t, repo, "f.txt", "f\n", "feature")
	testutil.Git(t, repo, "checkout", "--quiet", "main")

	if !IsAncestor(ctx, repo, "main", "feat") {
		t.Error("IsAncestor(main, feat) = false")
	}
	if IsAncestor(ctx, repo, "feat", "main") {
		t.Error("IsAncestor(feat, main) = true")
	}

	lines, err := Cherry(ctx, repo, "main", "feat")
	if err != nil {
		t.Fatalf("Cherry() = %v", err)
	}
	if len(lines) != 1 || lines[0][0] != '+' {
		t.Errorf("Cherry() = %q, want one '+' line", lines)
	}

	lines, err = Cherry(ctx, repo, "feat", "main")
	if err != nil || len(lines) != 0 {
		t.Errorf("Cherry(feat, main) = %q, %v, want empty", lines, err)
	}
}

func TestEnsureExcluded(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	root := domain.NewRepoRoot(repo)
	ctx := context.Background()

	testutil.WriteFile(t, repo, ".worktrees/x/file.txt", "x")
	if dirty, _ := IsDirty(ctx, repo); !dirty {
		t.Fatal("untracked .worktrees should make repo dirty before exclusion")
	}

	for range 2 {
		if err := EnsureExcluded(ctx, root, "/.worktrees/"); err != nil {
			t.Fatalf("EnsureExcluded() = %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(repo, ".git", "info", "exclude"))
	if err != nil {
		t.Fatalf("read exclude: %v", err)
	}
	if n := strings.Count(string(data), "/.worktrees/\n"); n != 1 {
		t.Errorf("pattern appears %d times, want 1:\n%s", n, data)
	}
	if dirty, _ := IsDirty(ctx, repo); dirty {
		t.Error("repo still dirty after excluding .worktrees")
	}
}
