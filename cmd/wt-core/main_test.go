package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/wt-core/internal/config"
	"github.com/raphi011/wt-core/internal/testutil"
)

// runCLI runs wt-core in dir with default config and captures both streams.
func runCLI(t *testing.T, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cfg := config.Default()
	s := &session{
		stdout:  &outBuf,
		stderr:  &errBuf,
		workDir: dir,
		cfg:     &cfg,
	}
	code = run(context.Background(), s, args)
	return outBuf.String(), errBuf.String(), code
}

// mustRun runs wt-core and fails the test on a non-zero exit.
func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	stdout, stderr, code := runCLI(t, dir, args...)
	if code != 0 {
		t.Fatalf("wt-core %s exited %d\nstdout: %s\nstderr: %s", strings.Join(args, " "), code, stdout, stderr)
	}
	return stdout
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", s, err)
	}
	return m
}

func TestAddGoRemove_PathModes(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	added := strings.TrimSpace(mustRun(t, repo, "add", "feature/x", "--print-cd-path"))
	if filepath.Dir(added) != filepath.Join(repo, ".worktrees") {
		t.Fatalf("add path = %q, want inside %s/.worktrees", added, repo)
	}
	if !testutil.Exists(added) {
		t.Fatalf("worktree %s was not created", added)
	}

	if got := strings.TrimSpace(mustRun(t, repo, "go", "feature/x", "--print-cd-path")); got != added {
		t.Errorf("go --print-cd-path = %q, want %q", got, added)
	}

	nav := decodeJSON(t, mustRun(t, repo, "go", "feature/x", "--json"))
	if nav["ok"] != true || nav["cd_path"] != added || nav["repo_root"] != repo {
		t.Errorf("go --json = %v", nav)
	}

	lines := strings.Split(strings.TrimSpace(mustRun(t, repo, "remove", "feature/x", "--print-paths")), "\n")
	want := []string{added, repo, "feature/x"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("remove --print-paths = %q, want %q", lines, want)
	}
	if testutil.Exists(added) {
		t.Error("worktree directory still exists after remove")
	}
	for _, b := range testutil.LocalBranches(t, repo) {
		if b == "feature/x" {
			t.Error("branch feature/x still exists after remove")
		}
	}
}

func TestRemove_InfersWorktreeFromCwd(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)
	wt := strings.TrimSpace(mustRun(t, repo, "add", "cwd-branch", "--print-cd-path"))

	sub := filepath.Join(wt, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, sub, "rm", "--json")
	m := decodeJSON(t, out)
	if m["branch"] != "cwd-branch" || m["removed_path"] != wt {
		t.Errorf("remove --json = %v", m)
	}
}

func TestMerge_EndToEnd(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	wt := strings.TrimSpace(mustRun(t, repo, "add", "done", "--print-cd-path"))
	testutil.CommitFile(t, wt, "done.txt", "done\n", "finish work")

	m := decodeJSON(t, mustRun(t, repo, "merge", "done", "--json"))
	if m["ok"] != true || m["mainline"] != "main" || m["cleaned_up"] != true || m["pushed"] != false {
		t.Errorf("merge --json = %v", m)
	}
	if !testutil.Exists(filepath.Join(repo, "done.txt")) {
		t.Error("merged file missing from main worktree")
	}

	list := decodeJSON(t, mustRun(t, repo, "list", "--json"))
	wts := list["worktrees"].([]any)
	if len(wts) != 1 {
		t.Fatalf("list after merge has %d worktrees, want only main", len(wts))
	}
	if main := wts[0].(map[string]any); main["is_main"] != true || main["branch"] != "main" {
		t.Errorf("remaining worktree = %v", main)
	}
}

func TestMerge_PrintPaths(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	wt := strings.TrimSpace(mustRun(t, repo, "add", "keep", "--print-cd-path"))
	testutil.CommitFile(t, wt, "keep.txt", "keep\n", "keep work")

	out := mustRun(t, repo, "merge", "keep", "--no-cleanup", "--print-paths")
	want := strings.Join([]string{repo, "keep", "main", "false", "false"}, "\n") + "\n"
	if out != want {
		t.Errorf("merge --print-paths = %q, want %q", out, want)
	}
	if !testutil.Exists(wt) {
		t.Error("--no-cleanup removed the worktree")
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)
	mustRun(t, repo, "add", "existing")
	notRepo := testutil.ResolveTempDir(t)

	tests := []struct {
		name string
		dir  string
		args []string
		code int
	}{
		{"unknown flag", repo, []string{"list", "--bogus"}, 1},
		{"too many args", repo, []string{"go", "a", "b"}, 1},
		{"force without execute", repo, []string{"prune", "--force"}, 1},
		{"invalid branch name", repo, []string{"add", "bad..name"}, 1},
		{"unknown worktree", repo, []string{"go", "nope"}, 1},
		{"json and path", repo, []string{"add", "x", "--json", "--print-cd-path"}, 1},
		{"bad base", repo, []string{"add", "y", "--base", "no-such-rev"}, 2},
		{"not a repository", notRepo, []string{"list"}, 3},
		{"remove main", repo, []string{"remove", "main"}, 4},
		{"force remove main", repo, []string{"remove", "main", "--force"}, 4},
		{"merge main", repo, []string{"merge", "main"}, 4},
		{"branch exists", repo, []string{"add", "existing"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stdout, stderr, code := runCLI(t, tt.dir, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.code, stderr)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want empty on failure", stdout)
			}
			if !strings.HasPrefix(stderr, "error: ") {
				t.Errorf("stderr = %q, want error: prefix", stderr)
			}
		})
	}
}

func TestFailure_JSONEnvelope(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	stdout, stderr, code := runCLI(t, repo, "remove", "main", "--json")
	if code != 4 {
		t.Errorf("exit code = %d, want 4", code)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty in JSON mode", stderr)
	}
	m := decodeJSON(t, stdout)
	if m["ok"] != false || m["exit_code"] != float64(4) || m["kind"] == "" || m["message"] == "" {
		t.Errorf("failure payload = %v", m)
	}
}

func TestFailure_JSONEnvelopeBeforeRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "too many arguments", args: []string{"go", "a", "b", "--json"}, wantCode: 1},
		{name: "unknown flag", args: []string{"list", "--json", "--bogus"}, wantCode: 1},
		{name: "flag value form", args: []string{"prune", "--json=true", "extra"}, wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := testutil.NewRepo(t)

			stdout, stderr, code := runCLI(t, repo, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if stderr != "" {
				t.Errorf("stderr = %q, want empty in JSON mode", stderr)
			}
			m := decodeJSON(t, stdout)
			if m["ok"] != false || m["exit_code"] != float64(tt.wantCode) || m["message"] == "" {
				t.Errorf("failure payload = %v", m)
			}
		})
	}
}

func TestJSONRequested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{args: []string{"list"}, want: false},
		{args: []string{"list", "--json"}, want: true},
		{args: []string{"list", "--json=false"}, want: false},
		{args: []string{"list", "--json=1"}, want: true},
		{args: []string{"go", "--", "--json"}, want: false},
	}

	for _, tt := range tests {
		if got := jsonRequested(tt.args); got != tt.want {
			t.Errorf("jsonRequested(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestFailure_PathModeKeepsStdoutEmpty(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	stdout, stderr, code := runCLI(t, repo, "add", "main", "--print-cd-path")
	if code != 5 {
		t.Errorf("exit code = %d, want 5", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "error:") {
		t.Errorf("stderr = %q, want error message", stderr)
	}
}

func TestList_Human(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)
	mustRun(t, repo, "add", "feature")

	out := mustRun(t, repo, "list")
	for _, want := range []string{"main", "feature", "BRANCH"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("list output contains escape codes when not a terminal:\n%q", out)
	}
}

func TestPrune_DryRunAndExecute(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	wt := strings.TrimSpace(mustRun(t, repo, "add", "shipped", "--print-cd-path"))
	testutil.CommitFile(t, wt, "s.txt", "s\n", "ship it")
	testutil.Git(t, repo, "merge", "--quiet", "--no-ff", "--no-edit", "shipped")
	open := strings.TrimSpace(mustRun(t, repo, "add", "open", "--print-cd-path"))
	testutil.CommitFile(t, open, "o.txt", "o\n", "still open")

	dry := mustRun(t, repo, "prune")
	if !strings.Contains(dry, "--execute") {
		t.Errorf("dry run summary missing --execute hint:\n%s", dry)
	}
	if !testutil.Exists(wt) {
		t.Fatal("dry run removed a worktree")
	}

	m := decodeJSON(t, mustRun(t, repo, "prune", "--execute", "--json"))
	pruned := m["pruned"].([]any)
	if len(pruned) != 1 || pruned[0].(map[string]any)["branch"] != "shipped" {
		t.Errorf("pruned = %v, want only shipped", pruned)
	}
	if testutil.Exists(wt) {
		t.Error("integrated worktree still exists after prune --execute")
	}
}

func TestDoctor_JSON(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	m := decodeJSON(t, mustRun(t, repo, "doctor", "--json"))
	if m["ok"] != true {
		t.Errorf("doctor ok = %v", m["ok"])
	}
	// A fresh repository has no origin.
	if m["healthy"] != false {
		t.Errorf("doctor healthy = %v, want false without a remote", m["healthy"])
	}
	diags := m["diagnostics"].([]any)
	if len(diags) != 1 || diags[0].(map[string]any)["category"] != "remote" {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()
			out := mustRun(t, t.TempDir(), "init", shell)
			for _, want := range []string{"wt-core", "--print-cd-path", "--print-paths"} {
				if !strings.Contains(out, want) {
					t.Errorf("init %s output missing %q", shell, want)
				}
			}
		})
	}

	if _, _, code := runCLI(t, t.TempDir(), "init", "tcsh"); code != 1 {
		t.Errorf("init tcsh exit code = %d, want 1", code)
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	out := mustRun(t, t.TempDir(), "completion", "bash")
	if !strings.Contains(out, "wt-core") {
		t.Errorf("bash completion does not mention wt-core")
	}
}

func TestCompleteWorktreeBranches(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)
	mustRun(t, repo, "add", "feature-a")
	mustRun(t, repo, "add", "bugfix")

	out := mustRun(t, repo, "__complete", "go", "fea")
	if !strings.Contains(out, "feature-a") {
		t.Errorf("completion missing feature-a:\n%s", out)
	}
	if strings.Contains(out, "bugfix") || strings.Contains(out, "main\n") {
		t.Errorf("completion should only list matching non-main branches:\n%s", out)
	}
}

func TestVerboseAndQuietConflict(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	if _, _, code := runCLI(t, repo, "-v", "-q", "list"); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestVerboseLogsGitCommands(t *testing.T) {
	t.Parallel()
	repo := testutil.NewRepo(t)

	_, stderr, code := runCLI(t, repo, "-v", "list")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "$ git") {
		t.Errorf("verbose stderr missing git invocations:\n%s", stderr)
	}
}
