package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeLocal(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return dir
}

func TestLoadLocal_NoFile(t *testing.T) {
	t.Parallel()

	local, err := LoadLocal(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local != nil {
		t.Fatalf("expected nil, got %+v", local)
	}
}

func TestLoadLocal_AllFields(t *testing.T) {
	t.Parallel()

	dir := writeLocal(t, `
remote = "upstream"
mainline = "develop"

[merge]
push = true
cleanup = false
`)

	local, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal() = %v", err)
	}
	if local.Remote != "upstream" || local.Mainline != "develop" {
		t.Errorf("local = %+v", local)
	}
	if local.Merge.Push == nil || !*local.Merge.Push {
		t.Error("Merge.Push not set to true")
	}
	if local.Merge.Cleanup == nil || *local.Merge.Cleanup {
		t.Error("Merge.Cleanup not set to false")
	}
}

func TestLoadLocal_Invalid(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"mainline = ", `mainline = "a..b"`} {
		if _, err := LoadLocal(writeLocal(t, content)); err == nil {
			t.Errorf("LoadLocal(%q) = nil, want error", content)
		}
	}
}

func TestMergeLocal(t *testing.T) {
	t.Parallel()

	global := Default()
	global.Log.File = "/var/log/wt-core.log"

	t.Run("nil local returns global", func(t *testing.T) {
		t.Parallel()
		if got := MergeLocal(&global, nil); got != &global {
			t.Error("MergeLocal(nil) did not return global")
		}
	})

	t.Run("set fields override", func(t *testing.T) {
		t.Parallel()
		push := true
		got := MergeLocal(&global, &LocalConfig{Mainline: "develop", Merge: LocalMerge{Push: &push}})
		if got.Mainline != "develop" || !got.Merge.Push {
			t.Errorf("merged = %+v", got)
		}
		if got.Remote != "origin" || !got.Merge.Cleanup {
			t.Errorf("unset fields not inherited: %+v", got)
		}
		if got.Log.File != "/var/log/wt-core.log" {
			t.Errorf("Log.File = %q, want inherited", got.Log.File)
		}
		if global.Mainline != "" || global.Merge.Push {
			t.Error("MergeLocal mutated global")
		}
	})
}

func TestConfigResolver(t *testing.T) {
	t.Setenv(EnvRemote, "")
	t.Setenv(EnvMainline, "")

	global := Default()
	r := NewResolver(&global)
	dir := writeLocal(t, `mainline = "develop"`)

	cfg, err := r.ConfigForRepo(dir)
	if err != nil {
		t.Fatalf("ConfigForRepo() = %v", err)
	}
	if cfg.Mainline != "develop" {
		t.Errorf("Mainline = %q, want develop", cfg.Mainline)
	}
	again, _ := r.ConfigForRepo(dir)
	if again != cfg {
		t.Error("ConfigForRepo() not cached")
	}

	plain, err := r.ConfigForRepo(t.TempDir())
	if err != nil || plain != &global {
		t.Errorf("ConfigForRepo(no local) = %p, %v, want global", plain, err)
	}
}

func TestConfigResolver_EnvWinsOverLocal(t *testing.T) {
	t.Setenv(EnvMainline, "release")
	t.Setenv(EnvRemote, "")

	global := Default()
	cfg, err := NewResolver(&global).ConfigForRepo(writeLocal(t, `mainline = "develop"`))
	if err != nil {
		t.Fatalf("ConfigForRepo() = %v", err)
	}
	if cfg.Mainline != "release" {
		t.Errorf("Mainline = %q, want env value", cfg.Mainline)
	}
}

func TestResolverFromContext(t *testing.T) {
	t.Parallel()

	if r := ResolverFromContext(context.Background()); r == nil || r.Global().Remote != "origin" {
		t.Error("fallback resolver missing defaults")
	}

	global := Default()
	r := NewResolver(&global)
	if got := ResolverFromContext(WithResolver(context.Background(), r)); got != r {
		t.Error("ResolverFromContext did not return stored resolver")
	}
}
