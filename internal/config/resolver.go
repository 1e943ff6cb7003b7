package config

import (
	"context"
	"os"
	"strings"
)

// resolverKey is the context key for ConfigResolver
type resolverKey struct{}

// ConfigResolver provides lazy per-repo config resolution with caching.
// Environment overrides win over both the global and the per-repo file.
type ConfigResolver struct {
	global *Config
	cache  map[string]*Config // repoPath -> merged config
}

// NewResolver creates a new ConfigResolver backed by the given global config.
func NewResolver(global *Config) *ConfigResolver {
	return &ConfigResolver{
		global: global,
		cache:  make(map[string]*Config),
	}
}

// ConfigForRepo returns the effective config for a repo, merging any
// .wt-core.toml found at the repo path with the global config. Results are
// cached per repoPath for the lifetime of the resolver (one invocation).
func (r *ConfigResolver) ConfigForRepo(repoPath string) (*Config, error) {
	if cached, ok := r.cache[repoPath]; ok {
		return cached, nil
	}

	local, err := LoadLocal(repoPath)
	if err != nil {
		return nil, err
	}

	merged := MergeLocal(r.global, local)
	if local != nil {
		cp := *merged
		if v := strings.TrimSpace(os.Getenv(EnvRemote)); v != "" {
			cp.Remote = v
		}
		if v := strings.TrimSpace(os.Getenv(EnvMainline)); v != "" {
			cp.Mainline = v
		}
		merged = &cp
	}
	r.cache[repoPath] = merged
	return merged, nil
}

// Global returns the global config (without any local overrides).
func (r *ConfigResolver) Global() *Config {
	return r.global
}

// WithResolver returns a new context with the ConfigResolver stored in it.
func WithResolver(ctx context.Context, r *ConfigResolver) context.Context {
	return context.WithValue(ctx, resolverKey{}, r)
}

// ResolverFromContext returns the ConfigResolver from context.
// Falls back to a resolver over Default() when none is stored.
func ResolverFromContext(ctx context.Context) *ConfigResolver {
	if r, ok := ctx.Value(resolverKey{}).(*ConfigResolver); ok {
		return r
	}
	cfg := Default()
	return NewResolver(&cfg)
}
