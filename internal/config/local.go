package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/wt-core/internal/domain"
)

// LocalConfigFileName is the per-repo config file at the repository root.
const LocalConfigFileName = ".wt-core.toml"

// LocalConfig holds per-repo overrides from .wt-core.toml.
// Pointer fields and empty strings mean "not set" (inherit from global).
type LocalConfig struct {
	Remote   string     `toml:"remote"`
	Mainline string     `toml:"mainline"`
	Merge    LocalMerge `toml:"merge"`
}

// LocalMerge holds local merge overrides.
type LocalMerge struct {
	Push    *bool `toml:"push"`
	Cleanup *bool `toml:"cleanup"`
}

// LoadLocal reads a per-repo .wt-core.toml from the given repo path.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if _, err := toml.Decode(string(data), &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if local.Mainline != "" {
		if _, err := domain.NewBranchName(local.Mainline); err != nil {
			return nil, fmt.Errorf("invalid mainline in %s: %w", configFile, err)
		}
	}
	return &local, nil
}

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Log and UI settings are per-user and inherited as-is.
	merged := *global

	if local.Remote != "" {
		merged.Remote = local.Remote
	}
	if local.Mainline != "" {
		merged.Mainline = local.Mainline
	}
	if local.Merge.Push != nil {
		merged.Merge.Push = *local.Merge.Push
	}
	if local.Merge.Cleanup != nil {
		merged.Merge.Cleanup = *local.Merge.Cleanup
	}
	return &merged
}
