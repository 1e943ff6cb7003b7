package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/wt-core/internal/domain"
)

// Environment variables that override file settings.
const (
	EnvRemote   = "WT_CORE_REMOTE"
	EnvMainline = "WT_CORE_MAINLINE"
	EnvLogFile  = "WT_CORE_LOG_FILE"
)

// DefaultRemote is the remote consulted when none is configured.
const DefaultRemote = "origin"

// MergeConfig holds merge defaults.
type MergeConfig struct {
	Push    bool `toml:"push"`
	Cleanup bool `toml:"cleanup"`
}

// LogConfig configures the rotated log file.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// UIConfig holds interactive picker settings.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// Config holds the wt-core configuration.
type Config struct {
	Remote   string      `toml:"remote"`
	Mainline string      `toml:"mainline"`
	Merge    MergeConfig `toml:"merge"`
	Log      LogConfig   `toml:"log"`
	UI       UIConfig    `toml:"ui"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Remote: DefaultRemote,
		Merge: MergeConfig{
			Cleanup: true,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// MainlineBranch returns the configured mainline, or the zero BranchName
// when mainline should be auto-detected.
func (c *Config) MainlineBranch() domain.BranchName {
	b, err := domain.NewBranchName(c.Mainline)
	if err != nil {
		return domain.BranchName{}
	}
	return b
}

// ValidatePath checks that the path is absolute or starts with ~.
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the global config file location.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wt-core", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wt-core", "config.toml"), nil
}

// Load reads the global config file and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		applyEnv(&cfg)
		return cfg, cfg.validate("environment")
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.validate(path); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvRemote)); v != "" {
		cfg.Remote = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMainline)); v != "" {
		cfg.Mainline = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Log.File = v
	}
}

func (c *Config) validate(source string) error {
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if strings.ContainsAny(c.Remote, " \t/") {
		return fmt.Errorf("invalid remote %q in %s", c.Remote, source)
	}
	if c.Mainline != "" {
		if _, err := domain.NewBranchName(c.Mainline); err != nil {
			return fmt.Errorf("invalid mainline in %s: %w", source, err)
		}
	}
	if err := validateEnum(c.UI.Theme, "ui.theme", ValidThemes); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation settings in %s must not be negative", source)
	}
	if err := ValidatePath(c.Log.File, "log.file"); err != nil {
		return err
	}
	expanded, err := expandPath(c.Log.File)
	if err != nil {
		return fmt.Errorf("expand log.file: %w", err)
	}
	c.Log.File = expanded
	return nil
}

const defaultConfig = `# wt-core configuration

# Remote used for tracking branches, mainline detection and merge --push
# remote = "origin"

# Fixed mainline branch. Leave unset to detect it from the remote HEAD,
# then local main, then master.
# mainline = "main"

# [merge]
# push = false     # push mainline after a successful merge
# cleanup = true   # remove the worktree and branch after merging

# Append debug output and every git invocation to a rotated log file.
# Must be absolute or start with ~.
# [log]
# file = "~/.local/state/wt-core/wt-core.log"
# max_size_mb = 10
# max_backups = 3
# max_age_days = 28

# [ui]
# theme = "default"   # default, mono, dracula or nord
`

// Template returns the commented default config file.
func Template() string {
	return defaultConfig
}

// Init creates a default config file at Path().
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
