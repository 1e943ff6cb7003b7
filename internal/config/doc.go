// Package config loads wt-core settings.
//
// Global settings live in $XDG_CONFIG_HOME/wt-core/config.toml (default
// ~/.config/wt-core/config.toml). A repository may carry a .wt-core.toml at
// its root whose set fields override the global ones; see [MergeLocal].
// A missing file is not an error and yields [Default].
//
// # Keys
//
//	remote = "origin"          # remote used for tracking, mainline and push
//	mainline = ""              # fixed mainline; empty means auto-detect
//
//	[merge]
//	push = false               # push mainline after merge
//	cleanup = true             # remove worktree and branch after merge
//
//	[log]
//	file = "~/.local/state/wt-core/wt-core.log"
//	max_size_mb = 10
//	max_backups = 3
//	max_age_days = 28
//
//	[ui]
//	theme = "default"          # picker palette: default, mono
//
// # Environment
//
// WT_CORE_REMOTE, WT_CORE_MAINLINE and WT_CORE_LOG_FILE override the
// corresponding keys after files are merged.
//
// Destructive behavior (force, prune --execute) is never configurable and
// must be requested on the command line.
package config
