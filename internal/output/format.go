package output

import "github.com/raphi011/wt-core/internal/apperr"

// Output formats are split into families so a command can only be asked
// for the shapes it supports. A status-only command takes a StatusFormat
// and has no way to receive a path render.

// NavFormat is the output shape of navigation commands (add, go).
type NavFormat int

const (
	NavHuman NavFormat = iota
	NavJSON
	// NavPath prints only the worktree path, for shell wrappers.
	NavPath
)

// ParseNavFormat selects the format from the --json and --print-cd-path flags.
func ParseNavFormat(jsonOut, path bool) (NavFormat, error) {
	switch {
	case jsonOut && path:
		return NavHuman, apperr.NewUsage("--json and --print-cd-path are mutually exclusive")
	case jsonOut:
		return NavJSON, nil
	case path:
		return NavPath, nil
	default:
		return NavHuman, nil
	}
}

// Structured reports whether the format is machine-readable.
func (f NavFormat) Structured() bool {
	return f != NavHuman
}

// PathsFormat is the output shape of commands that remove a worktree
// (remove, merge).
type PathsFormat int

const (
	PathsHuman PathsFormat = iota
	PathsJSON
	// PathsLines prints one value per line in a fixed order.
	PathsLines
)

// ParsePathsFormat selects the format from the --json and --print-paths flags.
func ParsePathsFormat(jsonOut, lines bool) (PathsFormat, error) {
	switch {
	case jsonOut && lines:
		return PathsHuman, apperr.NewUsage("--json and --print-paths are mutually exclusive")
	case jsonOut:
		return PathsJSON, nil
	case lines:
		return PathsLines, nil
	default:
		return PathsHuman, nil
	}
}

// Structured reports whether the format is machine-readable.
func (f PathsFormat) Structured() bool {
	return f != PathsHuman
}

// StatusFormat is the output shape of report-only commands (list, prune,
// doctor).
type StatusFormat int

const (
	StatusHuman StatusFormat = iota
	StatusJSON
)

// ParseStatusFormat selects the format from the --json flag.
func ParseStatusFormat(jsonOut bool) StatusFormat {
	if jsonOut {
		return StatusJSON
	}
	return StatusHuman
}

// Structured reports whether the format is machine-readable.
func (f StatusFormat) Structured() bool {
	return f == StatusJSON
}
