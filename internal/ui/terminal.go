package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// CanPrompt reports whether the picker can run: it reads keys from stdin
// and draws on stderr, so both must be terminals.
func CanPrompt() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stderr)
}

// ShowProgress reports whether a spinner should be drawn on stderr.
func ShowProgress() bool {
	return IsTerminal(os.Stderr) && os.Getenv("CI") == ""
}
