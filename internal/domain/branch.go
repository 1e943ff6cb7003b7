package domain

import (
	"strings"

	"github.com/raphi011/wt-core/internal/apperr"
)

const headsPrefix = "refs/heads/"

// BranchName is a validated local branch name.
//
// The zero value means "no branch" (detached HEAD). Non-zero values are
// produced only by [NewBranchName] for user input and [BranchFromRef] for
// names reported by git.
type BranchName struct {
	name string
}

// NewBranchName validates user input as a local branch name.
func NewBranchName(s string) (BranchName, error) {
	if reason := invalidBranchReason(s); reason != "" {
		return BranchName{}, apperr.NewUsage("invalid branch name %q: %s", s, reason)
	}
	return BranchName{name: s}, nil
}

// BranchFromRef converts a ref reported by git ("refs/heads/x" or "x") into a
// BranchName. It reports false for empty refs.
func BranchFromRef(ref string) (BranchName, bool) {
	ref = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ref), headsPrefix))
	if ref == "" {
		return BranchName{}, false
	}
	return BranchName{name: ref}, true
}

func (b BranchName) String() string {
	return b.name
}

// IsZero reports whether b names no branch.
func (b BranchName) IsZero() bool {
	return b.name == ""
}

// Ref returns the full ref name, refs/heads/<name>.
func (b BranchName) Ref() string {
	return headsPrefix + b.name
}

// MarshalText renders the branch as its plain name.
func (b BranchName) MarshalText() ([]byte, error) {
	return []byte(b.name), nil
}

// invalidBranchReason mirrors the rules of git check-ref-format --branch.
func invalidBranchReason(s string) string {
	switch {
	case strings.TrimSpace(s) == "":
		return "must not be empty"
	case s == "@":
		return "must not be '@'"
	case strings.HasPrefix(s, "-"):
		return "must not start with '-'"
	case strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/"):
		return "must not start or end with '/'"
	case strings.HasSuffix(s, "."):
		return "must not end with '.'"
	case strings.HasSuffix(s, ".lock"):
		return "must not end with '.lock'"
	case strings.Contains(s, ".."):
		return "must not contain '..'"
	case strings.Contains(s, "//"):
		return "must not contain '//'"
	case strings.Contains(s, "@{"):
		return "must not contain '@{'"
	}

	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "must not contain control characters"
		}
		switch r {
		case ' ', '~', '^', ':', '?', '*', '[', '\\':
			return "must not contain '" + string(r) + "'"
		}
	}

	for _, part := range strings.Split(s, "/") {
		if strings.HasPrefix(part, ".") {
			return "path components must not start with '.'"
		}
	}
	return ""
}
