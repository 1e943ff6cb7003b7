// Package ui holds the terminal-facing pieces of wt-core.
//
// Subpackages:
//
//   - [github.com/raphi011/wt-core/internal/ui/picker]: fuzzy worktree
//     selector used when a branch argument is omitted
//   - [github.com/raphi011/wt-core/internal/ui/static]: tables for list,
//     prune and doctor
//   - [github.com/raphi011/wt-core/internal/ui/progress]: spinner for
//     long-running git work
//   - [github.com/raphi011/wt-core/internal/ui/styles]: shared palette
//
// Everything interactive renders to stderr so stdout stays reserved for
// data that shell wrappers capture.
package ui
