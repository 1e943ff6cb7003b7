// Package doctor runs read-only consistency checks over a repository's
// worktree registry and its .worktrees directory.
//
// Checks cover four areas:
//
//   - Registry: worktrees git knows about that are missing on disk,
//     detached or locked.
//   - Orphans: directories under .worktrees that git does not know about.
//   - Branches: registered branches whose ref no longer exists, and
//     managed directories whose name does not match their branch.
//   - Remote: a missing default remote, which disables mainline
//     detection through the remote HEAD.
//
// Refs and remotes are read with go-git; nothing is ever written. In
// particular doctor never runs git worktree prune. Each finding is a
// [Diagnostic] with a [Level].
package doctor
