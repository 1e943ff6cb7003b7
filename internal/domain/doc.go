// Package domain holds the value types shared by the lifecycle engine:
// the repository root, validated branch names, worktree snapshots and the
// results each lifecycle operation produces.
//
// Values are created fresh per invocation. Nothing here is cached or
// persisted; git's registry and the filesystem stay the source of truth.
package domain
