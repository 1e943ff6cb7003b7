// Package lifecycle implements the worktree lifecycle operations: add, go,
// list, remove, merge, prune and doctor.
//
// An [Engine] is bound to one repository root for one invocation. It holds
// no state between calls: every operation re-reads git's worktree registry
// and re-checks dirty status right before anything destructive happens.
//
// # Protected boundaries
//
// The main worktree is never removed or merged, regardless of force. Merge
// verifies mainline and the main worktree before touching anything and
// always aborts a conflicted merge before returning. Prune is read-only
// unless execute is requested, and in execute mode one candidate's failure
// never stops the others.
//
// # Target resolution
//
// go, remove and merge accept an optional branch. Without one the engine
// either asks the [Picker] (interactive terminals) or picks the worktree
// containing the current directory, preferring the most specific match.
package lifecycle
