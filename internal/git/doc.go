// Package git is the process interface to the git CLI.
//
// Every call goes through [Run], which executes git with an environment
// scrubbed of GIT_DIR and related variables, returns trimmed stdout, and
// turns a non-zero exit into an [*apperr.Error] by classifying stderr once,
// centrally:
//
//  1. "not a git repository" is [apperr.NotARepository]
//  2. "unmerged", "modified", "dirty", "already exists",
//     "already checked out" or "is not fully merged" is [apperr.Conflict]
//  3. anything else is [apperr.GitFailure] carrying the raw stderr
//
// Predicates that answer through the exit status (rev-parse --verify,
// merge-base --is-ancestor) use [Succeeds] instead.
//
// # Worktree Operations
//
//   - [ListWorktrees]: parse git worktree list --porcelain
//   - [AddWorktree]: create worktree and branch in one git call
//   - [RemoveWorktree]: remove a worktree, optionally forced
//
// # Repository Operations
//
//   - [ResolveRepoRoot]: main working copy of any path inside a repository
//   - [BranchExists], [RemoteBranchExists], [RevisionExists]
//   - [DefaultBranch]: mainline detection from the remote HEAD
//   - [Merge], [MergeAbort], [MergeInProgress], [Push]
//   - [IsAncestor], [Cherry]: inputs to integration detection
package git
