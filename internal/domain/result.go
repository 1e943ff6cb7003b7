package domain

// AddResult describes a newly created worktree.
type AddResult struct {
	RepoRoot     RepoRoot
	WorktreePath string
	Branch       BranchName
	// Tracking is the remote ref the branch was created from, if any.
	Tracking string
}

// GoResult is the worktree a caller should navigate to.
type GoResult struct {
	RepoRoot     RepoRoot
	WorktreePath string
	Branch       BranchName
}

// ListResult holds every registered worktree, main first.
type ListResult struct {
	RepoRoot  RepoRoot
	Worktrees []Worktree
}

// RemoveResult describes a removed worktree. Warnings are non-fatal
// problems that happened after the worktree was gone.
type RemoveResult struct {
	RepoRoot      RepoRoot
	RemovedPath   string
	Branch        BranchName
	BranchDeleted bool
	Warnings      []string
}

// MergeResult describes a completed merge into mainline.
type MergeResult struct {
	RepoRoot    RepoRoot
	Branch      BranchName
	Mainline    BranchName
	CleanedUp   bool
	RemovedPath string
	Pushed      bool
	Warnings    []string
}

// IntegrationMethod says how a branch's work reached mainline.
type IntegrationMethod string

const (
	// MethodMerged means the branch tip is an ancestor of mainline.
	MethodMerged IntegrationMethod = "merged"
	// MethodRebase means every branch commit has a patch-equivalent commit
	// on mainline.
	MethodRebase IntegrationMethod = "rebase"
)

// SkipReason explains why prune left a worktree in place.
type SkipReason string

const (
	SkipNotIntegrated SkipReason = "not_integrated"
	SkipNoBranch      SkipReason = "no_branch"
	SkipDirty         SkipReason = "dirty"
	SkipRemovalFailed SkipReason = "removal_failed"
	SkipLocked        SkipReason = "locked"
	SkipCheckFailed   SkipReason = "check_failed"
	SkipMainline      SkipReason = "mainline"
)

// PruneCandidate is the integration verdict for one non-main worktree.
type PruneCandidate struct {
	Path       string            `json:"path"`
	Branch     BranchName        `json:"branch"`
	Integrated bool              `json:"integrated"`
	Method     IntegrationMethod `json:"method,omitempty"`
	Dirty      bool              `json:"dirty"`
	// Reason is set for candidates that cannot be pruned.
	Reason SkipReason `json:"reason,omitempty"`
}

// Prunable reports whether the candidate would be removed by an execute
// run with the given force setting.
func (c PruneCandidate) Prunable(force bool) bool {
	return c.Integrated && c.Reason == "" && (!c.Dirty || force)
}

// PrunedWorktree records a worktree removed by prune.
type PrunedWorktree struct {
	Path          string     `json:"path"`
	Branch        BranchName `json:"branch"`
	BranchDeleted bool       `json:"branch_deleted"`
}

// SkippedWorktree records a worktree prune left in place.
type SkippedWorktree struct {
	Path   string     `json:"path"`
	Branch BranchName `json:"branch"`
	Reason SkipReason `json:"reason"`
}

// PruneReport is the outcome of a prune run.
type PruneReport struct {
	RepoRoot   RepoRoot
	// Mainline is the branch or revision candidates were checked against.
	Mainline   string
	Execute    bool
	Force      bool
	Candidates []PruneCandidate
	Pruned     []PrunedWorktree
	Skipped    []SkippedWorktree
	Warnings   []string
}

// PrunableCount returns how many candidates an execute run would remove.
func (r PruneReport) PrunableCount() int {
	n := 0
	for _, c := range r.Candidates {
		if c.Prunable(r.Force) {
			n++
		}
	}
	return n
}
