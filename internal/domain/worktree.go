package domain

// Worktree is a snapshot of one registered worktree.
type Worktree struct {
	Path      string     `json:"path"`
	Branch    BranchName `json:"branch"`
	Head      string     `json:"head"`
	Dirty     bool       `json:"dirty"`
	IsMain    bool       `json:"is_main"`
	IsCurrent bool       `json:"is_current"`
	Missing   bool       `json:"missing,omitempty"`
	Locked    bool       `json:"locked,omitempty"`
	Prunable  bool       `json:"-"`
	Detached  bool       `json:"-"`
}

// ShortHead returns the abbreviated commit hash.
func (w Worktree) ShortHead() string {
	if len(w.Head) > 7 {
		return w.Head[:7]
	}
	return w.Head
}

// HasBranch reports whether a branch is checked out in the worktree.
func (w Worktree) HasBranch() bool {
	return !w.Branch.IsZero()
}

// FindByBranch returns the worktree with the given branch checked out.
func FindByBranch(worktrees []Worktree, branch BranchName) (Worktree, bool) {
	for _, wt := range worktrees {
		if !wt.Branch.IsZero() && wt.Branch == branch {
			return wt, true
		}
	}
	return Worktree{}, false
}

// Main returns the main worktree. Git always lists it first.
func Main(worktrees []Worktree) (Worktree, bool) {
	for _, wt := range worktrees {
		if wt.IsMain {
			return wt, true
		}
	}
	return Worktree{}, false
}
