package output

import (
	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/doctor"
	"github.com/raphi011/wt-core/internal/domain"
)

// Field names below are a stable contract for scripts.

// ErrorPayload is printed on stdout in JSON mode when a command fails.
type ErrorPayload struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message"`
	Kind     string `json:"kind"`
	ExitCode int    `json:"exit_code"`
}

// NewErrorPayload builds the JSON failure envelope for err.
func NewErrorPayload(err error) ErrorPayload {
	kind := apperr.KindOf(err)
	return ErrorPayload{
		OK:       false,
		Message:  err.Error(),
		Kind:     kind.String(),
		ExitCode: kind.ExitCode(),
	}
}

// NavPayload is the JSON result of add and go.
type NavPayload struct {
	OK           bool   `json:"ok"`
	Message      string `json:"message,omitempty"`
	RepoRoot     string `json:"repo_root"`
	WorktreePath string `json:"worktree_path"`
	CdPath       string `json:"cd_path"`
	Branch       string `json:"branch"`
	Tracking     string `json:"tracking,omitempty"`
}

// NewAddPayload renders an AddResult.
func NewAddPayload(r domain.AddResult) NavPayload {
	msg := "created worktree for '" + r.Branch.String() + "'"
	if r.Tracking != "" {
		msg += " tracking '" + r.Tracking + "'"
	}
	return NavPayload{
		OK:           true,
		Message:      msg,
		RepoRoot:     r.RepoRoot.String(),
		WorktreePath: r.WorktreePath,
		CdPath:       r.WorktreePath,
		Branch:       r.Branch.String(),
		Tracking:     r.Tracking,
	}
}

// NewGoPayload renders a GoResult.
func NewGoPayload(r domain.GoResult) NavPayload {
	return NavPayload{
		OK:           true,
		RepoRoot:     r.RepoRoot.String(),
		WorktreePath: r.WorktreePath,
		CdPath:       r.WorktreePath,
		Branch:       r.Branch.String(),
	}
}

// RemovePayload is the JSON result of remove.
type RemovePayload struct {
	OK            bool     `json:"ok"`
	Message       string   `json:"message"`
	RepoRoot      string   `json:"repo_root"`
	RemovedPath   string   `json:"removed_path"`
	Branch        string   `json:"branch"`
	BranchDeleted bool     `json:"branch_deleted"`
	Warnings      []string `json:"warnings,omitempty"`
}

// NewRemovePayload renders a RemoveResult.
func NewRemovePayload(r domain.RemoveResult) RemovePayload {
	return RemovePayload{
		OK:            true,
		Message:       "removed worktree for '" + r.Branch.String() + "'",
		RepoRoot:      r.RepoRoot.String(),
		RemovedPath:   r.RemovedPath,
		Branch:        r.Branch.String(),
		BranchDeleted: r.BranchDeleted,
		Warnings:      r.Warnings,
	}
}

// MergePayload is the JSON result of merge.
type MergePayload struct {
	OK          bool     `json:"ok"`
	Message     string   `json:"message"`
	RepoRoot    string   `json:"repo_root"`
	Branch      string   `json:"branch"`
	Mainline    string   `json:"mainline"`
	CleanedUp   bool     `json:"cleaned_up"`
	RemovedPath string   `json:"removed_path,omitempty"`
	Pushed      bool     `json:"pushed"`
	Warnings    []string `json:"warnings,omitempty"`
}

// NewMergePayload renders a MergeResult.
func NewMergePayload(r domain.MergeResult) MergePayload {
	return MergePayload{
		OK:          true,
		Message:     "merged '" + r.Branch.String() + "' into '" + r.Mainline.String() + "'",
		RepoRoot:    r.RepoRoot.String(),
		Branch:      r.Branch.String(),
		Mainline:    r.Mainline.String(),
		CleanedUp:   r.CleanedUp,
		RemovedPath: r.RemovedPath,
		Pushed:      r.Pushed,
		Warnings:    r.Warnings,
	}
}

// ListPayload is the JSON result of list.
type ListPayload struct {
	OK        bool              `json:"ok"`
	RepoRoot  string            `json:"repo_root"`
	Worktrees []domain.Worktree `json:"worktrees"`
}

// NewListPayload renders a ListResult.
func NewListPayload(r domain.ListResult) ListPayload {
	wts := r.Worktrees
	if wts == nil {
		wts = []domain.Worktree{}
	}
	return ListPayload{OK: true, RepoRoot: r.RepoRoot.String(), Worktrees: wts}
}

// PrunePayload is the JSON result of prune.
type PrunePayload struct {
	OK        bool                     `json:"ok"`
	RepoRoot  string                   `json:"repo_root"`
	Mainline  string                   `json:"mainline"`
	Execute   bool                     `json:"execute"`
	Prunable  int                      `json:"prunable"`
	Worktrees []domain.PruneCandidate  `json:"worktrees"`
	Pruned    []domain.PrunedWorktree  `json:"pruned,omitempty"`
	Skipped   []domain.SkippedWorktree `json:"skipped,omitempty"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

// NewPrunePayload renders a PruneReport.
func NewPrunePayload(r domain.PruneReport) PrunePayload {
	candidates := r.Candidates
	if candidates == nil {
		candidates = []domain.PruneCandidate{}
	}
	return PrunePayload{
		OK:        true,
		RepoRoot:  r.RepoRoot.String(),
		Mainline:  r.Mainline,
		Execute:   r.Execute,
		Prunable:  r.PrunableCount(),
		Worktrees: candidates,
		Pruned:    r.Pruned,
		Skipped:   r.Skipped,
		Warnings:  r.Warnings,
	}
}

// DoctorPayload is the JSON result of doctor.
type DoctorPayload struct {
	OK          bool                `json:"ok"`
	RepoRoot    string              `json:"repo_root"`
	Healthy     bool                `json:"healthy"`
	Diagnostics []doctor.Diagnostic `json:"diagnostics"`
}

// NewDoctorPayload renders a doctor report. ok reports that the checks
// ran; healthy reports what they found.
func NewDoctorPayload(r doctor.Report) DoctorPayload {
	diags := r.Diagnostics
	if diags == nil {
		diags = []doctor.Diagnostic{}
	}
	return DoctorPayload{
		OK:          true,
		RepoRoot:    r.RepoRoot.String(),
		Healthy:     r.Healthy(),
		Diagnostics: diags,
	}
}

// RemoveLines returns the --print-paths values of remove:
// removed path, repository root, branch.
func RemoveLines(r domain.RemoveResult) []string {
	return []string{r.RemovedPath, r.RepoRoot.String(), r.Branch.String()}
}

// MergeLines returns the --print-paths values of merge:
// repository root, branch, mainline, cleaned_up, pushed.
func MergeLines(r domain.MergeResult) []string {
	return []string{
		r.RepoRoot.String(),
		r.Branch.String(),
		r.Mainline.String(),
		boolString(r.CleanedUp),
		boolString(r.Pushed),
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
