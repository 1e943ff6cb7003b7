package lifecycle

import (
	"context"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
)

// Picker lets a user choose one worktree branch. ok is false when the user
// cancelled.
type Picker interface {
	Pick(ctx context.Context, req PickRequest) (branch domain.BranchName, ok bool, err error)
}

// PickRequest describes one selection prompt.
type PickRequest struct {
	Title      string
	Candidates []domain.Worktree
	// Preselect is the branch the cursor starts on, if any.
	Preselect domain.BranchName
}

// Target names the worktree an operation acts on.
type Target struct {
	// Branch is the explicit argument. Zero means resolve from context.
	Branch domain.BranchName
	// ForcePrompt shows the picker even for a single candidate.
	ForcePrompt bool
}

type resolveMode int

const (
	// autoSelect picks a sole candidate without prompting.
	autoSelect resolveMode = iota
	// alwaysPrompt is used for destructive operations.
	alwaysPrompt
)

// resolveTarget finds the worktree named by t among wts.
func (e *Engine) resolveTarget(ctx context.Context, wts []domain.Worktree, t Target, title string, mode resolveMode) (domain.Worktree, error) {
	if !t.Branch.IsZero() {
		wt, ok := domain.FindByBranch(wts, t.Branch)
		if !ok {
			return domain.Worktree{}, apperr.NewUsage("no worktree found for branch '%s'", t.Branch)
		}
		return wt, nil
	}

	if e.interact {
		return e.pickTarget(ctx, wts, t, title, mode)
	}
	if t.ForcePrompt {
		return domain.Worktree{}, apperr.NewUsage("interactive selection requires a terminal")
	}
	return e.inferTarget(wts)
}

func (e *Engine) pickTarget(ctx context.Context, wts []domain.Worktree, t Target, title string, mode resolveMode) (domain.Worktree, error) {
	var candidates []domain.Worktree
	for _, wt := range wts {
		if !wt.IsMain && wt.HasBranch() {
			candidates = append(candidates, wt)
		}
	}
	if len(candidates) == 0 {
		return domain.Worktree{}, apperr.NewUsage("no worktrees to select (create one with `wt-core add`)")
	}
	if len(candidates) == 1 && mode == autoSelect && !t.ForcePrompt {
		return candidates[0], nil
	}

	req := PickRequest{Title: title, Candidates: candidates}
	if cur, err := e.inferTarget(wts); err == nil && !cur.IsMain {
		req.Preselect = cur.Branch
	}

	branch, ok, err := e.picker.Pick(ctx, req)
	if err != nil {
		return domain.Worktree{}, err
	}
	if !ok {
		return domain.Worktree{}, apperr.NewUsage("selection cancelled")
	}
	wt, found := domain.FindByBranch(candidates, branch)
	if !found {
		return domain.Worktree{}, apperr.NewUsage("no worktree found for branch '%s'", branch)
	}
	return wt, nil
}

// inferTarget returns the worktree containing the engine's cwd. The main
// worktree is returned even when detached so callers can refuse it.
func (e *Engine) inferTarget(wts []domain.Worktree) (domain.Worktree, error) {
	wt, ok, err := currentWorktree(wts, e.cwd)
	if err != nil {
		return domain.Worktree{}, err
	}
	if !ok {
		return domain.Worktree{}, apperr.NewUsage("no branch specified and cwd is not inside a worktree")
	}
	if !wt.HasBranch() && !wt.IsMain {
		return domain.Worktree{}, apperr.NewUsage("worktree at %s has a detached HEAD; specify a branch", wt.Path)
	}
	return wt, nil
}

// currentWorktree picks the registration whose canonical path is the
// longest ancestor-or-equal of cwd. Two registrations resolving to the same
// path are ambiguous.
func currentWorktree(wts []domain.Worktree, cwd string) (domain.Worktree, bool, error) {
	var (
		best      domain.Worktree
		bestLen   = -1
		ambiguous bool
	)
	for _, wt := range wts {
		if wt.Missing {
			continue
		}
		path := domain.Canonicalize(wt.Path)
		if !domain.IsWithin(cwd, path) {
			continue
		}
		switch {
		case len(path) > bestLen:
			best, bestLen, ambiguous = wt, len(path), false
		case len(path) == bestLen:
			ambiguous = true
		}
	}
	if bestLen < 0 {
		return domain.Worktree{}, false, nil
	}
	if ambiguous {
		return domain.Worktree{}, false, apperr.NewUsage("cwd matches more than one worktree at %s; specify a branch", best.Path)
	}
	return best, true, nil
}
