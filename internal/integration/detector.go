// Package integration decides whether a branch's work is already part of
// mainline.
//
// Two checks run in order and either is sufficient:
//
//   - ancestry: the branch tip is reachable from mainline, which covers
//     fast-forwards and ordinary merges
//   - patch equivalence: every commit unique to the branch has a
//     patch-identical commit on mainline (git cherry), which covers
//     rebase and cherry-pick merges where hashes differ
package integration

import (
	"context"
	"strings"

	"github.com/raphi011/wt-core/internal/apperr"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// Status is the verdict for one branch.
type Status struct {
	Integrated bool
	Method     domain.IntegrationMethod
}

// Detector checks branches of one repository against mainline.
type Detector struct {
	root domain.RepoRoot
}

// NewDetector returns a detector for the repository at root.
func NewDetector(root domain.RepoRoot) *Detector {
	return &Detector{root: root}
}

// IsIntegrated reports whether branch is fully contained in mainline, which
// may be any revision (refs/heads/main, origin/main, a tag).
// It fails with GitFailure when either side does not resolve, rather than
// reporting the branch as not integrated.
func (d *Detector) IsIntegrated(ctx context.Context, branch domain.BranchName, mainline string) (Status, error) {
	l := log.FromContext(ctx)
	dir := d.root.String()

	if !git.RevisionExists(ctx, dir, mainline) {
		return Status{}, apperr.NewGit("mainline '%s' does not resolve to a commit", mainline)
	}
	if !git.RevisionExists(ctx, dir, branch.Ref()) {
		return Status{}, apperr.NewGit("branch '%s' does not resolve to a commit", branch)
	}

	if git.IsAncestor(ctx, dir, branch.Ref(), mainline) {
		l.Debug("integrated by ancestry", "branch", branch, "mainline", mainline)
		return Status{Integrated: true, Method: domain.MethodMerged}, nil
	}

	lines, err := git.Cherry(ctx, dir, mainline, branch.Ref())
	if err != nil {
		return Status{}, err
	}
	if patchesApplied(lines) {
		l.Debug("integrated by patch equivalence", "branch", branch, "mainline", mainline, "commits", len(lines))
		return Status{Integrated: true, Method: domain.MethodRebase}, nil
	}

	l.Debug("not integrated", "branch", branch, "mainline", mainline)
	return Status{}, nil
}

// patchesApplied reports whether git cherry found an equivalent upstream
// patch ("-") for every commit it listed.
func patchesApplied(lines []string) bool {
	n := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "-") {
			return false
		}
		n++
	}
	return n > 0
}
