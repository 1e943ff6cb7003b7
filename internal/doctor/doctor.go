package doctor

import (
	"context"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/log"
)

// Options configures a doctor run.
type Options struct {
	// Remote is the default remote checked for existence.
	Remote string
}

// Run inspects the repository at root and returns every finding. If all
// checks pass the report holds a single ok diagnostic.
func Run(ctx context.Context, root domain.RepoRoot, opts Options) (Report, error) {
	l := log.FromContext(ctx)

	wts, err := git.ListWorktrees(ctx, root)
	if err != nil {
		return Report{}, err
	}

	insp := newInspector(ctx, root)
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}

	var diags []Diagnostic
	diags = append(diags, checkRegistry(wts)...)
	diags = append(diags, checkBranches(ctx, insp, root, wts)...)

	orphans, err := checkOrphans(root, wts)
	if err != nil {
		l.Debug("orphan scan failed", "dir", root.WorktreesDir(), "err", err)
		diags = append(diags, Diagnostic{
			Level:    LevelWarn,
			Category: CategoryOrphan,
			Path:     root.WorktreesDir(),
			Message:  "could not read worktrees directory: " + err.Error(),
		})
	}
	diags = append(diags, orphans...)
	diags = append(diags, checkRemote(ctx, insp, remote)...)

	if len(diags) == 0 {
		diags = append(diags, Diagnostic{Level: LevelOK, Message: "all worktrees healthy"})
	}
	l.Debug("doctor finished", "repo", root, "diagnostics", len(diags))
	return Report{RepoRoot: root, Diagnostics: diags}, nil
}
