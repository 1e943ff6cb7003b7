package lifecycle

import (
	"context"
	"os"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/integration"
	"github.com/raphi011/wt-core/internal/log"
)

// Options configures an Engine.
type Options struct {
	// Remote is used for tracking branches, mainline detection and push.
	Remote string
	// Mainline pins the mainline branch. Zero means auto-detect.
	Mainline domain.BranchName
	// Cwd is the directory used for current-worktree inference.
	Cwd string
	// Interactive enables the picker for omitted branch arguments.
	Interactive bool
	Picker      Picker
}

// Engine runs lifecycle operations against one repository.
type Engine struct {
	root     domain.RepoRoot
	remote   string
	mainline domain.BranchName
	cwd      string
	interact bool
	picker   Picker
	detector *integration.Detector
}

// New returns an engine for the repository at root.
func New(root domain.RepoRoot, opts Options) *Engine {
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}
	cwd := opts.Cwd
	if cwd == "" {
		cwd = root.String()
	}
	return &Engine{
		root:     root,
		remote:   remote,
		mainline: opts.Mainline,
		cwd:      domain.Canonicalize(cwd),
		interact: opts.Interactive && opts.Picker != nil,
		picker:   opts.Picker,
		detector: integration.NewDetector(root),
	}
}

// Root returns the repository root the engine operates on.
func (e *Engine) Root() domain.RepoRoot {
	return e.root
}

// worktrees reads the registry fresh.
func (e *Engine) worktrees(ctx context.Context) ([]domain.Worktree, error) {
	wts, err := git.ListWorktrees(ctx, e.root)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("listed worktrees", "repo", e.root, "count", len(wts))
	return wts, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
