package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/wt-core/internal/config"
	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/git"
	"github.com/raphi011/wt-core/internal/lifecycle"
	"github.com/raphi011/wt-core/internal/log"
	"github.com/raphi011/wt-core/internal/ui"
	"github.com/raphi011/wt-core/internal/ui/picker"
)

// addRepoFlag registers --repo on cmd.
func addRepoFlag(cmd *cobra.Command, repo *string) {
	cmd.Flags().StringVar(repo, "repo", "", "Operate on the repository containing this path (default: current directory)")
	cmd.MarkFlagDirname("repo")
}

// openEngine resolves the repository for repoFlag and builds an engine
// with its effective config. interactive enables the picker when the
// terminal allows prompting.
func openEngine(ctx context.Context, repoFlag string, interactive bool) (*lifecycle.Engine, *config.Config, error) {
	s := sessionFromContext(ctx)
	l := log.FromContext(ctx)

	start := repoFlag
	if start == "" {
		start = s.workDir
	}
	root, err := git.ResolveRepoRoot(ctx, start)
	if err != nil {
		return nil, nil, err
	}

	resolver := config.ResolverFromContext(ctx)
	cfg, err := resolver.ConfigForRepo(root.String())
	if err != nil {
		l.Warnf("%v (using global config)", err)
		cfg = resolver.Global()
	}
	l.Debug("opened repository", "root", root, "remote", cfg.Remote, "mainline", cfg.Mainline)

	opts := lifecycle.Options{
		Remote:   cfg.Remote,
		Mainline: cfg.MainlineBranch(),
		Cwd:      s.workDir,
	}
	// The picker draws on the process stderr.
	if interactive && s.stderr == os.Stderr && ui.CanPrompt() {
		opts.Interactive = true
		opts.Picker = picker.New()
	}
	return lifecycle.New(root, opts), cfg, nil
}

// branchArg parses the optional branch argument.
func branchArg(args []string) (domain.BranchName, error) {
	if len(args) == 0 {
		return domain.BranchName{}, nil
	}
	return domain.NewBranchName(args[0])
}

// completeWorktreeBranches completes the branches of registered worktrees.
func completeWorktreeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	start, _ := cmd.Flags().GetString("repo")
	if start == "" {
		start = sessionFromContext(ctx).workDir
	}
	root, err := git.ResolveRepoRoot(ctx, start)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	wts, err := git.ListWorktrees(ctx, root)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, wt := range wts {
		if wt.IsMain || !wt.HasBranch() {
			continue
		}
		if b := wt.Branch.String(); strings.HasPrefix(b, toComplete) {
			matches = append(matches, b)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeLocalBranches completes local branch names, for --base and
// --mainline.
func completeLocalBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	start, _ := cmd.Flags().GetString("repo")
	if start == "" {
		start = sessionFromContext(ctx).workDir
	}
	out, err := git.Run(ctx, start, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, b := range strings.Split(out, "\n") {
		if b != "" && strings.HasPrefix(b, toComplete) {
			matches = append(matches, b)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
