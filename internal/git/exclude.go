package git

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/wt-core/internal/domain"
)

// EnsureExcluded adds pattern to the repository's info/exclude file unless
// an identical line is already present. The file is local to the clone and
// never committed.
func EnsureExcluded(ctx context.Context, root domain.RepoRoot, pattern string) error {
	path, err := Run(ctx, root.String(), "rev-parse", "--git-path", "info/exclude")
	if err != nil {
		return err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root.String(), path)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	sc := bufio.NewScanner(strings.NewReader(string(existing)))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == pattern {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	prefix := ""
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		prefix = "\n"
	}
	if _, err := fmt.Fprintf(f, "%s%s\n", prefix, pattern); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
