package doctor

import "github.com/raphi011/wt-core/internal/domain"

// Level is the severity of a diagnostic.
type Level string

const (
	LevelOK    Level = "ok"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Category groups diagnostics by the check that produced them.
type Category string

const (
	// CategoryRegistry is a problem with git's worktree registration.
	CategoryRegistry Category = "registry"
	// CategoryOrphan is a directory on disk git does not track.
	CategoryOrphan Category = "orphan"
	// CategoryBranch is a problem with a worktree's branch or its directory name.
	CategoryBranch Category = "branch"
	// CategoryRemote is a problem with the default remote.
	CategoryRemote Category = "remote"
)

// Diagnostic is one finding.
type Diagnostic struct {
	Level    Level    `json:"level"`
	Category Category `json:"category,omitempty"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

// Report is the outcome of a doctor run.
type Report struct {
	RepoRoot    domain.RepoRoot
	Diagnostics []Diagnostic
}

// Count returns the number of diagnostics at level.
func (r Report) Count(level Level) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level == level {
			n++
		}
	}
	return n
}

// Healthy reports whether no warning or error was found.
func (r Report) Healthy() bool {
	return r.Count(LevelWarn) == 0 && r.Count(LevelError) == 0
}
