// Package picker is the interactive fuzzy worktree selector used when a
// branch argument is omitted on a terminal.
//
// It renders to stderr so stdout stays clean for shell capture, e.g.
// cd "$(wt-core go --print-cd-path)".
package picker

import (
	"context"
	"errors"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/wt-core/internal/domain"
	"github.com/raphi011/wt-core/internal/lifecycle"
	"github.com/raphi011/wt-core/internal/ui/styles"
)

const maxVisible = 10

// Picker implements lifecycle.Picker on top of bubbletea.
type Picker struct{}

// New returns a terminal picker.
func New() *Picker {
	return &Picker{}
}

// Pick shows req's candidates and blocks until the user selects one or
// cancels.
func (p *Picker) Pick(ctx context.Context, req lifecycle.PickRequest) (domain.BranchName, bool, error) {
	m := newModel(req)

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	final, err := prog.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.BranchName{}, false, ctxErr
	}
	if errors.Is(err, tea.ErrInterrupted) {
		return domain.BranchName{}, false, nil
	}
	if err != nil {
		return domain.BranchName{}, false, err
	}

	result := final.(*model)
	if result.cancelled || result.chosen < 0 {
		return domain.BranchName{}, false, nil
	}
	return result.items[result.chosen].branch, true, nil
}

type item struct {
	branch domain.BranchName
	path   string
	dirty  bool
}

type itemSource []item

func (s itemSource) String(i int) string { return s[i].branch.String() }
func (s itemSource) Len() int            { return len(s) }

type model struct {
	title     string
	items     []item
	input     textinput.Model
	matches   []fuzzy.Match
	cursor    int
	chosen    int
	cancelled bool
}

func newModel(req lifecycle.PickRequest) *model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "> "
	ti.SetWidth(40)
	ti.Focus()

	m := &model{title: req.Title, input: ti, chosen: -1}
	for _, wt := range req.Candidates {
		m.items = append(m.items, item{branch: wt.Branch, path: wt.Path, dirty: wt.Dirty})
	}
	m.setFilter("")

	if !req.Preselect.IsZero() {
		for i, match := range m.matches {
			if m.items[match.Index].branch == req.Preselect {
				m.cursor = i
				break
			}
		}
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		if len(m.matches) == 0 {
			return m, nil
		}
		m.chosen = m.matches[m.cursor].Index
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.setFilter(m.input.Value())
	return m, cmd
}

// setFilter recomputes matches. An empty filter keeps the original order;
// otherwise matches are ranked best first.
func (m *model) setFilter(filter string) {
	if filter == "" {
		m.matches = make([]fuzzy.Match, len(m.items))
		for i, it := range m.items {
			m.matches[i] = fuzzy.Match{Str: it.branch.String(), Index: i}
		}
	} else {
		m.matches = fuzzy.FindFrom(filter, itemSource(m.items))
	}
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

func (m *model) View() tea.View {
	if m.chosen >= 0 || m.cancelled {
		return tea.NewView("")
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(styles.TitleStyle.Render(m.title) + "\n")
	}
	b.WriteString(m.input.View() + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.matches))

	for i := start; i < end; i++ {
		match := m.matches[i]
		it := m.items[match.Index]

		prefix := "  "
		if i == m.cursor {
			prefix = styles.AccentStyle.Render("> ")
		}
		line := prefix + renderLabel(it.branch.String(), match.MatchedIndexes, i == m.cursor)
		if it.dirty {
			line += " " + styles.WarningStyle.Render("*")
		}
		b.WriteString(line + "  " + styles.MutedStyle.Render(it.path) + "\n")
	}
	if len(m.matches) == 0 {
		b.WriteString(styles.MutedStyle.Render("  no matching worktrees") + "\n")
	}
	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel"))

	return tea.NewView(b.String())
}

// renderLabel highlights the matched characters of label.
func renderLabel(label string, matched []int, selected bool) string {
	if len(matched) == 0 {
		if selected {
			return styles.AccentStyle.Render(label)
		}
		return label
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(label) {
		switch {
		case set[i]:
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		case selected:
			b.WriteString(styles.AccentStyle.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
