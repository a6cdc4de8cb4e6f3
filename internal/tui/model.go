// Package tui implements the interactive coordinator menu: the same
// entries as the generated agent-coordinator.sh, as a Bubble Tea program.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"agent-workflow/internal/coordinator"
	"agent-workflow/internal/roles"
	"agent-workflow/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one menu entry.
type Item struct {
	Number      int
	Label       string
	Config      roles.Config
	Parallel    bool
	Provisioned bool
	Branch      string // checked-out branch when git reports the worktree
}

// Choice is what the user picked. Selected is false when the menu was
// dismissed.
type Choice struct {
	Selected bool
	Parallel bool
	Config   roles.Config
}

// Model is the Bubble Tea model for the menu.
type Model struct {
	items  []Item
	cursor int
	choice Choice
	done   bool
	keys   KeyMap
	styles theme.Styles
}

// NewModel builds the menu from reg. worktrees maps worktree paths to the
// branch git reports for them; it may be nil.
func NewModel(reg roles.Registry, worktrees map[string]string) Model {
	var items []Item
	for i, cfg := range reg.Configs() {
		_, err := os.Stat(cfg.Directory)
		items = append(items, Item{
			Number:      i + 1,
			Label:       coordinator.MenuLabel(cfg),
			Config:      cfg,
			Provisioned: err == nil,
			Branch:      worktrees[cfg.Directory],
		})
	}
	n := len(items) + 1
	items = append(items, Item{
		Number:   n,
		Label:    coordinator.ParallelLabel,
		Parallel: true,
	})

	return Model{
		items:  items,
		keys:   DefaultKeyMap(),
		styles: theme.DefaultStyles(),
	}
}

// Items returns the menu entries.
func (m Model) Items() []Item { return m.items }

// Cursor returns the highlighted entry index.
func (m Model) Cursor() int { return m.cursor }

// Choice returns the user's selection once the program has exited.
func (m Model) Choice() Choice { return m.choice }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Enter):
		return m.selectItem(m.cursor)
	case key.Matches(keyMsg, m.keys.Number):
		n, err := strconv.Atoi(keyMsg.String())
		if err == nil && n >= 1 && n <= len(m.items) {
			m.cursor = n - 1
			return m.selectItem(m.cursor)
		}
	}
	return m, nil
}

func (m Model) selectItem(i int) (tea.Model, tea.Cmd) {
	it := m.items[i]
	m.choice = Choice{Selected: true, Parallel: it.Parallel, Config: it.Config}
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.MenuTitle.Render("ESM Platform - Session Coordinator"))
	b.WriteString("\n\nSelect specialized agent workflow:\n\n")

	for i, it := range m.items {
		line := fmt.Sprintf("%d. %s", it.Number, it.Label)
		if !it.Parallel {
			switch {
			case it.Branch != "":
				line += "  [" + it.Branch + "]"
			case !it.Provisioned:
				line += "  (not provisioned)"
			}
		}

		style := m.styles.MenuItem
		switch {
		case i == m.cursor:
			style = m.styles.MenuItemSelected
		case !it.Parallel && !it.Provisioned:
			style = m.styles.MenuItemMissing
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpBar(m.keys, m.styles))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
