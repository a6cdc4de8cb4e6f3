package tui

import (
	"strings"

	"agent-workflow/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// helpBar renders the one-line key reference shown under the menu.
func helpBar(keys KeyMap, styles theme.Styles) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.ColorInfo).
		Bold(true)

	var parts []string
	for _, b := range []struct{ key, desc string }{
		{keys.Up.Help().Key, keys.Up.Help().Desc},
		{keys.Down.Help().Key, keys.Down.Help().Desc},
		{keys.Number.Help().Key, keys.Number.Help().Desc},
		{keys.Enter.Help().Key, keys.Enter.Help().Desc},
		{keys.Quit.Help().Key, keys.Quit.Help().Desc},
	} {
		parts = append(parts, keyStyle.Render(b.key)+" "+b.desc)
	}

	return styles.HelpBar.Render(strings.Join(parts, "  •  "))
}
