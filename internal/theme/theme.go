package theme

import "github.com/charmbracelet/lipgloss"

// Color constants for agent-workflow console output.
const (
	ColorPrimary       = lipgloss.Color("#1e3a8a")
	ColorAccent        = lipgloss.Color("#dc2626")
	ColorTextPrimary   = lipgloss.Color("#e5e7eb")
	ColorTextSecondary = lipgloss.Color("#9ca3af")
	ColorInfo          = lipgloss.Color("#60a5fa")
	ColorSuccess       = lipgloss.Color("#22c55e")
	ColorWarning       = lipgloss.Color("#f59e0b")
	ColorError         = lipgloss.Color("#dc2626")
)

// Styles holds every lipgloss style used by the reporter and the menu.
type Styles struct {
	Header    lipgloss.Style
	Rule      lipgloss.Style
	Timestamp lipgloss.Style

	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	RoleName lipgloss.Style

	MenuTitle        lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	MenuItemMissing  lipgloss.Style
	HelpBar          lipgloss.Style
}

// DefaultStyles returns the default set of styles. Callers receive a value
// copy, so mutations stay local.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true),

		Rule: lipgloss.NewStyle().
			Foreground(ColorPrimary),

		Timestamp: lipgloss.NewStyle().
			Foreground(ColorTextSecondary),

		Info: lipgloss.NewStyle().
			Foreground(ColorInfo),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		RoleName: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),

		MenuTitle: lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 2),

		MenuItem: lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			PaddingLeft(2),

		MenuItemSelected: lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorTextPrimary).
			Bold(true).
			PaddingLeft(2),

		MenuItemMissing: lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			PaddingLeft(2),

		HelpBar: lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, 1),
	}
}
