package ui

import "github.com/charmbracelet/lipgloss"

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent colors and visual language for the map TUI
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg      = lipgloss.Color("#282A36")
	ColorBgDark  = lipgloss.Color("#1E1F29")
	ColorText    = lipgloss.Color("#F8F8F2")
	ColorSubtext = lipgloss.Color("#BFBFBF")
	ColorMuted   = lipgloss.Color("#6272A4")

	// Accent colors
	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorAccent  = lipgloss.Color("#FFB86C")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorDanger  = lipgloss.Color("#FF5555")
)

var (
	// HeaderStyle renders the top bar with the repo name and active modes.
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorText).
			Bold(true).
			Padding(0, 1)

	// HeaderModeStyle highlights the active size/color mode in the header.
	HeaderModeStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorPrimary)

	// StatusStyle renders the bottom status bar.
	StatusStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorSubtext).
			Padding(0, 1)

	// StatusPathStyle highlights the hovered/selected path in the status bar.
	StatusPathStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorInfo)

	// HelpBoxStyle frames the help overlay.
	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Background(ColorBg).
			Padding(1, 2)

	// HelpKeyStyle and HelpDescStyle format one binding row.
	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorSubtext)

	// FinderBoxStyle frames the fuzzy file finder.
	FinderBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorInfo).
			Background(ColorBg).
			Padding(0, 1)

	// FinderMatchStyle marks the highlighted finder row.
	FinderMatchStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	FinderRowStyle   = lipgloss.NewStyle().Foreground(ColorSubtext)
)
