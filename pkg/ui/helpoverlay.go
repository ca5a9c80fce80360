package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// helpRows lists the overlay bindings in display order.
func helpRows(k KeyMap) []key.Binding {
	return []key.Binding{
		k.SizeMode, k.ColorMode, k.DepthUp, k.DepthDown,
		k.ZoomIn, k.ZoomOut, k.Find, k.CopyPath, k.ClearSel,
		k.Rescan, k.Help, k.Quit,
	}
}

// renderHelp draws the key binding overlay shown on "?".
func renderHelp(k KeyMap) string {
	var b strings.Builder
	b.WriteString(HelpKeyStyle.Render("reposcope"))
	b.WriteString(HelpDescStyle.Render("  repository treemap"))
	b.WriteString("\n\n")
	for _, binding := range helpRows(k) {
		h := binding.Help()
		b.WriteString(HelpKeyStyle.Render(padRight(h.Key, 10)))
		b.WriteString(HelpDescStyle.Render(h.Desc))
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(HelpDescStyle.Render("mouse: move to inspect, click to select"))
	return HelpBoxStyle.Render(b.String())
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
