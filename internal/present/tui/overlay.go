package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// renderOverlay centres fg over a dimmed base view of termW x termH cells.
func renderOverlay(base, fg string, termW, termH, fgW, fgH int) string {
	if termW <= 0 {
		termW = 80
	}
	if termH <= 0 {
		termH = 24
	}
	x := max(0, (termW-fgW)/2)
	y := max(0, (termH-fgH)/2)

	baseLayer := lipgloss.NewLayer(lipgloss.NewStyle().Faint(true).Render(base)).
		Width(termW).
		Height(termH)
	fgLayer := lipgloss.NewLayer(fg).
		Width(fgW).
		Height(fgH).
		X(x).
		Y(y)

	return lipgloss.NewCanvas(baseLayer, fgLayer).Render()
}
