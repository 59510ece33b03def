package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/flashboil/internal/flash"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(48)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	regimeStyles = map[flash.Regime]lipgloss.Style{
		flash.SurfaceEvaporation: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		flash.NucleateBoiling:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		flash.Fragmented:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		flash.Extinguished:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
	}
)

// RegimeBadge renders the regime name in its color.
func RegimeBadge(r flash.Regime) string {
	style, ok := regimeStyles[r]
	if !ok {
		return r.String()
	}
	return style.Render(strings.ToUpper(strings.ReplaceAll(r.String(), "_", " ")))
}

// ProgressBar renders the remaining-mass bar.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
