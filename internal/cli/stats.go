package cli

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-palettepro/internal/analytics"
	"github.com/wethinkt/go-palettepro/internal/i18n"
)

// Stats prints one table row per category report.
func (d *PaletteDisplay) Stats(reports []analytics.Report) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.theme.Primary))
	nameStyle := lipgloss.NewStyle().Width(12)
	colStyle := lipgloss.NewStyle().Width(18)
	numStyle := lipgloss.NewStyle().Width(10)

	var b strings.Builder
	b.WriteString(headerStyle.Render(
		nameStyle.Render(i18n.T("cli.stats.category", "Category")) +
			colStyle.Render(i18n.T("cli.stats.hue", "Hue μ±σ")) +
			colStyle.Render(i18n.T("cli.stats.saturation", "Sat μ (p5-p95)")) +
			colStyle.Render(i18n.T("cli.stats.lightness", "Light μ (p5-p95)")) +
			numStyle.Render(i18n.T("cli.stats.spread", "Spread")) +
			numStyle.Render(i18n.T("cli.stats.distinct", "Distinct")),
	))
	b.WriteByte('\n')

	for _, r := range reports {
		b.WriteString(nameStyle.Render(r.Category))
		b.WriteString(colStyle.Render(fmt.Sprintf("%.0f±%.0f", r.Hue.Mean, r.Hue.StdDev)))
		b.WriteString(colStyle.Render(fmt.Sprintf("%.0f (%.0f-%.0f)", r.Saturation.Mean, r.Saturation.P05, r.Saturation.P95)))
		b.WriteString(colStyle.Render(fmt.Sprintf("%.0f (%.0f-%.0f)", r.Lightness.Mean, r.Lightness.P05, r.Lightness.P95)))
		b.WriteString(numStyle.Render(fmt.Sprintf("%.1f", r.Spread)))
		b.WriteString(numStyle.Render(fmt.Sprintf("%d/%d", r.Distinct, r.Colors)))
		b.WriteByte('\n')
	}
	d.print(b.String())
}
