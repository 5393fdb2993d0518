package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

// RenderUsageBadge renders the level badge for a total usage value.
func RenderUsageBadge(totalGB float64) string {
	level := usage.ClassifyUsage(totalGB)
	return styles.GetBadgeStyle(level).Render(level.String())
}

// RenderStatCard renders a headline figure with its caption.
func RenderStatCard(label, value string, width int) string {
	content := styles.StatLabelStyle.Render(label) + "\n" + styles.StatValueStyle.Render(value)
	style := styles.StatCardStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}

// RenderStatCards lays out cards in a row, or in a column when the row
// would not fit in width.
func RenderStatCards(stats models.UsageStats, width int) string {
	cards := []struct{ label, value string }{
		{"Total Clients", fmt.Sprintf("%d", stats.TotalClients)},
		{"Total Usage", fmt.Sprintf("%.1f GB", stats.TotalUsageGB)},
		{"This Month", fmt.Sprintf("%.1f GB", stats.CurrentMonthUsageGB)},
		{"Average per Client", fmt.Sprintf("%.1f GB", stats.AverageUsageGB)},
	}

	cardWidth := 22
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = RenderStatCard(c.label, c.value, cardWidth)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if width > 0 && lipgloss.Width(row) > width {
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}
	return row
}

// RenderChips renders active filter chips, or an empty string for none.
func RenderChips(chips []models.FilterChip) string {
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = styles.ChipStyle.Render(c.Label + ": " + c.Value)
	}
	return strings.Join(parts, "")
}
