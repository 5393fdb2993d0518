package clients

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/app"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/components"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
)

// View renders the clients tab.
func (m *Model) View() string {
	snap := m.state.Snapshot()
	if snap != nil && snap.Seq != m.shownSeq {
		m.updateTableData(snap)
	}

	sections := []string{m.renderTitle()}

	if len(m.summaries) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections,
			styles.CardStyle.Width(max(m.width-6, 60)).Render(m.table.View()),
			m.renderDetail(snap),
		)
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Clients")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d clients on the roster", len(m.summaries)))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderEmptyState() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Clients"),
		"",
		styles.HelpStyle.Render("The client roster is empty."),
		"",
	)
	return styles.CardStyle.Width(max(m.width-6, 40)).Render(content)
}

// renderDetail shows the selected client's share of all usage and a
// sparkline of its records in date order.
func (m *Model) renderDetail(snap *app.Snapshot) string {
	sel, ok := m.Selected()
	if !ok || snap == nil {
		return ""
	}

	cardWidth := max(m.width-6, 60)
	barWidth := max(cardWidth-30, 10)

	share := 0.0
	if snap.Stats.TotalUsageGB > 0 {
		share = sel.TotalUsageGB / snap.Stats.TotalUsageGB * 100
	}

	rows := []string{
		styles.CardTitleStyle.Render(sel.DisplayName()) + "  " + components.RenderUsageBadge(sel.AverageUsageGB()),
		styles.HelpStyle.Render(sel.Email),
		"",
		fmt.Sprintf("Share   %s %5.1f%%", components.RenderShareBar(sel.TotalUsageGB, snap.Stats.TotalUsageGB, barWidth), share),
	}

	if trend := clientTrend(snap.AllRecords, sel.ID); len(trend) > 0 {
		rows = append(rows, fmt.Sprintf("Trend   %s", components.RenderSparkline(trend, barWidth)))
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// clientTrend returns the client's record totals oldest first.
func clientTrend(records []models.UsageRecord, clientID string) []float64 {
	var own []models.UsageRecord
	for _, r := range records {
		if r.ClientID == clientID {
			own = append(own, r)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Date < own[j].Date })

	values := make([]float64, len(own))
	for i, r := range own {
		values[i] = r.TotalUsage
	}
	return values
}
