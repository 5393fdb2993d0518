package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/app"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/components"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
)

const chartHeight = 8

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	snap := m.state.Snapshot()
	if snap == nil {
		return m.renderUnavailable()
	}

	sections := []string{
		m.renderTitle(snap),
		components.RenderStatCards(snap.Stats, m.width-4),
		"",
		m.renderMonthlyChart(snap),
		m.renderDailyChart(snap),
		m.renderProjection(snap),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderUnavailable is shown when the first fetch failed.
func (m *Model) renderUnavailable() string {
	msg := "No usage data loaded."
	if err := m.state.LastError(); err != nil {
		msg = err.Error()
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Usage Dashboard"),
		"",
		styles.ErrorTextStyle.Render(msg),
		styles.HelpStyle.Render("Press 'r' to retry."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderTitle(snap *app.Snapshot) string {
	title := styles.TitleStyle.Render("Usage Dashboard")

	subtitle := "Broadband data usage across all clients"
	if !snap.Criteria.IsEmpty() {
		subtitle = fmt.Sprintf("Filtered view: %d matching records", len(snap.Records))
	}
	if !snap.FetchedAt.IsZero() {
		subtitle += " · updated " + snap.FetchedAt.Local().Format("15:04:05")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderMonthlyChart(snap *app.Snapshot) string {
	return m.renderCard("◈", "Monthly Usage",
		components.RenderUsageChart(components.MonthlySeries(snap.Monthly), m.chartWidth(), chartHeight, "GB per month"),
	)
}

func (m *Model) renderDailyChart(snap *app.Snapshot) string {
	caption := fmt.Sprintf("GB per record, last %d", len(snap.Daily))
	return m.renderCard("◈", "Daily Usage",
		components.RenderUsageChart(components.DailySeries(snap.Daily), m.chartWidth(), chartHeight, caption),
	)
}

func (m *Model) renderProjection(snap *app.Snapshot) string {
	p := snap.Projection
	title := "Month-End Projection"
	if p.Month != "" {
		title += " · " + p.Month
	}

	var body string
	if p.SoFarGB == 0 {
		body = styles.HelpStyle.Render("No usage recorded this month yet.")
	} else {
		body = m.projectionBar.View(p)
	}

	cardWidth := max(m.width-6, 40)
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("▲")
	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render(title)),
			"",
			body,
		),
	)
}

func (m *Model) renderCard(icon, title, body string) string {
	cardWidth := max(m.width-6, 40)
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render(icon)

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render(title)),
			"",
			body,
			"",
			components.UsageLegend(),
		),
	)
}
