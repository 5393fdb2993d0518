package records

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/app"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/components"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
)

// View renders the records tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	snap := m.state.Snapshot()
	if snap != nil && snap.Seq != m.shownSeq {
		m.updateTableData(snap)
	}

	sections := []string{m.renderTitle(snap)}

	if chips := m.renderChips(snap); chips != "" {
		sections = append(sections, chips, "")
	}
	if m.editing {
		sections = append(sections, m.renderForm())
	}
	sections = append(sections, m.renderTable(snap), m.renderFooter())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle(snap *app.Snapshot) string {
	title := styles.TitleStyle.Render("Usage Records")

	count := 0
	if snap != nil {
		count = len(snap.Records)
	}
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d records", count))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderChips(snap *app.Snapshot) string {
	if snap == nil {
		return ""
	}
	chips := components.RenderChips(snap.Criteria.Chips(snap.ClientName))
	if chips == "" {
		return ""
	}
	return styles.HelpStyle.Render("Filters: ") + chips
}

// renderForm renders the filter form with any validation error inline.
func (m *Model) renderForm() string {
	cardWidth := min(max(m.width-10, 50), 80)

	rows := []string{styles.CardTitleStyle.Render("Filter Records"), ""}

	for i, in := range m.inputs {
		label := fmt.Sprintf("  %-11s", fieldLabels[i]+":")
		if formField(i) == m.focused {
			label = styles.FocusedStyle.Render(fmt.Sprintf("> %-11s", fieldLabels[i]+":"))
		} else {
			label = styles.BlurredStyle.Render(label)
		}
		rows = append(rows, label+" "+in.View())
	}

	if m.formErr != "" {
		rows = append(rows, "", styles.ErrorTextStyle.Render(m.formErr))
	}

	rows = append(rows, "", styles.HelpStyle.Render("tab: next field • enter: apply • esc: cancel"))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderTable(snap *app.Snapshot) string {
	cardWidth := max(m.width-6, 60)

	if snap == nil || len(snap.Records) == 0 {
		msg := "No usage records found."
		if snap != nil && !snap.Criteria.IsEmpty() {
			msg = "No records match the active filters."
		}
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				"",
				styles.SubTitleStyle.Render(msg),
				"",
			),
		)
	}

	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

func (m *Model) renderFooter() string {
	return styles.HelpStyle.Render("/: filter • c: clear filters • e: export CSV")
}
