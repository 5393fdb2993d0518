package info

import (
	"fmt"
	"net/url"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/config"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	// Title
	sections = append(sections, m.renderTitle())

	// Data source card
	sections = append(sections, m.renderSourceCard())

	// Configuration card
	sections = append(sections, m.renderConfigCard())

	// About card
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Data source, configuration and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// renderSourceCard describes where usage data comes from.
func (m *Model) renderSourceCard() string {
	rows := []string{styles.CardTitleStyle.Render("Data Source"), ""}

	if m.config == nil {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	} else {
		source := string(m.config.Source)
		if m.config.IsDemo() {
			source += " " + styles.BadgeDefaultStyle.Render("DEMO")
		}
		rows = append(rows,
			m.renderConfigRow("Source", source),
			m.renderConfigRow("Location", sourceLocation(m.config)),
		)
	}

	if snap := m.state.Snapshot(); snap != nil {
		rows = append(rows,
			m.renderConfigRow("Clients", fmt.Sprintf("%d", len(snap.Clients))),
			m.renderConfigRow("Records", fmt.Sprintf("%d", len(snap.Records))),
			m.renderConfigRow("Last Refresh", snap.FetchedAt.Local().Format("2006-01-02 15:04:05")),
		)
	}
	if err := m.state.LastError(); err != nil {
		rows = append(rows, "", styles.ErrorTextStyle.Render(err.Error()))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// sourceLocation names the backend without leaking credentials.
func sourceLocation(cfg *config.Config) string {
	switch cfg.Source {
	case config.SourceSupabase:
		return cfg.SupabaseURL
	case config.SourcePostgres:
		u, err := url.Parse(cfg.PostgresDSN)
		if err != nil || u.Host == "" {
			return "(connection string)"
		}
		return u.Redacted()
	case config.SourceSQLite:
		return cfg.DatabasePath
	default:
		return "built-in sample data"
	}
}

// renderConfigCard renders the configuration paths card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		notifications := "off"
		if m.config.Notifications {
			notifications = "on"
		}
		refresh := "manual"
		if m.config.RefreshInterval > 0 {
			refresh = m.config.RefreshInterval.String()
		}

		rows = append(rows, m.renderConfigRow("Export Directory", m.config.ExportDir))
		rows = append(rows, m.renderConfigRow("Log File", m.config.LogFile))
		rows = append(rows, m.renderConfigRow("Auto Refresh", refresh))
		rows = append(rows, m.renderConfigRow("Fetch Timeout", m.config.FetchTimeout.String()))
		rows = append(rows, m.renderConfigRow("Notifications", notifications))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("Press 'c' to copy the export directory"))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Zuba Usage Dashboard"))
	rows = append(rows, "")

	rows = append(rows, m.renderConfigRow("Version", version.Short()))
	rows = append(rows, m.renderConfigRow("Git Commit", version.Commit))
	rows = append(rows, m.renderConfigRow("Build Date", version.Date))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
