// Package clients provides the client roster tab with per-client usage.
package clients

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/app"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

// keyMap defines the key bindings specific to the clients tab.
type keyMap struct {
	Enter key.Binding
	Up    key.Binding
	Down  key.Binding
}

// defaultKeyMap returns the default key bindings for the clients tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show records"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the clients tab state.
type Model struct {
	state     *app.State
	table     table.Model
	keys      keyMap
	summaries []models.ClientSummary
	shownSeq  uint64
	width     int
	height    int
}

// New creates a new clients model.
func New(state *app.State) *Model {
	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state: state,
		table: t,
		keys:  defaultKeyMap(),
	}
}

// Init initializes the clients tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the clients tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.SnapshotUpdatedMsg:
		m.updateTableData(msg.Snapshot)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Enter):
			if sel, ok := m.Selected(); ok {
				return m, m.showRecords(sel.ID)
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// showRecords filters the records tab down to one client and switches to it.
func (m *Model) showRecords(clientID string) tea.Cmd {
	criteria := m.state.Criteria()
	criteria.ClientID = clientID
	return tea.Batch(
		app.ChangeFilters(criteria),
		func() tea.Msg { return app.TabSwitchMsg{Tab: app.TabRecords} },
	)
}

// Selected returns the summary under the table cursor.
func (m *Model) Selected() (models.ClientSummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.summaries) {
		return models.ClientSummary{}, false
	}
	return m.summaries[i], true
}

// updateTableData rebuilds the roster from snap, ordered by name.
func (m *Model) updateTableData(snap *app.Snapshot) {
	if snap == nil {
		return
	}
	m.shownSeq = snap.Seq

	summaries := make([]models.ClientSummary, len(snap.Summaries))
	copy(summaries, snap.Summaries)
	sort.SliceStable(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].DisplayName()) < strings.ToLower(summaries[j].DisplayName())
	})
	m.summaries = summaries

	rows := make([]table.Row, 0, len(summaries))
	for _, s := range summaries {
		last := s.LastDate
		if last == "" {
			last = "-"
		}
		rows = append(rows, table.Row{
			s.DisplayName(),
			s.Email,
			strconv.Itoa(s.RecordCount),
			fmt.Sprintf("%.1f", s.TotalUsageGB),
			fmt.Sprintf("%.1f", s.AverageUsageGB()),
			last,
			usage.ClassifyUsage(s.AverageUsageGB()).String(),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func columnsFor(width int) []table.Column {
	nameWidth := min(max(width-86, 18), 30)
	return []table.Column{
		{Title: "Client", Width: nameWidth},
		{Title: "Email", Width: 22},
		{Title: "Records", Width: 7},
		{Title: "Total GB", Width: 9},
		{Title: "Avg GB", Width: 8},
		{Title: "Last", Width: 10},
		{Title: "Level", Width: 7},
	}
}

// SetSize sets the available size for the clients tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-16, 3))
	m.table.SetColumns(columnsFor(width))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Enter,
		m.keys.Up,
		m.keys.Down,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Enter},
		{m.keys.Up, m.keys.Down},
	}
}
