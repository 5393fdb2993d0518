// Package records provides the usage records tab: a filter form, the
// active filter chips and the records table.
package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/app"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/components"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

// formField identifies a filter form input.
type formField int

const (
	fieldClient formField = iota
	fieldStart
	fieldEnd
	fieldMin
	fieldMax
	fieldCount
)

var fieldLabels = [fieldCount]string{"Client", "Start date", "End date", "Min GB", "Max GB"}

// tableDateLayout is how record dates are shown in the table.
const tableDateLayout = "Jan 02, 2006"

// keyMap defines the key bindings specific to the records tab.
type keyMap struct {
	Filter    key.Binding
	Clear     key.Binding
	Apply     key.Binding
	NextField key.Binding
	PrevField key.Binding
	Cancel    key.Binding
	Up        key.Binding
	Down      key.Binding
}

// defaultKeyMap returns the default key bindings for the records tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Filter: key.NewBinding(
			key.WithKeys("/", "f"),
			key.WithHelp("/", "filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
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

// Model represents the records tab state.
type Model struct {
	state    *app.State
	table    table.Model
	inputs   [fieldCount]textinput.Model
	spinner  components.LoadingSpinner
	keys     keyMap
	focused  formField
	editing  bool
	formErr  string
	shownSeq uint64
	width    int
	height   int
}

// New creates a new records model.
func New(state *app.State) *Model {
	var inputs [fieldCount]textinput.Model
	placeholders := [fieldCount]string{"id or name", "YYYY-MM-DD", "YYYY-MM-DD", "0", "0"}
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 64
		in.Width = 24
		inputs[i] = in
	}

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
		state:   state,
		table:   t,
		inputs:  inputs,
		spinner: components.NewSpinner("Loading records..."),
		keys:    defaultKeyMap(),
	}
}

// Init initializes the records tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the filter form has focus, so global
// shortcuts are typed into it instead.
func (m *Model) CapturingInput() bool {
	return m.editing
}

// Update handles messages for the records tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if m.editing {
		return m.updateForm(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.SnapshotUpdatedMsg:
		m.updateTableData(msg.Snapshot)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Filter):
			return m, m.openForm()

		case key.Matches(msg, m.keys.Clear):
			return m, m.clearFilters()

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// openForm focuses the filter form, prefilled with the active criteria.
func (m *Model) openForm() tea.Cmd {
	in := usage.Input(m.state.Criteria())
	values := [fieldCount]string{in.ClientID, in.StartDate, in.EndDate, in.MinUsage, in.MaxUsage}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}

	m.editing = true
	m.formErr = ""
	m.focused = fieldClient
	m.table.Blur()
	m.updateFormFocus()
	return textinput.Blink
}

func (m *Model) closeForm() {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.table.Focus()
}

// updateForm handles the filter form.
func (m *Model) updateForm(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.closeForm()
			m.formErr = ""
			return m, nil

		case key.Matches(keyMsg, m.keys.NextField):
			m.focused = (m.focused + 1) % fieldCount
			m.updateFormFocus()
			return m, textinput.Blink

		case key.Matches(keyMsg, m.keys.PrevField):
			m.focused = (m.focused - 1 + fieldCount) % fieldCount
			m.updateFormFocus()
			return m, textinput.Blink

		case key.Matches(keyMsg, m.keys.Apply):
			return m, m.applyFilters()
		}
	}

	if snap, ok := msg.(app.SnapshotUpdatedMsg); ok {
		m.updateTableData(snap.Snapshot)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// applyFilters validates the form. Invalid input keeps the form open
// with the message shown inline and no fetch is issued.
func (m *Model) applyFilters() tea.Cmd {
	in := usage.FilterInput{
		ClientID:  m.resolveClient(m.inputs[fieldClient].Value()),
		StartDate: m.inputs[fieldStart].Value(),
		EndDate:   m.inputs[fieldEnd].Value(),
		MinUsage:  m.inputs[fieldMin].Value(),
		MaxUsage:  m.inputs[fieldMax].Value(),
	}

	criteria, err := usage.ParseFilterInput(in)
	if err != nil {
		m.formErr = err.Error()
		return nil
	}

	m.formErr = ""
	m.closeForm()
	return app.ChangeFilters(criteria)
}

// resolveClient accepts either a client id or a roster name.
func (m *Model) resolveClient(value string) string {
	value = strings.TrimSpace(value)
	snap := m.state.Snapshot()
	if value == "" || snap == nil {
		return value
	}
	for _, c := range snap.Clients {
		if c.ID == value {
			return value
		}
	}
	for _, c := range snap.Clients {
		if strings.EqualFold(c.Name, value) {
			return c.ID
		}
	}
	return value
}

func (m *Model) clearFilters() tea.Cmd {
	if m.state.Criteria().IsEmpty() {
		return app.Notify(app.NotificationInfo, "No filters to clear")
	}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.formErr = ""
	return app.ChangeFilters(models.FilterCriteria{})
}

// updateFormFocus updates which form field is focused.
func (m *Model) updateFormFocus() {
	for i := range m.inputs {
		if formField(i) == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// updateTableData rebuilds the rows from snap.
func (m *Model) updateTableData(snap *app.Snapshot) {
	if snap == nil {
		return
	}
	m.shownSeq = snap.Seq

	rows := make([]table.Row, 0, len(snap.Records))
	for _, r := range snap.Records {
		rows = append(rows, table.Row{
			formatDate(r.Date),
			r.DisplayClient(),
			fmt.Sprintf("%.1f", r.Kit1Usage),
			fmt.Sprintf("%.1f", r.Kit2Usage),
			fmt.Sprintf("%.1f", r.TotalUsage),
			usage.ClassifyUsage(r.TotalUsage).String(),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// formatDate renders a record date for the table, falling back to the
// raw value when it does not parse.
func formatDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(tableDateLayout)
}

func columnsFor(width int) []table.Column {
	clientWidth := min(max(width-64, 16), 36)
	return []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Client", Width: clientWidth},
		{Title: "Kit 1", Width: 9},
		{Title: "Kit 2", Width: 9},
		{Title: "Total", Width: 9},
		{Title: "Level", Width: 8},
	}
}

// SetSize sets the available size for the records tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-14, 3))
	m.table.SetColumns(columnsFor(width))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{m.keys.NextField, m.keys.Apply, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Filter, m.keys.Clear, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Filter, m.keys.Clear},
		{m.keys.Up, m.keys.Down},
		{m.keys.NextField, m.keys.PrevField},
		{m.keys.Apply, m.keys.Cancel},
	}
}
