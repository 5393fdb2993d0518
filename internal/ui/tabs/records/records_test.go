package records

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/app"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services/demo"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

var fetchedAt = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func loadedState(t *testing.T, criteria models.FilterCriteria) *app.State {
	t.Helper()
	records := usage.ApplyFilters(demo.Records(), criteria)

	state := app.NewState()
	state.BeginFetch(1, criteria)
	snap := app.NewSnapshot(services.FetchResult{
		Seq:        1,
		Criteria:   criteria,
		Clients:    demo.Clients(),
		Records:    records,
		AllRecords: demo.Records(),
		FetchedAt:  fetchedAt,
	}, fetchedAt)
	if !state.SetSnapshot(snap) {
		t.Fatal("snapshot rejected")
	}
	return state
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.CapturingInput() {
		t.Error("form should start closed")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_OpenAndCancelForm(t *testing.T) {
	m := New(loadedState(t, models.FilterCriteria{ClientID: "2", MinUsage: models.Float(50)}))

	m.Update(runes("/"))
	if !m.CapturingInput() {
		t.Fatal("'/' should open the filter form")
	}
	if got := m.inputs[fieldClient].Value(); got != "2" {
		t.Errorf("client input = %q, want the active criterion", got)
	}
	if got := m.inputs[fieldMin].Value(); got != "50" {
		t.Errorf("min input = %q, want 50", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focused != fieldStart {
		t.Errorf("focused = %d, want start date", m.focused)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focused != fieldMax {
		t.Errorf("focused = %d, want wrap to max", m.focused)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.CapturingInput() {
		t.Error("esc should close the form")
	}
}

func TestModel_ApplyInvalidInput(t *testing.T) {
	m := New(loadedState(t, models.FilterCriteria{}))
	m.Update(runes("f"))

	m.inputs[fieldStart].SetValue("2025-13-40")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("invalid input must not trigger a fetch")
	}
	if !m.CapturingInput() {
		t.Error("form should stay open on validation error")
	}
	if !strings.Contains(m.formErr, "YYYY-MM-DD") {
		t.Errorf("formErr = %q", m.formErr)
	}

	m.SetSize(100, 40)
	if !strings.Contains(ansi.Strip(m.View()), "Please use YYYY-MM-DD") {
		t.Error("validation error should render inline")
	}
}

func TestModel_ApplyFilters(t *testing.T) {
	m := New(loadedState(t, models.FilterCriteria{}))
	m.Update(runes("/"))

	m.inputs[fieldClient].SetValue("bank of kigali")
	m.inputs[fieldStart].SetValue("2025-06-01")
	m.inputs[fieldMax].SetValue("150")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := runCmd(t, cmd).(app.FiltersChangedMsg)
	if !ok {
		t.Fatalf("expected FiltersChangedMsg, got %T", msg)
	}
	c := msg.Criteria
	if c.ClientID != "1" || c.StartDate != "2025-06-01" || c.MaxUsage == nil || *c.MaxUsage != 150 {
		t.Errorf("criteria = %+v", c)
	}
	if c.MinUsage != nil || c.EndDate != "" {
		t.Errorf("blank fields should stay unconstrained: %+v", c)
	}
	if m.CapturingInput() {
		t.Error("form should close after applying")
	}
}

func TestModel_TypingGoesToFocusedInput(t *testing.T) {
	m := New(loadedState(t, models.FilterCriteria{}))
	m.Update(runes("/"))
	m.Update(runes("3"))

	if got := m.inputs[fieldClient].Value(); got != "3" {
		t.Errorf("client input = %q, want 3", got)
	}
}

func TestModel_ClearFilters(t *testing.T) {
	t.Run("NoFilters", func(t *testing.T) {
		m := New(loadedState(t, models.FilterCriteria{}))
		_, cmd := m.Update(runes("c"))

		msg, ok := runCmd(t, cmd).(app.AddNotificationMsg)
		if !ok || msg.Message != "No filters to clear" {
			t.Errorf("got %#v", msg)
		}
	})

	t.Run("ActiveFilters", func(t *testing.T) {
		m := New(loadedState(t, models.FilterCriteria{ClientID: "1"}))
		_, cmd := m.Update(runes("c"))

		msg, ok := runCmd(t, cmd).(app.FiltersChangedMsg)
		if !ok {
			t.Fatalf("expected FiltersChangedMsg, got %T", msg)
		}
		if !msg.Criteria.IsEmpty() {
			t.Errorf("criteria = %+v, want empty", msg.Criteria)
		}
	})
}

func TestModel_TableRows(t *testing.T) {
	state := loadedState(t, models.FilterCriteria{})
	m := New(state)
	m.Update(app.SnapshotUpdatedMsg{Snapshot: state.Snapshot()})

	rows := m.table.Rows()
	if len(rows) != 9 {
		t.Fatalf("rows = %d, want 9", len(rows))
	}

	var found bool
	for _, r := range rows {
		if r[0] == "Jan 15, 2025" {
			found = true
			if r[1] != "Rwanda Development Board" {
				t.Errorf("client = %q", r[1])
			}
		}
		if !strings.Contains(r[4], ".") {
			t.Errorf("total %q should have one decimal", r[4])
		}
	}
	if !found {
		t.Error("missing the Jan 15, 2025 record")
	}
}

func TestModel_View(t *testing.T) {
	m := New(loadedState(t, models.FilterCriteria{ClientID: "1"}))
	m.SetSize(120, 40)

	view := ansi.Strip(m.View())
	for _, want := range []string{"Usage Records", "6 records", "Client: Bank of Kigali", "Date", "Level"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_View_NoMatches(t *testing.T) {
	m := New(loadedState(t, models.FilterCriteria{MinUsage: models.Float(10000)}))
	m.SetSize(100, 30)

	if !strings.Contains(ansi.Strip(m.View()), "No records match the active filters.") {
		t.Error("empty filtered view should say so")
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2025-06-26": "Jun 26, 2025",
		"2025-01-05": "Jan 05, 2025",
		"yesterday":  "yesterday",
		"":           "",
	}
	for in, want := range tests {
		if got := formatDate(in); got != want {
			t.Errorf("formatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
