package clients

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
)

func loadedState(t *testing.T) *app.State {
	t.Helper()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	state := app.NewState()
	state.BeginFetch(1, models.FilterCriteria{})
	snap := app.NewSnapshot(services.FetchResult{
		Seq:        1,
		Clients:    demo.Clients(),
		Records:    demo.Records(),
		AllRecords: demo.Records(),
		FetchedAt:  now,
	}, now)
	if !state.SetSnapshot(snap) {
		t.Fatal("snapshot rejected")
	}
	return state
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if _, ok := m.Selected(); ok {
		t.Error("nothing should be selected before data loads")
	}
}

func TestModel_RosterOrderedByName(t *testing.T) {
	state := loadedState(t)
	m := New(state)
	m.Update(app.SnapshotUpdatedMsg{Snapshot: state.Snapshot()})

	rows := m.table.Rows()
	want := []string{"Bank of Kigali", "Rwanda Development Board", "University of Rwanda"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, name := range want {
		if rows[i][0] != name {
			t.Errorf("row %d = %q, want %q", i, rows[i][0], name)
		}
	}

	// Bank of Kigali: 6 records totalling 778 GB, last on 2025-06-26.
	if rows[0][2] != "6" || rows[0][3] != "778.0" || rows[0][5] != "2025-06-26" {
		t.Errorf("Bank of Kigali row = %v", rows[0])
	}
	if rows[0][6] != "High" {
		t.Errorf("level = %q, want High for a 129.7 GB average", rows[0][6])
	}
}

func TestModel_EnterShowsRecords(t *testing.T) {
	state := loadedState(t)
	m := New(state)
	m.Update(app.SnapshotUpdatedMsg{Snapshot: state.Snapshot()})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should return a command")
	}

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch, got %T", cmd())
	}

	var gotFilter, gotSwitch bool
	for _, c := range batch {
		switch msg := c().(type) {
		case app.FiltersChangedMsg:
			gotFilter = msg.Criteria.ClientID == "2"
		case app.TabSwitchMsg:
			gotSwitch = msg.Tab == app.TabRecords
		}
	}
	if !gotFilter || !gotSwitch {
		t.Errorf("filter=%v switch=%v, want both", gotFilter, gotSwitch)
	}
}

func TestModel_View(t *testing.T) {
	m := New(loadedState(t))
	m.SetSize(120, 40)

	view := ansi.Strip(m.View())
	for _, want := range []string{"Clients", "3 clients on the roster", "Bank of Kigali", "it@bk.rw", "Share", "Trend"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_View_Empty(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	if !strings.Contains(ansi.Strip(m.View()), "No Clients") {
		t.Error("empty roster should render the empty state")
	}
}

func TestClientTrend(t *testing.T) {
	got := clientTrend(demo.Records(), "2")
	if len(got) != 2 || got[0] != 68 || got[1] != 134 {
		t.Errorf("clientTrend = %v, want [68 134]", got)
	}
	if len(clientTrend(demo.Records(), "missing")) != 0 {
		t.Error("unknown client should have no trend")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
