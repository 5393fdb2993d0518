package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Loading usage data...")
	if s.Label() != "Loading usage data..." {
		t.Errorf("Label = %s, want the new label", s.Label())
	}
	if got := ansi.Strip(s.View()); got != "▁█" {
		t.Errorf("View = %q, want the kit gauges at their first frames", got)
	}
	if !strings.Contains(s.ViewWithLabel(), "Loading usage data...") {
		t.Error("ViewWithLabel should include the label")
	}
	if s.Init() == nil {
		t.Error("Init should return command")
	}
	if _, cmd := s.Update(spinner.TickMsg{}); cmd == nil {
		t.Error("Update should return command for tick")
	}
	if RenderSpinnerCentered(s, 30, 5) == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func TestSpinner_GaugesMoveOutOfPhase(t *testing.T) {
	s := NewSpinner("Loading")
	s, _ = s.Update(spinner.TickMsg{})

	if got := ansi.Strip(s.View()); got != "▂▇" {
		t.Errorf("View after one tick = %q, want %q", got, "▂▇")
	}
}

func TestMonthlySeries(t *testing.T) {
	s := MonthlySeries([]models.MonthlyBucket{
		{Month: "Feb 2025", Kit1: 78, Kit2: 56, Total: 134},
		{Month: "Jun 2025", Kit1: 107, Kit2: 135, Total: 242},
	})

	if len(s.Labels) != 2 || s.Labels[0] != "Feb 2025" {
		t.Errorf("Labels = %v", s.Labels)
	}
	if s.Total[1] != 242 || s.Kit2[0] != 56 {
		t.Errorf("series = %+v", s)
	}
}

func TestDailySeries(t *testing.T) {
	s := DailySeries([]models.DailyPoint{{Label: "Jun 19", Kit1: 1, Kit2: 2, Total: 3}})
	if s.Labels[0] != "Jun 19" || s.Total[0] != 3 {
		t.Errorf("series = %+v", s)
	}
}

func TestRenderUsageChart(t *testing.T) {
	tests := []struct {
		name   string
		series UsageSeries
		want   string
	}{
		{"Empty", UsageSeries{}, noData},
		{"SinglePoint", UsageSeries{Labels: []string{"Jun 2025"}, Kit1: []float64{1}, Kit2: []float64{2}, Total: []float64{3}}, "Jun 2025"},
		{
			"Many",
			UsageSeries{
				Labels: []string{"Feb 2025", "Mar 2025", "Jun 2025"},
				Kit1:   []float64{78, 39, 107},
				Kit2:   []float64{56, 29, 135},
				Total:  []float64{134, 68, 242},
			},
			"Jun 2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderUsageChart(tt.series, 40, 6, "Monthly usage"))
			if !strings.Contains(got, tt.want) {
				t.Errorf("chart missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestRenderAxisLabels(t *testing.T) {
	if RenderAxisLabels(nil, 20) != "" {
		t.Error("no labels should render nothing")
	}
	got := ansi.Strip(RenderAxisLabels([]string{"Jan 15", "Feb 01", "Jun 26"}, 20))
	if !strings.HasPrefix(got, "Jan 15") || !strings.HasSuffix(got, "Jun 26") || strings.Contains(got, "Feb") {
		t.Errorf("RenderAxisLabels = %q", got)
	}
	if lipgloss.Width(got) != 20 {
		t.Errorf("width = %d, want 20", lipgloss.Width(got))
	}
}

func TestRenderBarChart(t *testing.T) {
	if RenderBarChart(nil, nil, 20) != "" {
		t.Error("empty values should render nothing")
	}
	got := ansi.Strip(RenderBarChart([]float64{10, 20}, []string{"A", "Bee"}, 30))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "  A │") || !strings.HasSuffix(lines[1], " 20.0") {
		t.Errorf("unexpected bar chart:\n%s", got)
	}
	if strings.Count(lines[1], "█") <= strings.Count(lines[0], "█") {
		t.Error("larger value should draw a longer bar")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 5, 10}, 10); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want %q", got, "▁▄█")
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty values should render nothing")
	}
}

func TestRenderLegend(t *testing.T) {
	got := ansi.Strip(UsageLegend())
	for _, want := range []string{"Kit 1", "Kit 2", "Total"} {
		if !strings.Contains(got, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}

func TestRenderUsageBadge(t *testing.T) {
	tests := []struct {
		total float64
		want  string
	}{
		{0, "None"},
		{50, "Low"},
		{50.01, "Medium"},
		{100, "Medium"},
		{100.01, "High"},
	}
	for _, tt := range tests {
		if got := ansi.Strip(RenderUsageBadge(tt.total)); strings.TrimSpace(got) != tt.want {
			t.Errorf("RenderUsageBadge(%v) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestRenderStatCards(t *testing.T) {
	stats := models.UsageStats{TotalClients: 3, TotalUsageGB: 1015, CurrentMonthUsageGB: 488, AverageUsageGB: 338.333}

	got := ansi.Strip(RenderStatCards(stats, 200))
	for _, want := range []string{"Total Clients", "3", "1015.0 GB", "488.0 GB", "338.3 GB", "Average per Client"} {
		if !strings.Contains(got, want) {
			t.Errorf("stat cards missing %q", want)
		}
	}

	narrow := RenderStatCards(stats, 30)
	if lipgloss.Width(narrow) > 30 {
		t.Errorf("narrow layout width = %d, want <= 30", lipgloss.Width(narrow))
	}
}

func TestRenderChips(t *testing.T) {
	if RenderChips(nil) != "" {
		t.Error("no chips should render nothing")
	}
	got := ansi.Strip(RenderChips([]models.FilterChip{{Label: "Client", Value: "Bank of Kigali"}}))
	if !strings.Contains(got, "Client: Bank of Kigali") {
		t.Errorf("RenderChips = %q", got)
	}
}

func TestProjectionBar(t *testing.T) {
	bar := NewProjectionBar(20)
	bar.SetWidth(30)

	got := ansi.Strip(bar.View(models.MonthProjection{SoFarGB: 488, ProjectedGB: 697.1, DaysElapsed: 21, DaysInMonth: 30}))
	if !strings.Contains(got, "488.0 GB of 697.1 GB projected (day 21/30)") {
		t.Errorf("projection caption missing:\n%s", got)
	}
	if ansi.Strip(bar.View(models.MonthProjection{})) == "" {
		t.Error("zero projection should still render")
	}
}

func TestRenderShareBar(t *testing.T) {
	got := ansi.Strip(RenderShareBar(25, 100, 8))
	if got != "██░░░░░░" {
		t.Errorf("RenderShareBar = %q", got)
	}
	if ansi.Strip(RenderShareBar(5, 0, 4)) != "░░░░" {
		t.Error("zero total should render an empty bar")
	}
	if RenderShareBar(1, 1, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestHexToRGB(t *testing.T) {
	if got := hexToRGB("#51cf66"); got != [3]int{0x51, 0xcf, 0x66} {
		t.Errorf("hexToRGB = %v", got)
	}
	if got := hexToRGB("bad"); got != [3]int{} {
		t.Errorf("hexToRGB(bad) = %v", got)
	}
	if got := interpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("interpolateColor = %q", got)
	}
}
