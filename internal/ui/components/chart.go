// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
)

const noData = "No data available"

// UsageSeries holds the three plotted usage lines.
type UsageSeries struct {
	Labels []string
	Kit1   []float64
	Kit2   []float64
	Total  []float64
}

// MonthlySeries converts month buckets into chart series.
func MonthlySeries(buckets []models.MonthlyBucket) UsageSeries {
	s := UsageSeries{
		Labels: make([]string, len(buckets)),
		Kit1:   make([]float64, len(buckets)),
		Kit2:   make([]float64, len(buckets)),
		Total:  make([]float64, len(buckets)),
	}
	for i, b := range buckets {
		s.Labels[i] = b.Month
		s.Kit1[i] = b.Kit1
		s.Kit2[i] = b.Kit2
		s.Total[i] = b.Total
	}
	return s
}

// DailySeries converts daily points into chart series.
func DailySeries(points []models.DailyPoint) UsageSeries {
	s := UsageSeries{
		Labels: make([]string, len(points)),
		Kit1:   make([]float64, len(points)),
		Kit2:   make([]float64, len(points)),
		Total:  make([]float64, len(points)),
	}
	for i, p := range points {
		s.Labels[i] = p.Label
		s.Kit1[i] = p.Kit1
		s.Kit2[i] = p.Kit2
		s.Total[i] = p.Total
	}
	return s
}

// RenderUsageChart plots Kit 1, Kit 2 and Total as a three-line chart with
// the first and last labels underneath.
func RenderUsageChart(s UsageSeries, width, height int, caption string) string {
	if len(s.Total) == 0 {
		return styles.HelpStyle.Render(noData)
	}

	width = max(width, 20)
	height = max(height, 3)

	kit1, kit2, total := s.Kit1, s.Kit2, s.Total
	// asciigraph needs at least two points to draw a line
	if len(total) == 1 {
		kit1 = []float64{kit1[0], kit1[0]}
		kit2 = []float64{kit2[0], kit2[0]}
		total = []float64{total[0], total[0]}
	}

	graph := asciigraph.PlotMany([][]float64{kit1, kit2, total},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Cyan,
			asciigraph.Green,
			asciigraph.Yellow,
		),
	)

	return graph + "\n" + RenderAxisLabels(s.Labels, lipgloss.Width(firstLine(graph)))
}

// RenderAxisLabels spreads the first and last labels across width.
func RenderAxisLabels(labels []string, width int) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return styles.HelpStyle.Render(labels[0])
	}
	first, last := labels[0], labels[len(labels)-1]
	gap := max(width-lipgloss.Width(first)-lipgloss.Width(last), 1)
	return styles.HelpStyle.Render(first + strings.Repeat(" ", gap) + last)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// UsageLegend is the legend shared by every usage chart.
func UsageLegend() string {
	return RenderLegend([]LegendItem{
		{Label: "Kit 1", Color: styles.Kit1},
		{Label: "Kit 2", Color: styles.Kit2},
		{Label: "Total", Color: styles.Total},
	})
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	// Leave room for label and value
	barWidth := max(width-maxLabelLen-10, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		bar := lipgloss.NewStyle().Foreground(styles.Total).Render(strings.Repeat("█", barLen))

		lines = append(lines, fmt.Sprintf("%*s │%s %.1f", maxLabelLen, label, bar, v))
	}

	return strings.Join(lines, "\n")
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
