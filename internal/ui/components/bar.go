package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
)

const (
	barLowColor  = "#51cf66"
	barHighColor = "#ff6b6b"
)

// ProjectionBar renders month-to-date usage against the month-end projection.
type ProjectionBar struct {
	progress progress.Model
}

// NewProjectionBar creates a projection bar of the given width.
func NewProjectionBar(width int) ProjectionBar {
	return ProjectionBar{
		progress: progress.New(
			progress.WithScaledGradient(barLowColor, barHighColor),
			progress.WithWidth(max(width, 10)),
			progress.WithoutPercentage(),
		),
	}
}

// SetWidth resizes the bar.
func (b *ProjectionBar) SetWidth(width int) {
	b.progress.Width = max(width, 10)
}

// View renders the bar with a "so far / projected" caption.
func (b ProjectionBar) View(p models.MonthProjection) string {
	ratio := 0.0
	if p.ProjectedGB > 0 {
		ratio = min(p.SoFarGB/p.ProjectedGB, 1)
	}

	caption := fmt.Sprintf("%.1f GB of %.1f GB projected (day %d/%d)",
		p.SoFarGB, p.ProjectedGB, p.DaysElapsed, p.DaysInMonth)

	return b.progress.ViewAs(ratio) + "\n" + styles.HelpStyle.Render(caption)
}

// RenderShareBar draws value as a share of total using a colour gradient
// that darkens as the share grows.
func RenderShareBar(value, total float64, width int) string {
	if width <= 0 {
		return ""
	}

	ratio := 0.0
	if total > 0 {
		ratio = min(max(value/total, 0), 1)
	}
	filled := int(ratio * float64(width))

	var b strings.Builder
	for i := 0; i < filled; i++ {
		color := interpolateColor(barLowColor, barHighColor, float64(i)/float64(width))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("░", width-filled)))

	return b.String()
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*float64(to[0]-from[0]))
	g := int(float64(from[1]) + t*float64(to[1]-from[1]))
	bl := int(float64(from[2]) + t*float64(to[2]-from[2]))

	return fmt.Sprintf("#%02x%02x%02x", r, g, bl)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return [3]int{0, 0, 0}
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return [3]int{0, 0, 0}
		}
		rgb[i] = int(v)
	}
	return rgb
}
