package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/styles"
)

var (
	gaugeFill = spinner.Spinner{
		Frames: []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█", "▇", "▆", "▅", "▄", "▃", "▂"},
		FPS:    time.Second / 14,
	}
	// Kit 2 drains while kit 1 fills.
	gaugeDrain = spinner.Spinner{
		Frames: []string{"█", "▇", "▆", "▅", "▄", "▃", "▂", "▁", "▂", "▃", "▄", "▅", "▆", "▇"},
		FPS:    time.Second / 14,
	}
)

// LoadingSpinner is the usage loading indicator: two kit gauges filling
// out of phase, followed by a label.
type LoadingSpinner struct {
	kit1  spinner.Model
	kit2  spinner.Model
	label string
	style lipgloss.Style
}

// NewSpinner creates a loading spinner with the given label.
func NewSpinner(label string) LoadingSpinner {
	return LoadingSpinner{
		kit1: spinner.New(
			spinner.WithSpinner(gaugeFill),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Kit1)),
		),
		kit2: spinner.New(
			spinner.WithSpinner(gaugeDrain),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Kit2)),
		),
		label: label,
		style: lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

// Init starts both gauges.
func (l LoadingSpinner) Init() tea.Cmd {
	return tea.Batch(l.kit1.Tick, l.kit2.Tick)
}

// Update advances whichever gauge the tick belongs to.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd1, cmd2 tea.Cmd
	l.kit1, cmd1 = l.kit1.Update(msg)
	l.kit2, cmd2 = l.kit2.Update(msg)
	return l, tea.Batch(cmd1, cmd2)
}

// View renders the gauges without label.
func (l LoadingSpinner) View() string {
	return l.kit1.View() + l.kit2.View()
}

// ViewWithLabel renders the gauges with the label.
func (l LoadingSpinner) ViewWithLabel() string {
	return l.View() + " " + l.style.Render(l.label)
}

// SetLabel updates the label.
func (l *LoadingSpinner) SetLabel(label string) {
	l.label = label
}

// Label returns the current label.
func (l LoadingSpinner) Label() string {
	return l.label
}

// RenderSpinnerCentered renders the spinner centered in width x height.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.ViewWithLabel(), width, height)
}
