// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

// Color definitions for the Zuba theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("33")  // Blue
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Series colors, matching the chart legend
	Kit1  = lipgloss.Color("39")  // Cyan
	Kit2  = lipgloss.Color("42")  // Green
	Total = lipgloss.Color("214") // Amber

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// StatCardStyle is the compact card used for headline figures.
var StatCardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 2).
	MarginRight(1)

// StatLabelStyle styles the caption of a stat card.
var StatLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// StatValueStyle styles the figure of a stat card.
var StatValueStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// FocusedStyle is used for focused input elements.
var FocusedStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// BlurredStyle is used for unfocused input elements.
var BlurredStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// ChipStyle styles an active filter chip.
var ChipStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Background(BgLight).
	Padding(0, 1).
	MarginRight(1)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)

// TableSelectedStyle styles selected table rows.
var TableSelectedStyle = lipgloss.NewStyle().
	Background(BgAccent).
	Foreground(TextPrimary).
	Bold(true)

// Badge styles, one per usage level variant.
var (
	BadgeOutlineStyle = lipgloss.NewStyle().
				Foreground(TextSecondary).
				Padding(0, 1)

	BadgeSecondaryStyle = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Background(BgLight).
				Padding(0, 1)

	BadgeDefaultStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(Primary).
				Padding(0, 1)

	BadgeDestructiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(Error).
				Bold(true).
				Padding(0, 1)
)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// GetBadgeStyle returns the badge style for a usage level.
func GetBadgeStyle(level models.UsageLevel) lipgloss.Style {
	switch level.BadgeVariant() {
	case "destructive":
		return BadgeDestructiveStyle
	case "default":
		return BadgeDefaultStyle
	case "secondary":
		return BadgeSecondaryStyle
	default:
		return BadgeOutlineStyle
	}
}

// GetLevelTextStyle returns a plain text style for a usage level, for
// places where a filled badge would be too loud.
func GetLevelTextStyle(level models.UsageLevel) lipgloss.Style {
	switch level {
	case models.UsageHigh:
		return ErrorTextStyle
	case models.UsageMedium:
		return WarningTextStyle
	case models.UsageLow:
		return SuccessTextStyle
	default:
		return HelpStyle
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
