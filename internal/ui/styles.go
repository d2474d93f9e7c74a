package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/edumanage/edudash/internal/backend"
)

// Colors used throughout the TUI.
var (
	ColorBlue    = lipgloss.Color("#2563EB")
	ColorGreen   = lipgloss.Color("#059669")
	ColorPurple  = lipgloss.Color("#7C3AED")
	ColorOrange  = lipgloss.Color("#EA580C")
	ColorRed     = lipgloss.Color("#DC2626")
	ColorYellow  = lipgloss.Color("#CA8A04")
	ColorGray    = lipgloss.Color("#6B7280")
	ColorDimGray = lipgloss.Color("#374151")
	ColorWhite   = lipgloss.Color("#F9FAFB")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	NavStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	NavActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatValueStyle = lipgloss.NewStyle().
			Bold(true)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	CardBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimGray).
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	ActiveBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	InactiveBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Priority badge styles, keyed off the announcement priority.
var (
	priorityUrgentStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	priorityHighStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	priorityMediumStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	priorityLowStyle    = lipgloss.NewStyle().Foreground(ColorBlue)
)

// PriorityBadge renders a colored tag for an announcement priority.
func PriorityBadge(p backend.Priority) string {
	switch p {
	case backend.PriorityUrgent:
		return priorityUrgentStyle.Render("[URGENT]")
	case backend.PriorityHigh:
		return priorityHighStyle.Render("[HIGH]")
	case backend.PriorityMedium:
		return priorityMediumStyle.Render("[MEDIUM]")
	default:
		return priorityLowStyle.Render("[LOW]")
	}
}
