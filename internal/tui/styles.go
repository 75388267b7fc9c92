package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - dark theme matching the Pulumi console accent
var (
	primaryColor = lipgloss.Color("#8A3391") // Pulumi purple
	accentColor  = lipgloss.Color("#F7BF2A") // Pulumi yellow
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	textColor    = lipgloss.Color("#F9FAFB") // White
	dimColor     = lipgloss.Color("#9CA3AF") // Light gray
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	borderColor  = lipgloss.Color("#374151") // Border
	surfaceColor = lipgloss.Color("#1F2937") // Surface background
)

var (
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(dimColor).
				Padding(0, 1)

	orgBadgeStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// List rows
	selectedRowStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(surfaceColor).
				Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	headingStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Transcript roles
	userLabelStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	toolLabelStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Italic(true)

	toolErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	approvalStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	systemNoteStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Popups
	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	errorPopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 2)

	popupTitleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Input
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	inputActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	scrollThumbStyle = lipgloss.NewStyle().
				Foreground(primaryColor)

	scrollTrackStyle = lipgloss.NewStyle().
				Foreground(borderColor)

	checkPassStyle = lipgloss.NewStyle().
			Foreground(successColor)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
