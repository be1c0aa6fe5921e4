package styles

import (
	"github.com/charmbracelet/lipgloss"

	"appshelf/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// App type colors
	TypeGame        = lipgloss.Color("#60A5FA") // Blue
	TypeApplication = lipgloss.Color("#10B981") // Green
	TypeAddOn       = lipgloss.Color("#EC4899") // Pink
	TypeTool        = lipgloss.Color("#F97316") // Orange
	TypeOther       = lipgloss.Color("#8B5CF6") // Violet

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Row styles
	RowID = lipgloss.NewStyle().
		Foreground(Muted).
		Width(9).
		Align(lipgloss.Right)

	RowName = lipgloss.NewStyle()

	RowUnnamed = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowPlatforms = lipgloss.NewStyle().
			Foreground(Muted)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// TypeColor returns the color used for an app type badge
func TypeColor(t domain.AppType) lipgloss.Color {
	switch t {
	case domain.AppTypeGame, domain.AppTypeDemo:
		return TypeGame
	case domain.AppTypeApplication:
		return TypeApplication
	case domain.AppTypeAddOn:
		return TypeAddOn
	case domain.AppTypeTool:
		return TypeTool
	case domain.AppTypeUnknown:
		return Muted
	default:
		return TypeOther
	}
}

// TypeBadge renders a fixed-width, colored type label
func TypeBadge(t domain.AppType) string {
	return lipgloss.NewStyle().
		Foreground(TypeColor(t)).
		Width(13).
		Render("[" + t.String() + "]")
}
