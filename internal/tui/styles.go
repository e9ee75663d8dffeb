package tui

import "github.com/charmbracelet/lipgloss"

// Static styles shared by every theme
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Theme holds the board styles that change with the configured theme
type Theme struct {
	FaceUp   lipgloss.Style
	FaceDown lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Label    lipgloss.Style
	Pane     lipgloss.Style
}

// ThemeFor returns the named theme, falling back to "default"
func ThemeFor(name string) Theme {
	switch name {
	case "light":
		return Theme{
			FaceUp:   lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Bold(true),
			FaceDown: lipgloss.NewStyle().Foreground(lipgloss.Color("#3A6EA5")),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3A6EA5")).Bold(true),
			Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B")).Bold(true),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7F8C8D")),
			Pane:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7F8C8D")),
		}
	case "dark":
		return Theme{
			FaceUp:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0")).Bold(true),
			FaceDown: lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFD700")).Bold(true),
			Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")),
			Pane:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4A4A4A")),
		}
	default:
		return Theme{
			FaceUp:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
			FaceDown: lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#04B575")).Bold(true),
			Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
			Pane:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#626262")),
		}
	}
}
