package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedRowStyle   = lipgloss.NewStyle().Background(SelectedRowBg)

	AccentStyle    = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	ActiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(Accent).Bold(true).Padding(0, 1)
	TabStyle       = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 1)

	// Metadata line above the plot
	MetadataStyle  = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	AxisLabelStyle = lipgloss.NewStyle().Foreground(TextSecondary)
)
