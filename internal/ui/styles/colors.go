package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors as AdaptiveColor{Light, Dark}
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusPending = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	SelectedRowBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}

	PowerOn  = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	PowerOff = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
)

// Accent is the highlight for the active tab and the selected control. It
// is replaced at startup by SetAccent.
var Accent lipgloss.TerminalColor = lipgloss.Color("#447EFF")

// SetAccent applies the configured accent color and rebuilds the styles
// that depend on it.
func SetAccent(hex string) {
	if hex == "" {
		return
	}
	Accent = lipgloss.Color(hex)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	ActiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(Accent).Bold(true).Padding(0, 1)
}

// PowerColor returns the indicator color for an instrument power state.
func PowerColor(on bool) lipgloss.AdaptiveColor {
	if on {
		return PowerOn
	}
	return PowerOff
}
