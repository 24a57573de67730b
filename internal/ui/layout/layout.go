package layout

// Layout holds the computed cell dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Tab bar across the top
	TabBarWidth  int
	TabBarHeight int

	// Middle row panels
	ScopeWidth     int
	ScopeHeight    int
	ControlsWidth  int
	ControlsHeight int

	// Status bar
	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	TabBarRows     = 3
	ScopeColWeight = 0.68
	// Controls never get narrower than their widest row.
	MinControlsWidth = 30
)

// Calculate computes panel dimensions from terminal size.
// Subtracts 1 row for the status bar and the tab bar rows before splitting.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	middleHeight := termHeight - 1 - TabBarRows

	scopeWidth := int(float64(termWidth) * ScopeColWeight)
	if termWidth-scopeWidth < MinControlsWidth {
		scopeWidth = termWidth - MinControlsWidth
	}

	l.TabBarWidth = termWidth
	l.TabBarHeight = TabBarRows
	l.ScopeWidth = scopeWidth
	l.ScopeHeight = middleHeight
	l.ControlsWidth = termWidth - scopeWidth
	l.ControlsHeight = middleHeight
	l.StatusBarWidth = termWidth

	return l
}
