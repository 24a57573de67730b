package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/scopesync/internal/run"
	"github.com/justinpbarnett/scopesync/internal/ui/styles"
	"github.com/justinpbarnett/scopesync/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	store      *run.Store
	session    string
	driver     string
	interval   time.Duration
	lastTick   time.Time
	capturing  bool
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(store *run.Store, session, driver string, interval time.Duration) StatusBar {
	if len(session) > 8 {
		session = session[:8]
	}
	return StatusBar{store: store, session: session, driver: driver, interval: interval}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := "scopesync " + Version
	if s.capturing {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame)
		appName = spinner + " " + appName
	}
	version := styles.TextSecondaryStyle.Render(appName)

	cached := lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render(
		fmt.Sprintf("%d cached", s.store.Count()),
	)
	driver := styles.TextSecondaryStyle.Render(fmt.Sprintf("%s · every %s", s.driver, text.FormatElapsed(s.interval)))

	left := " " + version + sep + styles.TextSecondaryStyle.Render("session "+s.session) + sep + cached + sep + driver
	if !s.lastTick.IsZero() {
		left += sep + styles.TextSecondaryStyle.Render("captured "+s.lastTick.Format("15:04:05"))
	}

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	if s.width > 0 {
		left = text.Truncate(left, max(s.width-lipgloss.Width(right)-1, 1))
	}
	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

// SetCapturing shows the spinner while a live capture is in flight.
func (s *StatusBar) SetCapturing(on bool) {
	s.capturing = on
}

func (s *StatusBar) SetLastCapture(t time.Time) {
	s.lastTick = t
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
