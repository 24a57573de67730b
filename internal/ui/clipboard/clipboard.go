package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// Method reports how text reached the clipboard.
type Method string

const (
	Native Method = "clipboard"
	OSC52  Method = "osc52"
)

// Write copies text to the system clipboard. It tries the native clipboard
// (wl-copy, xclip, pbcopy, ...) and falls back to an OSC 52 sequence on
// stderr for SSH and tmux sessions.
func Write(text string) (Method, error) {
	if err := clipboard.WriteAll(text); err == nil {
		return Native, nil
	}
	if err := writeOSC52(os.Stderr, text); err != nil {
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	return OSC52, nil
}

func writeOSC52(w io.Writer, text string) error {
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}
