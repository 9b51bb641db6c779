// Package clipboard copies text out of the terminal.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// Copier tries the native clipboard (pbcopy, xclip, wl-copy) first and falls
// back to an OSC 52 escape written to Fallback, which terminals over SSH and
// tmux still honor.
type Copier struct {
	Native   func(string) error
	Fallback io.Writer
}

// Default writes natively or to stderr.
var Default = Copier{Native: clipboard.WriteAll, Fallback: os.Stderr}

// Write copies text using Default.
func Write(text string) error {
	return Default.Write(text)
}

func (c Copier) Write(text string) error {
	if c.Native != nil {
		if err := c.Native(text); err == nil {
			return nil
		}
	}
	if c.Fallback == nil {
		return fmt.Errorf("clipboard: no native clipboard and no fallback writer")
	}
	return writeOSC52(c.Fallback, text)
}

func writeOSC52(w io.Writer, text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", encoded)
	return err
}
