// Package display draws the auction panels on a terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ClearLine   = "\033[2K"
)

const (
	defaultWidth = 80
	separator    = " | "
)

// Terminal is a one-line status panel. On a TTY the line is redrawn in place
// and coloured; otherwise every change is printed as a new line.
type Terminal struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	width       int

	timer         string
	submitEnabled bool
	lowestBid     string
	rank          string
	last          string
}

// NewTerminal creates a panel writing to out
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out, width: defaultWidth}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.interactive = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			t.width = w
		}
	}
	return t
}

func (t *Terminal) ShowTimer(text string, submitEnabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = text
	t.submitEnabled = submitEnabled
	t.redraw()
}

func (t *Terminal) ShowLowestBid(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lowestBid = text
	t.redraw()
}

func (t *Terminal) ShowRank(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rank = text
	t.redraw()
}

// Break ends the status line so other output starts on a fresh line
func (t *Terminal) Break() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.interactive && t.last != "" {
		fmt.Fprintln(t.out)
		t.last = ""
	}
}

// Line returns the current status line without colours
func (t *Terminal) Line() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.line()
}

func (t *Terminal) line() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{t.timer, t.lowestBid, t.rank} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return Fit(strings.Join(parts, separator), t.width-1)
}

func (t *Terminal) redraw() {
	line := t.line()
	if line == t.last {
		return
	}
	t.last = line

	if !t.interactive {
		fmt.Fprintln(t.out, line)
		return
	}

	color := ColorYellow
	if t.submitEnabled {
		color = ColorGreen
	}
	fmt.Fprintf(t.out, "\r%s%s%s%s", ClearLine, color, line, ColorReset)
}

// Fit truncates s to width display cells, accounting for wide runes
func Fit(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
