package display

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/mcdev12/nego/go/internal/auction/ui"
)

// Breaker is implemented by status panels that own the current line
type Breaker interface {
	Break()
}

// Prompt prints notifications and, when it waits, blocks until the user
// presses Enter. It stands in for the modal dialogs of the web panels.
type Prompt struct {
	mu          sync.Mutex
	out         io.Writer
	in          io.Reader
	wait        bool
	interactive bool
	panel       Breaker

	// One reader goroutine owns in for the life of the Prompt
	readOnce sync.Once
	lines    chan error
}

// NewPrompt creates a notifier. wait only takes effect when in is a terminal.
func NewPrompt(out io.Writer, in io.Reader, wait bool) *Prompt {
	p := &Prompt{out: out, in: in, wait: wait}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.interactive = true
	}
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		p.wait = false
	}
	return p
}

// SetPanel makes notifications start below the status line of panel
func (p *Prompt) SetPanel(panel Breaker) {
	p.panel = panel
}

func (p *Prompt) Notify(ctx context.Context, severity ui.Severity, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.panel != nil {
		p.panel.Break()
	}
	fmt.Fprintln(p.out, p.format(severity, message))

	if !p.wait {
		return nil
	}

	fmt.Fprint(p.out, "Press Enter to continue...")
	p.readOnce.Do(p.startReader)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return ctx.Err()
	case err, ok := <-p.lines:
		if !ok {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		return nil
	}
}

// startReader delivers one value per input line. The channel is closed at
// EOF so later confirmations return at once.
func (p *Prompt) startReader() {
	p.lines = make(chan error)
	go func() {
		defer close(p.lines)
		reader := bufio.NewReader(p.in)
		for {
			_, err := reader.ReadString('\n')
			if err == io.EOF {
				return
			}
			p.lines <- err
			if err != nil {
				return
			}
		}
	}()
}

func (p *Prompt) format(severity ui.Severity, message string) string {
	label := "[" + strings.ToUpper(string(severity)) + "]"
	if !p.interactive {
		return label + " " + message
	}

	color := ColorCyan
	switch severity {
	case ui.SeveritySuccess:
		color = ColorGreen
	case ui.SeverityWarning:
		color = ColorYellow
	case ui.SeverityError:
		color = ColorRed
	}
	return fmt.Sprintf("%s%s%s%s %s", ColorBold, color, label, ColorReset, message)
}
