// Package countdown derives the bidding phase and timer text from an auction
// window and the current wall-clock second. It keeps no state of its own, so
// every tick re-derives the view from scratch.
package countdown

import (
	"fmt"
	"time"

	"github.com/mcdev12/nego/go/internal/locale"
	"github.com/mcdev12/nego/go/internal/models"
)

// Phase is the bidding phase of an auction.
type Phase string

const (
	PhasePending Phase = "PENDING"
	PhaseOpen    Phase = "OPEN"
	PhaseClosed  Phase = "CLOSED"
)

// TickInterval is how often the panel re-evaluates the countdown.
const TickInterval = time.Second

// View is what the panel shows for one tick.
type View struct {
	Phase         Phase
	Remaining     time.Duration
	Clock         string
	SubmitEnabled bool
}

// Evaluate computes the view for now. Comparisons are made on whole seconds.
func Evaluate(w models.AuctionWindow, now time.Time) View {
	nowSec := now.Unix()

	if nowSec < w.StartTime.Unix() {
		remaining := w.StartTime.Unix() - nowSec
		return View{
			Phase:     PhasePending,
			Remaining: time.Duration(remaining) * time.Second,
			Clock:     FormatClock(remaining),
		}
	}

	remaining := w.EndTime.Unix() - nowSec
	if remaining <= 0 {
		return View{Phase: PhaseClosed}
	}

	return View{
		Phase:         PhaseOpen,
		Remaining:     time.Duration(remaining) * time.Second,
		Clock:         FormatClock(remaining),
		SubmitEnabled: true,
	}
}

// Closed is the view shown once the server has ended the auction.
func Closed() View {
	return View{Phase: PhaseClosed}
}

// FormatClock renders seconds as MM:SS, both parts zero-padded to two digits.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Text renders the view through a message catalog.
func (v View) Text(c locale.Catalog) string {
	switch v.Phase {
	case PhasePending:
		return fmt.Sprintf(c.TimerPending, v.Clock)
	case PhaseOpen:
		return fmt.Sprintf(c.TimerOpen, v.Clock)
	default:
		return c.TimerClosed
	}
}
