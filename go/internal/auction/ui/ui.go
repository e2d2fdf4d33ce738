// Package ui declares the surfaces the auction panels draw on. Panels never
// assume a surface exists: the Nop implementations stand in for targets a
// given layout does not have.
package ui

import "context"

// Severity classifies a notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Display shows the live panel values
type Display interface {
	ShowTimer(text string, submitEnabled bool)
	ShowLowestBid(text string)
	ShowRank(text string)
}

// Notifier shows a modal message. Notify returns once the user dismissed it
// or ctx is done.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string) error
}

// Reloader refreshes the panel after an admin action. Fragment names the
// section to keep in view ("" for the default one).
type Reloader interface {
	Reload(ctx context.Context, fragment string) error
}

// Clipboard receives copied text
type Clipboard interface {
	WriteAll(text string) error
}

// NopDisplay discards everything
type NopDisplay struct{}

func (NopDisplay) ShowTimer(string, bool) {}
func (NopDisplay) ShowLowestBid(string)   {}
func (NopDisplay) ShowRank(string)        {}

// NopNotifier discards notifications
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Severity, string) error { return nil }

// NopReloader does nothing
type NopReloader struct{}

func (NopReloader) Reload(context.Context, string) error { return nil }
