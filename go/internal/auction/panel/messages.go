package panel

import (
	"time"

	"github.com/mcdev12/nego/go/internal/auction/countdown"
	"github.com/mcdev12/nego/go/internal/auction/events"
	"github.com/mcdev12/nego/go/internal/models"
)

// Message is anything delivered to the session inbox
type Message interface {
	isMessage()
}

// Tick is the one-second timer callback
type Tick struct {
	Now time.Time
}

func (Tick) isMessage() {}

// BidAccepted is sent when the server accepted a bid submitted from this panel
type BidAccepted struct {
	At time.Time
}

func (BidAccepted) isMessage() {}

// EventReceived wraps a pushed event with its arrival time
type EventReceived struct {
	At       time.Time
	Envelope *events.Envelope
}

func (EventReceived) isMessage() {}

// snapshotRequest asks the session for a copy of its state
type snapshotRequest struct {
	reply chan State
}

func (snapshotRequest) isMessage() {}

// Effect is a side effect the session performs after a state transition
type Effect interface {
	isEffect()
}

// RenderTimer redraws the countdown and submit gating
type RenderTimer struct {
	View countdown.View
}

func (RenderTimer) isEffect() {}

// RenderLowestBid redraws the lowest bid
type RenderLowestBid struct {
	Bid models.LowestBid
}

func (RenderLowestBid) isEffect() {}

// RenderRank redraws the user's ranking position
type RenderRank struct {
	Rank   int
	Ranked bool
}

func (RenderRank) isEffect() {}

// Notice identifies a server-driven notification
type Notice string

const (
	NoticeAuctionEnded   Notice = "auction_ended"
	NoticeAuctionReset   Notice = "auction_reset"
	NoticeAuctionDeleted Notice = "auction_deleted"
)

// Notify tells the user about a lifecycle change pushed by the server
type Notify struct {
	Notice Notice
}

func (Notify) isEffect() {}

// Dropped records a pushed event that was not applied
type Dropped struct {
	EventType events.EventType
	Reason    string
}

func (Dropped) isEffect() {}
