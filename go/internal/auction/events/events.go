package events

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Envelope is the wire format of every pushed auction event
type Envelope struct {
	ID   string          `json:"id,omitempty"`  // Optional event id, used for logging only
	Type EventType       `json:"type"`          // Event type
	Seq  uint64          `json:"seq,omitempty"` // Optional per-type sequence number; 0 means unsequenced
	Data json.RawMessage `json:"data"`          // Event-specific payload
}

// EventType represents the type of auction event
type EventType string

const (
	EventTypeNewBid         EventType = "new_bid"
	EventTypeUpdateRankings EventType = "update_rankings"
	EventTypeAuctionEnded   EventType = "auction_ended"
	EventTypeAuctionReset   EventType = "auction_reset"
	EventTypeAuctionDeleted EventType = "auction_deleted"
)

// NewBidPayload is pushed whenever the lowest bid changes.
// The admin page receives a reduced form without new_duration.
type NewBidPayload struct {
	AuctionID   string          `json:"auction_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	NewDuration *int64          `json:"newDuration,omitempty"` // seconds
}

// UpdateRankingsPayload carries the full ranking table
type UpdateRankingsPayload struct {
	AuctionID string         `json:"auction_id,omitempty"`
	Rankings  map[string]int `json:"rankings"`
}

// AuctionLifecyclePayload is shared by auction_ended, auction_reset and auction_deleted
type AuctionLifecyclePayload struct {
	AuctionID string `json:"auction_id"`
}

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *Envelope) (interface{}, error) {
	switch event.Type {
	case EventTypeNewBid:
		var payload NewBidPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", event.Type, err)
		}
		return payload, nil

	case EventTypeUpdateRankings:
		var payload UpdateRankingsPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", event.Type, err)
		}
		return payload, nil

	case EventTypeAuctionEnded, EventTypeAuctionReset, EventTypeAuctionDeleted:
		var payload AuctionLifecyclePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", event.Type, err)
		}
		return payload, nil

	default:
		return nil, nil // Unknown event type
	}
}

// DecodeEnvelope parses a raw frame into an Envelope
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal event envelope: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("event envelope has no type")
	}
	return &env, nil
}

// AuctionIDOf returns the auction id carried by a parsed payload, if any.
func AuctionIDOf(payload interface{}) string {
	switch p := payload.(type) {
	case NewBidPayload:
		return p.AuctionID
	case UpdateRankingsPayload:
		return p.AuctionID
	case AuctionLifecyclePayload:
		return p.AuctionID
	default:
		return ""
	}
}
