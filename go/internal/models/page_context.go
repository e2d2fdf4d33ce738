package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAuctionID is returned when the auction id is not a UUID
	ErrInvalidAuctionID = errors.New("invalid auction id")
	// ErrInvalidDuration is returned for a non-positive auction duration
	ErrInvalidDuration = errors.New("invalid auction duration")
)

// PageContext holds the values the server hands to a panel at start-up.
// It is immutable once built.
type PageContext struct {
	AuctionID   string
	StartTime   time.Time
	Duration    time.Duration
	DisplayName string
	Token       string
}

// NewPageContext validates and builds a PageContext from epoch seconds.
func NewPageContext(auctionID string, startUnix, durationSec int64, displayName, token string) (PageContext, error) {
	if err := ValidateAuctionID(auctionID); err != nil {
		return PageContext{}, err
	}
	if durationSec <= 0 {
		return PageContext{}, fmt.Errorf("%w: %d", ErrInvalidDuration, durationSec)
	}

	return PageContext{
		AuctionID:   auctionID,
		StartTime:   time.Unix(startUnix, 0),
		Duration:    time.Duration(durationSec) * time.Second,
		DisplayName: displayName,
		Token:       token,
	}, nil
}

// ValidateAuctionID checks that id is a UUID as issued by the server.
func ValidateAuctionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidAuctionID, id, err)
	}
	return nil
}

// Window returns the initial auction window.
func (p PageContext) Window() AuctionWindow {
	return NewAuctionWindow(p.StartTime, p.Duration)
}

// BidAttempt is a single bid submission.
type BidAttempt struct {
	Price     decimal.Decimal
	AuctionID string
	Token     string
}

// NewBidAttempt builds a BidAttempt for the page's auction and token.
func (p PageContext) NewBidAttempt(price decimal.Decimal) BidAttempt {
	return BidAttempt{
		Price:     price,
		AuctionID: p.AuctionID,
		Token:     p.Token,
	}
}
