package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionWindow is the client's view of when bidding is open.
// Times are whole epoch seconds.
type AuctionWindow struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// NewAuctionWindow builds the load-time window: EndTime = StartTime + Duration.
func NewAuctionWindow(start time.Time, duration time.Duration) AuctionWindow {
	start = WholeSecond(start)
	return AuctionWindow{
		StartTime: start,
		EndTime:   start.Add(duration),
		Duration:  duration,
	}
}

// ExtendFrom returns the window with EndTime = now + d.
func (w AuctionWindow) ExtendFrom(now time.Time, d time.Duration) AuctionWindow {
	w.EndTime = WholeSecond(now).Add(d)
	return w
}

// ExtendForwardFrom is ExtendFrom that never moves EndTime backward.
func (w AuctionWindow) ExtendForwardFrom(now time.Time, d time.Duration) AuctionWindow {
	next := w.ExtendFrom(now, d)
	if next.EndTime.Before(w.EndTime) {
		return w
	}
	return next
}

// WholeSecond drops the sub-second part of t.
func WholeSecond(t time.Time) time.Time {
	return time.Unix(t.Unix(), 0)
}

// LowestBid is the last lowest bid pushed by the server.
type LowestBid struct {
	Price decimal.Decimal `json:"price"`
}

// RankingSnapshot maps display names to rank positions.
type RankingSnapshot map[string]int

// RankOf returns the rank for name and whether name is ranked at all.
func (r RankingSnapshot) RankOf(name string) (int, bool) {
	rank, ok := r[name]
	return rank, ok
}
