package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuctionID = "6f1c2a8e-3d4b-4f5a-9c7e-1b2a3c4d5e6f"

func TestNewAuctionWindow(t *testing.T) {
	w := NewAuctionWindow(time.Unix(1000, 500), 60*time.Second)

	assert.Equal(t, int64(1000), w.StartTime.Unix())
	assert.Equal(t, int64(1060), w.EndTime.Unix())
	assert.Equal(t, 60*time.Second, w.Duration)
}

func TestAuctionWindow_ExtendFrom(t *testing.T) {
	w := NewAuctionWindow(time.Unix(1000, 0), 60*time.Second)

	extended := w.ExtendFrom(time.Unix(1030, 900_000_000), w.Duration)
	assert.Equal(t, int64(1090), extended.EndTime.Unix())
	assert.Equal(t, w.StartTime, extended.StartTime, "start time is never touched")

	// assignment, not accumulation
	again := extended.ExtendFrom(time.Unix(1030, 0), w.Duration)
	assert.Equal(t, int64(1090), again.EndTime.Unix())

	shorter := extended.ExtendFrom(time.Unix(1031, 0), 10*time.Second)
	assert.Equal(t, int64(1041), shorter.EndTime.Unix())
}

func TestAuctionWindow_ExtendForwardFrom(t *testing.T) {
	w := NewAuctionWindow(time.Unix(1000, 0), 60*time.Second)
	w = w.ExtendFrom(time.Unix(1030, 0), 60*time.Second)

	kept := w.ExtendForwardFrom(time.Unix(1031, 0), 10*time.Second)
	assert.Equal(t, int64(1090), kept.EndTime.Unix())

	moved := w.ExtendForwardFrom(time.Unix(1040, 0), 60*time.Second)
	assert.Equal(t, int64(1100), moved.EndTime.Unix())
}

func TestRankingSnapshot_RankOf(t *testing.T) {
	r := RankingSnapshot{"Alice": 3, "Zero": 0}

	rank, ok := r.RankOf("Alice")
	assert.True(t, ok)
	assert.Equal(t, 3, rank)

	rank, ok = r.RankOf("Zero")
	assert.True(t, ok)
	assert.Equal(t, 0, rank)

	_, ok = r.RankOf("Bob")
	assert.False(t, ok)

	var empty RankingSnapshot
	_, ok = empty.RankOf("Alice")
	assert.False(t, ok)
}

func TestNewPageContext(t *testing.T) {
	tests := []struct {
		name      string
		auctionID string
		duration  int64
		wantErr   error
	}{
		{name: "valid", auctionID: testAuctionID, duration: 60},
		{name: "bad id", auctionID: "auction-1", duration: 60, wantErr: ErrInvalidAuctionID},
		{name: "zero duration", auctionID: testAuctionID, duration: 0, wantErr: ErrInvalidDuration},
		{name: "negative duration", auctionID: testAuctionID, duration: -5, wantErr: ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := NewPageContext(tt.auctionID, 1000, tt.duration, "Alice", "tok")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1060), pc.Window().EndTime.Unix())
			assert.Equal(t, "Alice", pc.DisplayName)
		})
	}
}
