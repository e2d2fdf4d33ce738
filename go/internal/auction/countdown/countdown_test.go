package countdown

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/nego/go/internal/locale"
	"github.com/mcdev12/nego/go/internal/models"
)

func window(start, durationSec int64) models.AuctionWindow {
	return models.NewAuctionWindow(time.Unix(start, 0), time.Duration(durationSec)*time.Second)
}

func TestEvaluate_Pending(t *testing.T) {
	w := window(1000, 60)

	for now := int64(0); now < 1000; now += 37 {
		v := Evaluate(w, time.Unix(now, 0))
		remaining := 1000 - now
		want := fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)

		assert.Equal(t, PhasePending, v.Phase, "now=%d", now)
		assert.False(t, v.SubmitEnabled, "now=%d", now)
		assert.Equal(t, want, v.Clock, "now=%d", now)
	}
}

func TestEvaluate_Open(t *testing.T) {
	w := window(1000, 60)

	for now := int64(1000); now < 1060; now++ {
		v := Evaluate(w, time.Unix(now, 0))
		assert.Equal(t, PhaseOpen, v.Phase, "now=%d", now)
		assert.True(t, v.SubmitEnabled, "now=%d", now)
	}

	v := Evaluate(w, time.Unix(1000, 0))
	assert.Equal(t, "01:00", v.Clock)
	assert.Equal(t, 60*time.Second, v.Remaining)

	v = Evaluate(w, time.Unix(1059, 999_000_000))
	assert.Equal(t, "00:01", v.Clock, "sub-second part is ignored")
}

func TestEvaluate_Closed(t *testing.T) {
	w := window(1000, 60)

	for _, now := range []int64{1060, 1061, 5000} {
		v := Evaluate(w, time.Unix(now, 0))
		assert.Equal(t, PhaseClosed, v.Phase, "now=%d", now)
		assert.False(t, v.SubmitEnabled, "now=%d", now)
	}
}

func TestEvaluate_ReopensAfterExtension(t *testing.T) {
	w := window(1000, 60)
	now := time.Unix(1070, 0)
	assert.Equal(t, PhaseClosed, Evaluate(w, now).Phase)

	w = w.ExtendFrom(now, 30*time.Second)
	v := Evaluate(w, now)
	assert.Equal(t, PhaseOpen, v.Phase)
	assert.Equal(t, "00:30", v.Clock)
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{60, "01:00"},
		{61, "01:01"},
		{599, "09:59"},
		{3600, "60:00"},
		{6005, "100:05"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestView_Text(t *testing.T) {
	en := locale.English()
	pl := locale.Polish()
	w := window(1000, 60)

	assert.Equal(t, "Auction starts in: 00:10", Evaluate(w, time.Unix(990, 0)).Text(en))
	assert.Equal(t, "Time remaining: 00:30", Evaluate(w, time.Unix(1030, 0)).Text(en))
	assert.Equal(t, "Auction ended", Evaluate(w, time.Unix(1060, 0)).Text(en))
	assert.Equal(t, "Pozostały czas: 00:30", Evaluate(w, time.Unix(1030, 0)).Text(pl))
	assert.Equal(t, "Aukcja zakończona", Closed().Text(pl))
}
