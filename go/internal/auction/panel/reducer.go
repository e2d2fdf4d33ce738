package panel

import (
	"time"

	"github.com/mcdev12/nego/go/internal/auction/countdown"
	"github.com/mcdev12/nego/go/internal/auction/events"
	"github.com/mcdev12/nego/go/internal/models"
)

// Drop reasons reported through Dropped effects
const (
	DropUnknownType  = "unknown event type"
	DropOtherAuction = "event for another auction"
	DropStale        = "stale sequence number"
	DropMalformed    = "malformed payload"
)

// State is everything a panel holds in memory for one page load
type State struct {
	Context   models.PageContext
	Window    models.AuctionWindow
	Countdown bool // bidder panels run the countdown, admin panels do not
	Ended     bool // ended by the server until a reset or a later extension
	LowestBid *models.LowestBid
	Rankings  models.RankingSnapshot

	lastSeq map[events.EventType]uint64
}

// NewState builds the load-time state from the page context
func NewState(pc models.PageContext, withCountdown bool) State {
	return State{
		Context:   pc,
		Window:    pc.Window(),
		Countdown: withCountdown,
	}
}

// View derives the countdown view at now
func (s State) View(now time.Time) countdown.View {
	if s.Ended {
		return countdown.Closed()
	}
	return countdown.Evaluate(s.Window, now)
}

// Reduce is a pure function that handles state transitions.
// Given current state and a message, it returns next state and effects to perform.
func Reduce(state State, msg Message) (State, []Effect) {
	switch m := msg.(type) {
	case Tick:
		if !state.Countdown {
			return state, nil
		}
		return state, []Effect{RenderTimer{View: state.View(m.Now)}}

	case BidAccepted:
		if !state.Countdown {
			return state, nil
		}
		// Optimistic: the push event that follows carries the authoritative value
		nextState := state
		nextState.Window = state.Window.ExtendForwardFrom(m.At, state.Window.Duration)
		return nextState, []Effect{RenderTimer{View: nextState.View(m.At)}}

	case EventReceived:
		return reduceEvent(state, m)
	}

	// Unknown message, stay in current state
	return state, nil
}

func reduceEvent(state State, msg EventReceived) (State, []Effect) {
	env := msg.Envelope
	if env == nil {
		return state, nil
	}

	payload, err := events.ParseEventPayload(env)
	if err != nil {
		return state, []Effect{Dropped{EventType: env.Type, Reason: DropMalformed + ": " + err.Error()}}
	}
	if payload == nil {
		return state, []Effect{Dropped{EventType: env.Type, Reason: DropUnknownType}}
	}

	if id := events.AuctionIDOf(payload); id != "" && id != state.Context.AuctionID {
		return state, []Effect{Dropped{EventType: env.Type, Reason: DropOtherAuction}}
	}

	nextState := state
	if env.Seq != 0 {
		if env.Seq <= state.lastSeq[env.Type] {
			return state, []Effect{Dropped{EventType: env.Type, Reason: DropStale}}
		}
		nextState.lastSeq = make(map[events.EventType]uint64, len(state.lastSeq)+1)
		for k, v := range state.lastSeq {
			nextState.lastSeq[k] = v
		}
		nextState.lastSeq[env.Type] = env.Seq
	}

	switch p := payload.(type) {
	case events.NewBidPayload:
		nextState.LowestBid = &models.LowestBid{Price: p.Price}
		effects := []Effect{RenderLowestBid{Bid: *nextState.LowestBid}}

		if p.NewDuration != nil && state.Countdown {
			// Authoritative: overrides any optimistic extension
			d := time.Duration(*p.NewDuration) * time.Second
			nextState.Window = state.Window.ExtendFrom(msg.At, d)
			if nextState.Window.EndTime.After(models.WholeSecond(msg.At)) {
				nextState.Ended = false
			}
			effects = append(effects, RenderTimer{View: nextState.View(msg.At)})
		}
		return nextState, effects

	case events.UpdateRankingsPayload:
		nextState.Rankings = models.RankingSnapshot(p.Rankings)
		rank, ok := nextState.Rankings.RankOf(state.Context.DisplayName)
		return nextState, []Effect{RenderRank{Rank: rank, Ranked: ok}}

	case events.AuctionLifecyclePayload:
		switch env.Type {
		case events.EventTypeAuctionEnded:
			nextState.Ended = true
			effects := []Effect{Notify{Notice: NoticeAuctionEnded}}
			if state.Countdown {
				effects = append([]Effect{RenderTimer{View: nextState.View(msg.At)}}, effects...)
			}
			return nextState, effects
		case events.EventTypeAuctionReset:
			nextState.Ended = false
			effects := []Effect{Notify{Notice: NoticeAuctionReset}}
			if state.Countdown {
				effects = append([]Effect{RenderTimer{View: nextState.View(msg.At)}}, effects...)
			}
			return nextState, effects
		case events.EventTypeAuctionDeleted:
			return nextState, []Effect{Notify{Notice: NoticeAuctionDeleted}}
		}
	}

	return state, []Effect{Dropped{EventType: env.Type, Reason: DropUnknownType}}
}
