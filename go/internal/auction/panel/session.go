package panel

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/nego/go/internal/auction/countdown"
	"github.com/mcdev12/nego/go/internal/auction/events"
	"github.com/mcdev12/nego/go/internal/auction/ui"
	"github.com/mcdev12/nego/go/internal/locale"
	"github.com/mcdev12/nego/go/internal/models"
)

// ErrSessionStopped is returned when a message is sent after Run returned
var ErrSessionStopped = errors.New("panel session stopped")

const defaultInboxSize = 64

// DropRecorder is told about pushed events the session did not apply
type DropRecorder interface {
	RecordEventDropped(eventType string, reason string)
}

type nopDropRecorder struct{}

func (nopDropRecorder) RecordEventDropped(string, string) {}

// Config holds the collaborators of a panel session
type Config struct {
	Context   models.PageContext
	Countdown bool
	Catalog   locale.Catalog
	Display   ui.Display
	Notifier  ui.Notifier
	Clock     clockwork.Clock
	Drops     DropRecorder
	InboxSize int
}

// Session owns the panel state. Only the Run goroutine touches it; ticks,
// bid acceptances and pushed events all arrive as messages.
type Session struct {
	state    State
	catalog  locale.Catalog
	display  ui.Display
	notifier ui.Notifier
	clock    clockwork.Clock
	drops    DropRecorder

	inbox chan Message
	done  chan struct{}
}

// NewSession creates a session; Run must be called to process messages
func NewSession(cfg Config) *Session {
	if cfg.Display == nil {
		cfg.Display = ui.NopDisplay{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = ui.NopNotifier{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Drops == nil {
		cfg.Drops = nopDropRecorder{}
	}
	if cfg.Catalog == (locale.Catalog{}) {
		cfg.Catalog = locale.English()
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = defaultInboxSize
	}

	return &Session{
		state:    NewState(cfg.Context, cfg.Countdown),
		catalog:  cfg.Catalog,
		display:  cfg.Display,
		notifier: cfg.Notifier,
		clock:    cfg.Clock,
		drops:    cfg.Drops,
		inbox:    make(chan Message, cfg.InboxSize),
		done:     make(chan struct{}),
	}
}

// Run processes ticks and inbox messages until ctx is cancelled
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	log.Info().
		Str("auction_id", s.state.Context.AuctionID).
		Bool("countdown", s.state.Countdown).
		Msg("panel session started")

	var tickCh <-chan Tick
	if s.state.Countdown {
		ticker := s.clock.NewTicker(countdown.TickInterval)
		defer ticker.Stop()

		ch := make(chan Tick)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.Chan():
					// Wall clock, not tick count
					select {
					case ch <- Tick{Now: s.clock.Now()}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
		tickCh = ch

		s.apply(ctx, Tick{Now: s.clock.Now()})
	}
	s.perform(ctx, RenderRank{Ranked: false})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("auction_id", s.state.Context.AuctionID).Msg("panel session shutting down")
			return nil
		case tick := <-tickCh:
			s.apply(ctx, tick)
		case msg := <-s.inbox:
			if req, ok := msg.(snapshotRequest); ok {
				req.reply <- s.state
				continue
			}
			s.apply(ctx, msg)
		}
	}
}

// BidAccepted records a successful local bid at the current time
func (s *Session) BidAccepted(ctx context.Context) error {
	return s.send(ctx, BidAccepted{At: s.clock.Now()})
}

// Deliver hands a pushed event to the session
func (s *Session) Deliver(ctx context.Context, env *events.Envelope) error {
	return s.send(ctx, EventReceived{At: s.clock.Now(), Envelope: env})
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	if err := s.send(ctx, snapshotRequest{reply: reply}); err != nil {
		return State{}, err
	}

	select {
	case st := <-reply:
		return st, nil
	case <-s.done:
		return State{}, ErrSessionStopped
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

func (s *Session) send(ctx context.Context, msg Message) error {
	select {
	case <-s.done:
		return ErrSessionStopped
	default:
	}

	select {
	case s.inbox <- msg:
		return nil
	case <-s.done:
		return ErrSessionStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) apply(ctx context.Context, msg Message) {
	nextState, effects := Reduce(s.state, msg)
	s.state = nextState
	for _, effect := range effects {
		s.perform(ctx, effect)
	}
}

func (s *Session) perform(ctx context.Context, effect Effect) {
	switch e := effect.(type) {
	case RenderTimer:
		s.display.ShowTimer(e.View.Text(s.catalog), e.View.SubmitEnabled)

	case RenderLowestBid:
		s.display.ShowLowestBid(fmt.Sprintf(s.catalog.LowestBid, e.Bid.Price.String()))

	case RenderRank:
		rank := s.catalog.RankNone
		if e.Ranked {
			rank = strconv.Itoa(e.Rank)
		}
		s.display.ShowRank(fmt.Sprintf(s.catalog.Rank, rank))

	case Notify:
		severity, message := s.noticeText(e.Notice)
		if err := s.notifier.Notify(ctx, severity, message); err != nil {
			log.Warn().Err(err).Str("notice", string(e.Notice)).Msg("failed to show notification")
		}

	case Dropped:
		log.Debug().
			Str("auction_id", s.state.Context.AuctionID).
			Str("event_type", string(e.EventType)).
			Str("reason", e.Reason).
			Msg("pushed event dropped")
		s.drops.RecordEventDropped(string(e.EventType), e.Reason)
	}
}

func (s *Session) noticeText(n Notice) (ui.Severity, string) {
	switch n {
	case NoticeAuctionEnded:
		return ui.SeverityInfo, s.catalog.AuctionEndedByServer
	case NoticeAuctionReset:
		return ui.SeverityInfo, s.catalog.AuctionWasReset
	case NoticeAuctionDeleted:
		return ui.SeverityWarning, s.catalog.AuctionWasDeleted
	default:
		return ui.SeverityInfo, string(n)
	}
}
