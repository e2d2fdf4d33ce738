package push

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/nego/go/internal/auction/events"
)

// ErrMaxReconnects is returned when the receiver gives up reconnecting
var ErrMaxReconnects = errors.New("push channel: reconnect attempts exhausted")

// ConnectionState represents push channel connection state
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateReconnecting ConnectionState = "reconnecting"
	StateClosed       ConnectionState = "closed"
)

// Source streams raw event frames from one transport.
// Subscribe blocks until ctx is done (returning nil) or the connection fails.
// onConnected is called once the subscription is live.
type Source interface {
	Name() string
	Subscribe(ctx context.Context, onConnected func(), handle func(raw []byte)) error
}

// Sink receives decoded events, normally a panel session
type Sink interface {
	Deliver(ctx context.Context, env *events.Envelope) error
}

// ReceiverConfig holds reconnect behaviour
type ReceiverConfig struct {
	MaxReconnects int // -1 for unlimited
	ReconnectWait time.Duration
}

// DefaultReceiverConfig returns default reconnect settings
func DefaultReceiverConfig() ReceiverConfig {
	return ReceiverConfig{
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// Receiver keeps a single persistent push subscription and forwards every
// event to the sink in arrival order.
type Receiver struct {
	source  Source
	sink    Sink
	metrics MetricsCollector
	config  ReceiverConfig
	clock   clockwork.Clock
	state   atomic.Value
}

// NewReceiver creates a new push receiver
func NewReceiver(source Source, sink Sink, config ReceiverConfig, metrics MetricsCollector) *Receiver {
	if metrics == nil {
		metrics = &NoOpMetricsCollector{}
	}
	r := &Receiver{
		source:  source,
		sink:    sink,
		metrics: metrics,
		config:  config,
		clock:   clockwork.NewRealClock(),
	}
	r.state.Store(StateDisconnected)
	return r
}

// SetClock replaces the clock used for reconnect waits
func (r *Receiver) SetClock(clock clockwork.Clock) {
	r.clock = clock
}

// State returns the current connection state
func (r *Receiver) State() ConnectionState {
	return r.state.Load().(ConnectionState)
}

// Run subscribes and resubscribes until ctx is cancelled
func (r *Receiver) Run(ctx context.Context) error {
	defer r.state.Store(StateClosed)

	attempt := 0
	for {
		if attempt == 0 {
			r.state.Store(StateConnecting)
		} else {
			r.state.Store(StateReconnecting)
		}

		log.Info().
			Str("source", r.source.Name()).
			Int("attempt", attempt).
			Msg("subscribing to push channel")

		err := r.source.Subscribe(ctx, func() {
			r.state.Store(StateConnected)
			attempt = 0
			log.Info().Str("source", r.source.Name()).Msg("push channel connected")
		}, func(raw []byte) {
			r.handleFrame(ctx, raw)
		})

		if ctx.Err() != nil {
			log.Info().Str("source", r.source.Name()).Msg("push receiver shutting down")
			return nil
		}

		r.state.Store(StateDisconnected)
		log.Error().Err(err).Str("source", r.source.Name()).Msg("push channel disconnected")

		attempt++
		if r.config.MaxReconnects >= 0 && attempt > r.config.MaxReconnects {
			return fmt.Errorf("%w after %d attempts: %v", ErrMaxReconnects, attempt-1, err)
		}
		r.metrics.RecordReconnect(attempt)

		select {
		case <-ctx.Done():
			return nil
		case <-r.clock.After(r.config.ReconnectWait):
		}
	}
}

func (r *Receiver) handleFrame(ctx context.Context, raw []byte) {
	env, err := events.DecodeEnvelope(raw)
	if err != nil {
		r.metrics.RecordDecodeFailure()
		log.Warn().Err(err).Str("source", r.source.Name()).Msg("failed to decode pushed event")
		return
	}

	r.metrics.RecordEventReceived(string(env.Type))
	log.Debug().
		Str("event_id", env.ID).
		Str("event_type", string(env.Type)).
		Uint64("seq", env.Seq).
		Msg("pushed event received")

	if err := r.sink.Deliver(ctx, env); err != nil {
		log.Warn().Err(err).Str("event_type", string(env.Type)).Msg("failed to deliver pushed event")
	}
}
