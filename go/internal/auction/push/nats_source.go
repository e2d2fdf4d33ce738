package push

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// SubjectPrefix is the NATS subject prefix auction events are published under
const SubjectPrefix = "auction.events."

// SubjectFor returns the subject carrying events for one auction
func SubjectFor(auctionID string) string {
	return SubjectPrefix + auctionID
}

// NATSConfig holds configuration for the NATS push source
type NATSConfig struct {
	URL           string
	Subject       string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
	BufferSize    int
	FlushTimeout  time.Duration
}

// DefaultNATSConfig returns default NATS configuration for an auction
func DefaultNATSConfig(auctionID string) NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		Subject:       SubjectFor(auctionID),
		Name:          "nego-panel",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
		BufferSize:    256,
		FlushTimeout:  5 * time.Second,
	}
}

// NATSSource reads auction events from a core NATS subject
type NATSSource struct {
	config NATSConfig
}

// NewNATSSource creates a new NATS push source
func NewNATSSource(config NATSConfig) *NATSSource {
	if config.BufferSize <= 0 {
		config.BufferSize = 256
	}
	if config.FlushTimeout <= 0 {
		config.FlushTimeout = 5 * time.Second
	}
	return &NATSSource{config: config}
}

func (s *NATSSource) Name() string {
	return "nats"
}

// Subscribe connects, subscribes to the auction subject and forwards messages
// until ctx is done or the connection is closed for good.
func (s *NATSSource) Subscribe(ctx context.Context, onConnected func(), handle func(raw []byte)) error {
	closedCh := make(chan struct{})
	opts := []nats.Option{
		nats.Name(s.config.Name),
		nats.MaxReconnects(s.config.MaxReconnects),
		nats.ReconnectWait(s.config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			close(closedCh)
		}),
	}

	nc, err := nats.Connect(s.config.URL, opts...)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	msgCh := make(chan *nats.Msg, s.config.BufferSize)
	sub, err := nc.ChanSubscribe(s.config.Subject, msgCh)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.config.Subject, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil && nc.IsConnected() {
			log.Warn().Err(err).Str("subject", s.config.Subject).Msg("failed to unsubscribe")
		}
	}()

	// SUB must reach the server before the channel counts as connected
	if err := nc.FlushTimeout(s.config.FlushTimeout); err != nil {
		return fmt.Errorf("flush subscription %s: %w", s.config.Subject, err)
	}

	log.Info().
		Str("url", nc.ConnectedUrl()).
		Str("subject", s.config.Subject).
		Msg("subscribed to NATS auction events")

	onConnected()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closedCh:
			return fmt.Errorf("NATS connection closed")
		case msg := <-msgCh:
			handle(msg.Data)
		}
	}
}
