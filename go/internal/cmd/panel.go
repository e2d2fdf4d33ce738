package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/nego/go/internal/auction/panel"
	"github.com/mcdev12/nego/go/internal/auction/push"
	"github.com/mcdev12/nego/go/internal/auction/ui"
	"github.com/mcdev12/nego/go/internal/config"
	"github.com/mcdev12/nego/go/internal/locale"
	"github.com/mcdev12/nego/go/internal/models"
)

// livePanel is a running session fed by the push receiver
type livePanel struct {
	session  *panel.Session
	receiver *push.Receiver
	metrics  *push.CountingMetrics
	wg       sync.WaitGroup
}

func newSource(cfg config.Config, pc models.PageContext) (push.Source, error) {
	switch cfg.Push.Transport {
	case config.TransportNATS:
		natsCfg := push.DefaultNATSConfig(pc.AuctionID)
		natsCfg.URL = cfg.Push.NATSURL
		natsCfg.ReconnectWait = cfg.Push.ReconnectWait
		return push.NewNATSSource(natsCfg), nil
	default:
		endpoint, err := push.WebSocketURL(cfg.PushURL(), pc.AuctionID, pc.DisplayName)
		if err != nil {
			return nil, err
		}
		return push.NewWebSocketSource(push.DefaultWebSocketConfig(endpoint)), nil
	}
}

// startPanel runs a session and its push receiver until ctx is done
func startPanel(ctx context.Context, cfg config.Config, pc models.PageContext, catalog locale.Catalog, countdown bool, display ui.Display, notifier ui.Notifier) (*livePanel, error) {
	source, err := newSource(cfg, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create push source: %w", err)
	}

	metrics := push.NewCountingMetrics()
	session := panel.NewSession(panel.Config{
		Context:   pc,
		Countdown: countdown,
		Catalog:   catalog,
		Display:   display,
		Notifier:  notifier,
		Drops:     metrics,
	})

	receiverCfg := push.ReceiverConfig{
		MaxReconnects: cfg.Push.MaxReconnects,
		ReconnectWait: cfg.Push.ReconnectWait,
	}
	p := &livePanel{
		session:  session,
		receiver: push.NewReceiver(source, session, receiverCfg, metrics),
		metrics:  metrics,
	}

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		if err := session.Run(ctx); err != nil {
			log.Error().Err(err).Msg("panel session failed")
		}
	}()
	go func() {
		defer p.wg.Done()
		if err := p.receiver.Run(ctx); err != nil {
			log.Error().Err(err).Msg("push receiver stopped")
		}
	}()

	log.Info().
		Str("auction_id", pc.AuctionID).
		Str("transport", source.Name()).
		Bool("countdown", countdown).
		Msg("panel started")
	return p, nil
}

// wait blocks until the panel stopped and logs the push statistics
func (p *livePanel) wait() {
	p.wg.Wait()
	log.Info().
		Interface("push_stats", p.metrics.Stats()).
		Str("push_state", string(p.receiver.State())).
		Msg("panel stopped")
}
