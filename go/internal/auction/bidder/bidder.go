// Package bidder submits bids for the bidder panel.
package bidder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/nego/go/clients/nego_client"
	"github.com/mcdev12/nego/go/internal/auction/panel"
	"github.com/mcdev12/nego/go/internal/auction/ui"
	"github.com/mcdev12/nego/go/internal/locale"
	"github.com/mcdev12/nego/go/internal/models"
)

// ErrSubmitDisabled is returned when a bid is attempted outside the open window
var ErrSubmitDisabled = errors.New("bid submission disabled")

// BidAPI is the server endpoint bids are sent to
type BidAPI interface {
	SubmitBid(ctx context.Context, bid models.BidAttempt) (*nego_client.SubmitBidResponse, error)
}

// Session is the panel state the client gates on and extends
type Session interface {
	Snapshot(ctx context.Context) (panel.State, error)
	BidAccepted(ctx context.Context) error
}

// Client submits bids for one page context
type Client struct {
	page     models.PageContext
	api      BidAPI
	session  Session
	notifier ui.Notifier
	catalog  locale.Catalog
	clock    clockwork.Clock
}

// NewClient creates a bid client. A nil notifier discards messages.
func NewClient(page models.PageContext, api BidAPI, session Session, notifier ui.Notifier, catalog locale.Catalog, clock clockwork.Clock) *Client {
	if notifier == nil {
		notifier = ui.NopNotifier{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Client{
		page:     page,
		api:      api,
		session:  session,
		notifier: notifier,
		catalog:  catalog,
		clock:    clock,
	}
}

// Submit sends one bid. The price is not validated locally. A server
// rejection is shown verbatim and returned as *nego_client.RejectionError;
// transport failures show a generic message and wrap nego_client.ErrTransport.
// On success the session extends the end time optimistically.
func (c *Client) Submit(ctx context.Context, price decimal.Decimal) error {
	state, err := c.session.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read panel state: %w", err)
	}
	view := state.View(c.clock.Now())
	if !view.SubmitEnabled {
		c.notify(ctx, ui.SeverityWarning, view.Text(c.catalog))
		return fmt.Errorf("%w: auction is %s", ErrSubmitDisabled, view.Phase)
	}

	bid := c.page.NewBidAttempt(price)
	resp, err := c.api.SubmitBid(ctx, bid)
	if err != nil {
		var rej *nego_client.RejectionError
		if errors.As(err, &rej) {
			log.Info().
				Str("auction_id", bid.AuctionID).
				Str("price", price.String()).
				Str("reason", rej.Message).
				Msg("bid rejected")
			c.notify(ctx, ui.SeverityError, rej.Message)
			return err
		}

		log.Error().Err(err).Str("auction_id", bid.AuctionID).Str("price", price.String()).Msg("failed to submit bid")
		c.notify(ctx, ui.SeverityError, c.catalog.BidTransportFailed)
		if !errors.Is(err, nego_client.ErrTransport) {
			return fmt.Errorf("%w: %v", nego_client.ErrTransport, err)
		}
		return err
	}

	log.Info().
		Str("auction_id", bid.AuctionID).
		Str("price", price.String()).
		Str("server_message", resp.Message).
		Msg("bid accepted")
	if err := c.session.BidAccepted(ctx); err != nil {
		return fmt.Errorf("failed to extend auction window: %w", err)
	}
	return nil
}

func (c *Client) notify(ctx context.Context, severity ui.Severity, message string) {
	if err := c.notifier.Notify(ctx, severity, message); err != nil {
		log.Warn().Err(err).Msg("failed to show notification")
	}
}
