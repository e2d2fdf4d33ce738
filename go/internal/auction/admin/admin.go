// Package admin implements the admin panel actions: invitations, reset,
// end and delete. Every action reports its outcome through a notification
// and refreshes the panel only after a success has been acknowledged.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/nego/go/clients/nego_client"
	"github.com/mcdev12/nego/go/internal/auction/ui"
	"github.com/mcdev12/nego/go/internal/locale"
)

// InvitationsFragment is the panel section kept in view after an invitation
const InvitationsFragment = "invitations"

var (
	// ErrNameRequired is returned when an invitation is requested without a user name
	ErrNameRequired = errors.New("invitation user name required")
	// ErrActionRefused is returned when the server answers success=false
	ErrActionRefused = errors.New("auction action refused by server")
)

// API is the subset of the server the admin panel calls
type API interface {
	SendInvitation(ctx context.Context, auctionID, userName string) (string, error)
	ResetAuction(ctx context.Context, auctionID string) (*nego_client.ActionResponse, error)
	EndAuction(ctx context.Context, auctionID string) (*nego_client.ActionResponse, error)
	DeleteAuction(ctx context.Context, auctionID string) (*nego_client.ActionResponse, error)
}

// Config wires the collaborators of an admin Client
type Config struct {
	AuctionID string
	API       API
	Catalog   locale.Catalog
	Notifier  ui.Notifier
	Reloader  ui.Reloader
	Clipboard ui.Clipboard
}

// Client runs admin actions for one auction
type Client struct {
	auctionID string
	api       API
	catalog   locale.Catalog
	notifier  ui.Notifier
	reloader  ui.Reloader
	clipboard ui.Clipboard
}

// NewClient creates an admin client. Missing surfaces fall back to no-ops.
func NewClient(cfg Config) *Client {
	if cfg.Notifier == nil {
		cfg.Notifier = ui.NopNotifier{}
	}
	if cfg.Reloader == nil {
		cfg.Reloader = ui.NopReloader{}
	}
	if cfg.Catalog == (locale.Catalog{}) {
		cfg.Catalog = locale.English()
	}
	return &Client{
		auctionID: cfg.AuctionID,
		api:       cfg.API,
		catalog:   cfg.Catalog,
		notifier:  cfg.Notifier,
		reloader:  cfg.Reloader,
		clipboard: cfg.Clipboard,
	}
}

// GenerateInvitation requests an invitation link for userName, copies it to
// the clipboard and refreshes the invitations section.
func (c *Client) GenerateInvitation(ctx context.Context, userName string) (string, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		c.notify(ctx, ui.SeverityError, c.catalog.InviteNameRequired)
		return "", ErrNameRequired
	}

	link, err := c.api.SendInvitation(ctx, c.auctionID, userName)
	if err != nil {
		var rej *nego_client.RejectionError
		if errors.As(err, &rej) {
			c.notify(ctx, ui.SeverityError, rej.Message)
			return "", err
		}
		log.Error().Err(err).Str("auction_id", c.auctionID).Msg("failed to generate invitation")
		c.notify(ctx, ui.SeverityError, c.catalog.InviteFailed)
		return "", err
	}

	log.Info().Str("auction_id", c.auctionID).Str("user_name", userName).Str("link", link).Msg("invitation generated")
	if c.clipboard != nil {
		if err := c.clipboard.WriteAll(link); err != nil {
			log.Warn().Err(err).Msg("failed to copy invitation link to clipboard")
		}
	}

	if err := c.notifier.Notify(ctx, ui.SeveritySuccess, c.catalog.InviteCopied); err != nil {
		return link, fmt.Errorf("invitation notification: %w", err)
	}
	c.reload(ctx, InvitationsFragment)
	return link, nil
}

// ResetAuction asks the server to reset the auction
func (c *Client) ResetAuction(ctx context.Context) error {
	return c.runAction(ctx, "reset", c.api.ResetAuction, outcomes{
		done:     c.catalog.ResetDone,
		rejected: c.catalog.ResetRejected,
		failed:   c.catalog.ResetFailed,
	})
}

// EndAuction asks the server to end the auction now
func (c *Client) EndAuction(ctx context.Context) error {
	return c.runAction(ctx, "end", c.api.EndAuction, outcomes{
		done:     c.catalog.EndDone,
		rejected: c.catalog.EndRejected,
		failed:   c.catalog.EndFailed,
	})
}

// DeleteAuction asks the server to delete the auction
func (c *Client) DeleteAuction(ctx context.Context) error {
	return c.runAction(ctx, "delete", c.api.DeleteAuction, outcomes{
		done:     c.catalog.DeleteDone,
		rejected: c.catalog.DeleteRejected,
		failed:   c.catalog.DeleteFailed,
	})
}

type outcomes struct {
	done     string
	rejected string
	failed   string
}

type actionFunc func(ctx context.Context, auctionID string) (*nego_client.ActionResponse, error)

func (c *Client) runAction(ctx context.Context, action string, call actionFunc, msg outcomes) error {
	resp, err := call(ctx, c.auctionID)
	if err != nil {
		log.Error().Err(err).Str("auction_id", c.auctionID).Str("action", action).Msg("auction action failed")
		c.notify(ctx, ui.SeverityError, msg.failed)
		return err
	}

	if !resp.Success {
		text := msg.rejected
		if resp.Error != "" {
			text = resp.Error
		}
		log.Warn().Str("auction_id", c.auctionID).Str("action", action).Str("reason", resp.Error).Msg("auction action refused")
		c.notify(ctx, ui.SeverityError, text)
		return fmt.Errorf("%w: %s", ErrActionRefused, action)
	}

	log.Info().Str("auction_id", c.auctionID).Str("action", action).Msg("auction action done")
	if err := c.notifier.Notify(ctx, ui.SeveritySuccess, msg.done); err != nil {
		return fmt.Errorf("%s notification: %w", action, err)
	}
	c.reload(ctx, "")
	return nil
}

func (c *Client) notify(ctx context.Context, severity ui.Severity, message string) {
	if err := c.notifier.Notify(ctx, severity, message); err != nil {
		log.Warn().Err(err).Msg("failed to show notification")
	}
}

func (c *Client) reload(ctx context.Context, fragment string) {
	if err := c.reloader.Reload(ctx, fragment); err != nil {
		log.Warn().Err(err).Str("fragment", fragment).Msg("failed to reload panel")
	}
}
