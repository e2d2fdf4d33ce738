package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcdev12/nego/go/internal/auction/admin"
	"github.com/mcdev12/nego/go/internal/display"
	"github.com/mcdev12/nego/go/internal/models"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage an auction",
}

var inviteCmd = &cobra.Command{
	Use:   "invite <user name>",
	Short: "Generate an invitation link and copy it to the clipboard",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAdminClient(cmd)
		if err != nil {
			return err
		}
		link, err := client.GenerateInvitation(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, link)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the auction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAdminClient(cmd)
		if err != nil {
			return err
		}
		return client.ResetAuction(cmd.Context())
	},
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "End the auction now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAdminClient(cmd)
		if err != nil {
			return err
		}
		return client.EndAuction(cmd.Context())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the auction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAdminClient(cmd)
		if err != nil {
			return err
		}
		return client.DeleteAuction(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(inviteCmd, resetCmd, endCmd, deleteCmd)
}

func newAdminClient(cmd *cobra.Command) (*admin.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateAuctionID(cfg.Auction.ID); err != nil {
		return nil, err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	api := newAPI(cfg)
	auctionID := cfg.Auction.ID
	return admin.NewClient(admin.Config{
		AuctionID: auctionID,
		API:       api,
		Catalog:   catalog,
		Notifier:  display.NewPrompt(os.Stdout, os.Stdin, true),
		Reloader: display.NewPageReloader(os.Stdout, func(fragment string) string {
			return api.AdminPageURL(auctionID, fragment)
		}),
		Clipboard: display.SystemClipboard{},
	}), nil
}
