package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcdev12/nego/go/internal/display"
	"github.com/mcdev12/nego/go/internal/models"
)

var watchAdmin bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow an auction live without bidding",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchAdmin, "admin", false,
		"Admin view: lowest bid only, no countdown")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	var pc models.PageContext
	if watchAdmin {
		if err := models.ValidateAuctionID(cfg.Auction.ID); err != nil {
			return err
		}
		pc = models.PageContext{AuctionID: cfg.Auction.ID, DisplayName: cfg.Auction.Name}
	} else if pc, err = cfg.PageContext(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	panelView := display.NewTerminal(os.Stdout)
	prompt := display.NewPrompt(os.Stdout, nil, false)
	prompt.SetPanel(panelView)

	live, err := startPanel(ctx, cfg, pc, catalog, !watchAdmin, panelView, prompt)
	if err != nil {
		return err
	}

	<-ctx.Done()
	live.wait()
	return nil
}
