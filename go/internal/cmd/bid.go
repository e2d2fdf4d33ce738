package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mcdev12/nego/go/internal/auction/bidder"
	"github.com/mcdev12/nego/go/internal/display"
)

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Join an auction as a bidder",
	Long: `Shows the countdown, lowest bid and your position, and submits every
price typed on standard input as a bid.`,
	Args: cobra.NoArgs,
	RunE: runBid,
}

func init() {
	rootCmd.AddCommand(bidCmd)
}

func runBid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pc, err := cfg.PageContext()
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	panelView := display.NewTerminal(os.Stdout)
	prompt := display.NewPrompt(os.Stdout, os.Stdin, false)
	prompt.SetPanel(panelView)

	live, err := startPanel(ctx, cfg, pc, catalog, true, panelView, prompt)
	if err != nil {
		return err
	}
	defer live.wait()
	defer cancel()

	client := bidder.NewClient(pc, newAPI(cfg), live.session, prompt, catalog, clockwork.NewRealClock())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			price, err := decimal.NewFromString(strings.ReplaceAll(line, ",", "."))
			if err != nil {
				panelView.Break()
				fmt.Fprintf(os.Stdout, "not a price: %q\n", line)
				continue
			}
			if err := client.Submit(ctx, price); err != nil && !errors.Is(err, bidder.ErrSubmitDisabled) {
				log.Debug().Err(err).Str("price", price.String()).Msg("bid not placed")
			}
		}
	}
}
