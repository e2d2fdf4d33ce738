package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mcdev12/nego/go/clients/nego_client"
	"github.com/mcdev12/nego/go/internal/config"
)

var (
	// Logging related
	debug bool

	// Config file
	configPath string

	// Server
	baseURL       string
	pushURL       string
	pushTransport string
	natsURL       string
	localeName    string

	// Page context
	auctionID string
	startTime int64
	duration  int64
	userName  string
	token     string

	rootCmd = &cobra.Command{
		Use:   "nego",
		Short: "Live reverse auction client",
		Long: `nego is a terminal client for Nego live auctions.

Bidders follow the countdown and submit bids, admins manage invitations and
the auction lifecycle. Both receive live updates over the push channel.

Examples:
  nego bid --auction <id> --start 1735686000 --duration 300 --name Alice --token <token>
  nego watch --auction <id> --admin
  nego admin invite Alice --auction <id>
  nego admin reset --auction <id>`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath,
		"Config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")

	rootCmd.PersistentFlags().StringVar(&baseURL, "server", "",
		"Nego server base URL")
	rootCmd.PersistentFlags().StringVar(&pushURL, "push-url", "",
		"WebSocket push endpoint (default <server>/ws)")
	rootCmd.PersistentFlags().StringVar(&pushTransport, "push", "",
		"Push transport (websocket, nats)")
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats-url", "",
		"NATS server URL for the nats push transport")
	rootCmd.PersistentFlags().StringVar(&localeName, "locale", "",
		"Message language (en, pl)")

	rootCmd.PersistentFlags().StringVar(&auctionID, "auction", "",
		"Auction id")
	rootCmd.PersistentFlags().Int64Var(&startTime, "start", 0,
		"Auction start time (epoch seconds)")
	rootCmd.PersistentFlags().Int64Var(&duration, "duration", 0,
		"Auction duration and bid extension (seconds)")
	rootCmd.PersistentFlags().StringVar(&userName, "name", "",
		"Your display name in the rankings")
	rootCmd.PersistentFlags().StringVar(&token, "token", "",
		"Bid token from the invitation link")
}

// loadConfig merges the config file, environment and flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(configPath, flags.Changed("config"))
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()

	if flags.Changed("server") {
		cfg.Server.BaseURL = baseURL
	}
	if flags.Changed("push-url") {
		cfg.Push.URL = pushURL
	}
	if flags.Changed("push") {
		cfg.Push.Transport = strings.ToLower(pushTransport)
	}
	if flags.Changed("nats-url") {
		cfg.Push.NATSURL = natsURL
	}
	if flags.Changed("locale") {
		cfg.Locale = localeName
	}
	if flags.Changed("auction") {
		cfg.Auction.ID = auctionID
	}
	if flags.Changed("start") {
		cfg.Auction.StartTime = startTime
	}
	if flags.Changed("duration") {
		cfg.Auction.Duration = duration
	}
	if flags.Changed("name") {
		cfg.Auction.Name = userName
	}
	if flags.Changed("token") {
		cfg.Auction.Token = token
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	return cfg, nil
}

func newAPI(cfg config.Config) *nego_client.NegoClient {
	api := nego_client.NewNegoClient(cfg.Server.BaseURL)
	api.SetTimeout(cfg.Server.HTTPTimeout)
	return api
}
