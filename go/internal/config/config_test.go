package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/nego/go/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "nego.yaml", `
server:
  base_url: https://nego.example.com
  http_timeout: 5s
push:
  transport: nats
  nats_url: nats://nats:4222
  reconnect_wait: 500ms
auction:
  id: 6f1c2a8e-3d4b-4f5a-9c7e-1b2a3c4d5e6f
  start_time: 1000
  duration: 60
  name: Alice
locale: pl
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "https://nego.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Server.HTTPTimeout)
	assert.Equal(t, TransportNATS, cfg.Push.Transport)
	assert.Equal(t, 500*time.Millisecond, cfg.Push.ReconnectWait)
	assert.Equal(t, -1, cfg.Push.MaxReconnects, "unset keys keep defaults")
	assert.Equal(t, int64(60), cfg.Auction.Duration)
	assert.Equal(t, "pl", cfg.Locale)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(missing, true)
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server: [unclosed")

	_, err := Load(path, true)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NEGO_BASE_URL", "http://env:5000")
	t.Setenv("NEGO_PUSH_TRANSPORT", "nats")
	t.Setenv("NEGO_AUCTION_ID", "6f1c2a8e-3d4b-4f5a-9c7e-1b2a3c4d5e6f")
	t.Setenv("NEGO_START_TIME", "1000")
	t.Setenv("NEGO_DURATION", "not-a-number")
	t.Setenv("NEGO_HTTP_TIMEOUT", "0s")
	t.Setenv("NEGO_NAME", "Bob")

	cfg := Default()
	cfg.Auction.Duration = 90
	cfg.ApplyEnv()

	assert.Equal(t, "http://env:5000", cfg.Server.BaseURL)
	assert.Equal(t, TransportNATS, cfg.Push.Transport)
	assert.Equal(t, int64(1000), cfg.Auction.StartTime)
	assert.Equal(t, int64(90), cfg.Auction.Duration, "unparsable values are ignored")
	assert.Equal(t, time.Duration(0), cfg.Server.HTTPTimeout)
	assert.Equal(t, "Bob", cfg.Auction.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty base url", func(c *Config) { c.Server.BaseURL = "" }},
		{"unknown transport", func(c *Config) { c.Push.Transport = "socketio" }},
		{"negative timeout", func(c *Config) { c.Server.HTTPTimeout = -time.Second }},
		{"negative reconnect wait", func(c *Config) { c.Push.ReconnectWait = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestPushURL(t *testing.T) {
	cfg := Default()
	cfg.Server.BaseURL = "http://localhost:5000/"
	assert.Equal(t, "http://localhost:5000/ws", cfg.PushURL())

	cfg.Push.URL = "wss://push.example.com/events"
	assert.Equal(t, "wss://push.example.com/events", cfg.PushURL())
}

func TestPageContext(t *testing.T) {
	cfg := Default()
	cfg.Auction = AuctionConfig{ID: "not-a-uuid", StartTime: 1000, Duration: 60}

	_, err := cfg.PageContext()
	assert.ErrorIs(t, err, models.ErrInvalidAuctionID)

	cfg.Auction.ID = "6f1c2a8e-3d4b-4f5a-9c7e-1b2a3c4d5e6f"
	pc, err := cfg.PageContext()
	require.NoError(t, err)
	assert.Equal(t, int64(1060), pc.Window().EndTime.Unix())
}

func TestCatalog(t *testing.T) {
	messages := writeFile(t, "messages.yaml", `rank_none: "n/a"`)

	cfg := Default()
	cfg.Locale = "pl_PL"
	cfg.Messages = messages

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, "n/a", catalog.RankNone)
	assert.Equal(t, "Aukcja zakończona", catalog.TimerClosed)

	cfg.Locale = "xx"
	_, err = cfg.Catalog()
	assert.Error(t, err)
}
